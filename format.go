// FILE: lixenwraith/settings/format.go
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// DefaultExtension is the extension discovered inside configuration directories.
const DefaultExtension = ".json"

// detectFileFormat determines format from file extension.
// Unknown extensions are read as JSON.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// parseDocument decodes a document into a normalized tree.
func parseDocument(data []byte, format string) (Tree, error) {
	var doc any

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
		// Reject trailing content such as two concatenated documents
		if _, err := decoder.Token(); err != io.EOF {
			return nil, fmt.Errorf("invalid character after top-level value")
		}
	case FormatTOML:
		table := make(map[string]any)
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		doc = table
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc == nil {
			// An empty YAML document is an empty mapping
			doc = Tree{}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	tree, ok := normalize(doc).(Tree)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotMapping, doc)
	}
	return tree, nil
}

// encodeDocument renders a tree in the given format.
func encodeDocument(w io.Writer, tree Tree, format string) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tree)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(plainValue(tree, true))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(plainValue(tree, false)); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// plainValue converts json.Number into int64 or float64 for encoders that do
// not know it. TOML has no null, so dropNil removes nil entries for it.
func plainValue(value any, dropNil bool) any {
	switch v := value.(type) {
	case Tree:
		out := make(map[string]any, len(v))
		for key, x := range v {
			if x == nil && dropNil {
				continue
			}
			out[key] = plainValue(x, dropNil)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, x := range v {
			if x == nil && dropNil {
				continue
			}
			out = append(out, plainValue(x, dropNil))
		}
		return out
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return value
	}
}
