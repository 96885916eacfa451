// FILE: lixenwraith/settings/dump.go
package settings

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes the merged tree to w as json, toml or yaml.
func (l *Loader) Dump(w io.Writer, format string) error {
	tree := l.Tree()
	if err := encodeDocument(w, tree, format); err != nil {
		return fmt.Errorf("failed to dump settings as %s: %w", format, err)
	}
	return nil
}

// Debug returns a formatted report of loaded files, settings paths and warnings
func (l *Loader) Debug() string {
	tree := l.Tree()
	files := l.LoadedFiles()
	warnings := l.Warnings()

	var b strings.Builder
	b.WriteString("Settings Debug Info:\n")

	b.WriteString("Loaded files:\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("  %s\n", f))
	}

	b.WriteString("Current values:\n")
	flat := flatten(tree, "")
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		b.WriteString(fmt.Sprintf("  %s: %v\n", p, flat[p]))
	}

	b.WriteString("Warnings:\n")
	for _, w := range warnings {
		b.WriteString(fmt.Sprintf("  %s: %v\n", w.Message, w.Subject))
	}

	return b.String()
}
