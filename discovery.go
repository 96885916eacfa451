// FILE: lixenwraith/settings/discovery.go
package settings

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// windowsSeparator matches a backslash that is followed by a non-space character.
var windowsSeparator = regexp.MustCompile(`\\(\S)`)

// normalizeDirectory rewrites Windows style separators to forward slashes.
func normalizeDirectory(path string) string {
	return windowsSeparator.ReplaceAllString(path, "/$1")
}

// discoverFiles returns every regular file below dir whose name ends in one of
// the extensions, sorted by path. Extensions match case-sensitively.
// Unreadable or missing directories contribute nothing.
func discoverFiles(dir string, extensions []string) []string {
	if len(extensions) == 0 {
		extensions = []string{DefaultExtension}
	}

	var found []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip what cannot be read, keep walking the rest
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				found = append(found, filepath.ToSlash(path))
				break
			}
		}
		return nil
	})

	sort.Strings(found)
	return found
}
