// FILE: lixenwraith/settings/diff.go
package settings

import (
	"encoding/json"
	"fmt"
)

// Change is a leaf of a diff: the value before and after a load.
// Either side may be Missing.
type Change struct {
	Old any
	New any
}

// MarshalJSON renders a change as a two element array.
func (c Change) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Old, c.New})
}

// String renders a change as "old -> new".
func (c Change) String() string {
	return fmt.Sprintf("%v -> %v", c.Old, c.New)
}

// Diff compares two trees and returns only the keys whose values differ.
// Differing mappings are diffed recursively; any other difference, including a
// key that exists on one side only, is reported as a Change.
func Diff(before, after Tree) Tree {
	result := make(Tree)

	for _, key := range unionKeys(before, after) {
		oldVal, oldExists := before[key]
		newVal, newExists := after[key]

		if oldExists && newExists && Equal(oldVal, newVal) {
			continue
		}

		oldTree, oldIsTree := oldVal.(Tree)
		newTree, newIsTree := newVal.(Tree)
		if oldExists && newExists && oldIsTree && newIsTree {
			result[key] = Diff(oldTree, newTree)
			continue
		}

		change := Change{Old: Missing, New: Missing}
		if oldExists {
			change.Old = Clone(oldVal)
		}
		if newExists {
			change.New = Clone(newVal)
		}
		result[key] = change
	}

	return result
}

// unionKeys lists before's keys followed by the keys only after has.
func unionKeys(before, after Tree) []string {
	keys := sortedKeys(before)
	for _, key := range sortedKeys(after) {
		if _, seen := before[key]; !seen {
			keys = append(keys, key)
		}
	}
	return keys
}

// ChangedPaths flattens a diff into dot-notation paths mapped to their changes.
func ChangedPaths(diff Tree) map[string]Change {
	paths := make(map[string]Change)
	collectChanges(diff, "", paths)
	return paths
}

func collectChanges(diff Tree, prefix string, paths map[string]Change) {
	for key, value := range diff {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case Change:
			paths[path] = v
		case Tree:
			collectChanges(v, path, paths)
		}
	}
}
