// FILE: lixenwraith/settings/indifferent.go
package settings

import (
	"encoding/json"
	"sort"
)

// View is a read-only, key-indifferent wrapper over a settings tree.
// Entries can be addressed by string or Symbol at every mapping level.
// Nested mappings are returned as *View; mappings inside sequences are not wrapped.
type View struct {
	entries map[string]any
}

// MakeIndifferent wraps a tree and all of its nested mappings in Views.
// Wrapping an existing *View returns it unchanged; other values pass through.
func MakeIndifferent(value any) any {
	switch v := value.(type) {
	case *View:
		return v
	case Tree:
		return newView(v)
	default:
		return value
	}
}

func newView(t Tree) *View {
	entries := make(map[string]any, len(t))
	for key, value := range t {
		if sub, ok := value.(Tree); ok {
			entries[key] = newView(sub)
			continue
		}
		entries[key] = Clone(value)
	}
	return &View{entries: entries}
}

// Get returns the value stored under key in either of its forms.
func (v *View) Get(key any) (any, bool) {
	if v == nil {
		return nil, false
	}
	k, ok := canonicalKey(key)
	if !ok {
		return nil, false
	}
	value, exists := v.entries[k]
	return value, exists
}

// Lookup follows a chain of keys through nested views.
// Keys may mix strings and Symbols.
func (v *View) Lookup(keys ...any) (any, bool) {
	var current any = v
	for _, key := range keys {
		view, ok := current.(*View)
		if !ok {
			return nil, false
		}
		next, exists := view.Get(key)
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Has reports whether key is present.
func (v *View) Has(key any) bool {
	_, exists := v.Get(key)
	return exists
}

// Keys returns the canonical keys in lexical order.
func (v *View) Keys() []Symbol {
	if v == nil {
		return nil
	}
	keys := make([]Symbol, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, Symbol(k))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of entries at this level.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

// Tree returns an unwrapped deep copy of the view.
func (v *View) Tree() Tree {
	if v == nil {
		return nil
	}
	out := make(Tree, len(v.entries))
	for key, value := range v.entries {
		if sub, ok := value.(*View); ok {
			out[key] = sub.Tree()
			continue
		}
		out[key] = Clone(value)
	}
	return out
}

// MarshalJSON encodes the view as its underlying tree.
func (v *View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Tree())
}
