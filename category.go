// FILE: lixenwraith/settings/category.go
package settings

import (
	"fmt"

	"dario.cat/mergo"
)

// Category is one of the four top-level definition collections.
type Category int

const (
	Checks Category = iota
	Filters
	Mutators
	Handlers
)

var categoryKeys = [...]string{
	Checks:   keyChecks,
	Filters:  keyFilters,
	Mutators: keyMutators,
	Handlers: keyHandlers,
}

// Categories returns every category in a fixed order.
func Categories() []Category {
	return []Category{Checks, Filters, Mutators, Handlers}
}

// String returns the settings key of the category.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryKeys[c]
}

func (c Category) valid() bool {
	return c >= Checks && c <= Handlers
}

// key returns the settings key, failing fast on values outside the enumeration.
func (c Category) key() string {
	if !c.valid() {
		panic(fmt.Errorf("%w: %d", ErrUnknownCategory, int(c)))
	}
	return categoryKeys[c]
}

// ParseCategory resolves a category from its name, in string or Symbol form.
func ParseCategory(name any) (Category, error) {
	key, ok := canonicalKey(name)
	if ok {
		for _, c := range Categories() {
			if categoryKeys[c] == key {
				return c, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownCategory, name)
}

// Definition is a named entry of a category, exposed with its name attribute.
type Definition = map[string]any

// categoryTree returns the mapping stored under the category, or nil.
func categoryTree(tree Tree, c Category) Tree {
	entries, _ := tree[c.key()].(Tree)
	return entries
}

// List returns every definition of the category, ordered by name.
// Each definition is a copy of its attributes with "name" set to its key.
func List(tree Tree, c Category) []Definition {
	entries := categoryTree(tree, c)
	definitions := make([]Definition, 0, len(entries))

	for _, name := range sortedKeys(entries) {
		definitions = append(definitions, definition(name, entries[name]))
	}

	return definitions
}

// definition builds the exposed form of one entry.
// The synthesized name takes precedence over a stored name attribute.
func definition(name string, attributes any) Definition {
	attrs, ok := attributes.(Tree)
	if !ok {
		return Definition{"name": name}
	}
	def := cloneTree(attrs)
	// Null attributes stay in def; only name is overridden
	if err := mergo.Merge(&def, Definition{"name": name}, mergo.WithOverride); err != nil {
		def["name"] = name
	}
	return def
}

// Exists reports whether the category holds a definition under name.
// name may be a string or Symbol.
func Exists(tree Tree, c Category, name any) bool {
	key, ok := canonicalKey(name)
	if !ok {
		return false
	}
	_, exists := categoryTree(tree, c)[key]
	return exists
}

// Find returns a single definition by name.
func Find(tree Tree, c Category, name any) (Definition, bool) {
	key, ok := canonicalKey(name)
	if !ok {
		return nil, false
	}
	attributes, exists := categoryTree(tree, c)[key]
	if !exists {
		return nil, false
	}
	return definition(key, attributes), true
}
