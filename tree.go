// FILE: lixenwraith/settings/tree.go
package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Tree is a settings mapping. Nested mappings are Trees, sequences are []any,
// everything else is a scalar. Keys are stored in their canonical string form.
type Tree = map[string]any

// Symbol is the symbolic form of a settings key. A Symbol and a string holding
// the same text address the same entry.
type Symbol string

// String returns the key text.
func (s Symbol) String() string { return string(s) }

// missing marks the absent side of a Change.
type missing struct{}

func (missing) String() string { return "<missing>" }

// MarshalJSON renders an absent value as null.
func (missing) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Missing is the value reported for a key that does not exist on one side of a diff.
var Missing any = missing{}

// Category keys that every settings tree carries.
const (
	keyChecks   = "checks"
	keyFilters  = "filters"
	keyMutators = "mutators"
	keyHandlers = "handlers"
)

// defaultTree returns a tree holding the four empty categories.
func defaultTree() Tree {
	return Tree{
		keyChecks:   Tree{},
		keyFilters:  Tree{},
		keyMutators: Tree{},
		keyHandlers: Tree{},
	}
}

// canonicalKey returns the stored form of a lookup key.
func canonicalKey(key any) (string, bool) {
	switch k := key.(type) {
	case string:
		return k, true
	case Symbol:
		return string(k), true
	case fmt.Stringer:
		return k.String(), true
	default:
		return "", false
	}
}

// Clone returns a deep copy of a settings value. Mappings and sequences are
// copied, scalars are shared.
func Clone(value any) any {
	switch v := value.(type) {
	case Tree:
		return cloneTree(v)
	case []any:
		return cloneSlice(v)
	default:
		return value
	}
}

func cloneTree(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = Clone(v)
	}
	return out
}

func cloneSlice(s []any) []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Clone(v)
	}
	return out
}

// Equal reports whether two settings values are structurally equal.
// Numbers are compared by value regardless of their decoded Go type, so
// json.Number("3"), int64(3) and 3.0 are equal. Two integers are compared
// exactly, beyond float64 precision.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)
		if !ok {
			return false
		}
		if ia, aInt := toInteger(a); aInt {
			if ib, bInt := toInteger(b); bInt {
				return ia.equal(ib)
			}
		}
		return na == nb
	}

	switch va := a.(type) {
	case Tree:
		vb, ok := b.(Tree)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, x := range va {
			y, exists := vb[k]
			if !exists || !Equal(x, y) {
				return false
			}
		}
		return true
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}

// toNumber widens any numeric settings value to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// integer is a whole number kept without float rounding.
// neg is set when the value is below zero, so small holds it as int64.
type integer struct {
	neg   bool
	small int64
	big   uint64
}

func (i integer) equal(o integer) bool {
	if i.neg != o.neg {
		return false
	}
	if i.neg {
		return i.small == o.small
	}
	return i.big == o.big
}

func signed(n int64) integer {
	if n < 0 {
		return integer{neg: true, small: n}
	}
	return integer{big: uint64(n)}
}

// toInteger reports the exact value of an integral settings number.
// Fractional values and floats are not integers here.
func toInteger(v any) (integer, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return signed(i), true
		}
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return integer{big: u}, true
		}
		return integer{}, false
	case int:
		return signed(int64(n)), true
	case int8:
		return signed(int64(n)), true
	case int16:
		return signed(int64(n)), true
	case int32:
		return signed(int64(n)), true
	case int64:
		return signed(n), true
	case uint:
		return integer{big: uint64(n)}, true
	case uint8:
		return integer{big: uint64(n)}, true
	case uint16:
		return integer{big: uint64(n)}, true
	case uint32:
		return integer{big: uint64(n)}, true
	case uint64:
		return integer{big: n}, true
	default:
		return integer{}, false
	}
}

// normalize converts decoded documents into the settings value model:
// every mapping becomes a Tree with string keys and every sequence becomes []any.
func normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Tree:
		out := make(Tree, len(v))
		for k, x := range v {
			out[k] = normalize(x)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = normalize(x)
		}
		return out
	case string, bool, json.Number, []byte:
		return v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		out := make(Tree, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return value
	}
}

// sortedKeys returns the keys of a tree in lexical order.
func sortedKeys(t Tree) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setPath sets a value in a nested tree using a dot-notation path.
// Intermediate segments that are missing or not mappings are replaced by new trees.
func setPath(t Tree, path string, value any) {
	segments := strings.Split(path, ".")
	current := t

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(Tree)
		if !ok {
			next = Tree{}
			current[segment] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// flatten converts a nested tree into dot-notation paths.
func flatten(nested Tree, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if sub, isMap := value.(Tree); isMap && len(sub) > 0 {
			for subPath, subValue := range flatten(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}
