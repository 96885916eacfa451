// FILE: lixenwraith/settings/merge.go
package settings

// Merge combines incoming on top of base and returns a new tree.
// Neither input is modified.
//
// For each key:
//   - two mappings are merged recursively
//   - two sequences are concatenated (base first) with later duplicates dropped
//   - anything else is replaced by the incoming value
//
// Keys present only in base are carried over unchanged.
func Merge(base, incoming Tree) Tree {
	merged := make(Tree, len(base)+len(incoming))
	for key, value := range base {
		merged[key] = Clone(value)
	}

	for key, inVal := range incoming {
		baseVal, exists := base[key]
		if !exists {
			merged[key] = Clone(inVal)
			continue
		}

		switch b := baseVal.(type) {
		case Tree:
			if in, ok := inVal.(Tree); ok {
				merged[key] = Merge(b, in)
				continue
			}
		case []any:
			if in, ok := inVal.([]any); ok {
				merged[key] = mergeSequences(b, in)
				continue
			}
		}

		merged[key] = Clone(inVal)
	}

	return merged
}

// mergeSequences appends incoming to base, keeping the first occurrence of
// every structurally equal element.
func mergeSequences(base, incoming []any) []any {
	out := make([]any, 0, len(base)+len(incoming))

	appendUnique := func(values []any) {
		for _, v := range values {
			duplicate := false
			for _, seen := range out {
				if Equal(seen, v) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				out = append(out, Clone(v))
			}
		}
	}

	appendUnique(base)
	appendUnique(incoming)
	return out
}
