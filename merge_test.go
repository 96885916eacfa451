// FILE: lixenwraith/settings/merge_test.go
package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("EmptyIncomingIsIdentity", func(t *testing.T) {
		base := Tree{"a": Tree{"b": 1}, "list": []any{"x"}}
		assert.Equal(t, base, Merge(base, Tree{}))
		assert.Equal(t, base, Merge(Tree{}, base))
	})

	t.Run("IncomingScalarWins", func(t *testing.T) {
		merged := Merge(Tree{"a": 1, "b": "keep"}, Tree{"a": 2})
		assert.Equal(t, Tree{"a": 2, "b": "keep"}, merged)
	})

	t.Run("NestedMappingsMerge", func(t *testing.T) {
		base := Tree{"api": Tree{"host": "localhost", "port": 4567}}
		incoming := Tree{"api": Tree{"port": 8080, "user": "admin"}}

		merged := Merge(base, incoming)
		assert.Equal(t, Tree{"api": Tree{"host": "localhost", "port": 8080, "user": "admin"}}, merged)
	})

	t.Run("SequencesConcatenateWithoutDuplicates", func(t *testing.T) {
		merged := Merge(Tree{"a": []any{1, 2}}, Tree{"a": []any{2, 3}})
		assert.Equal(t, Tree{"a": []any{1, 2, 3}}, merged)
	})

	t.Run("SequenceDuplicatesAcrossNumberTypes", func(t *testing.T) {
		merged := Merge(Tree{"a": []any{json.Number("1")}}, Tree{"a": []any{int64(1), 2.5}})
		assert.Equal(t, Tree{"a": []any{json.Number("1"), 2.5}}, merged)
	})

	t.Run("SequenceOfMappingsDeduplicates", func(t *testing.T) {
		merged := Merge(
			Tree{"a": []any{Tree{"x": 1}}},
			Tree{"a": []any{Tree{"x": 1}, Tree{"x": 2}}},
		)
		assert.Equal(t, Tree{"a": []any{Tree{"x": 1}, Tree{"x": 2}}}, merged)
	})

	t.Run("LargeIntegersKeptDistinct", func(t *testing.T) {
		merged := Merge(
			Tree{"ids": []any{json.Number("9007199254740993")}},
			Tree{"ids": []any{json.Number("9007199254740992")}},
		)
		assert.Equal(t, Tree{"ids": []any{json.Number("9007199254740993"), json.Number("9007199254740992")}}, merged)
	})

	t.Run("ShapeMismatchIncomingWins", func(t *testing.T) {
		assert.Equal(t, Tree{"a": "text"}, Merge(Tree{"a": Tree{"b": 1}}, Tree{"a": "text"}))
		assert.Equal(t, Tree{"a": Tree{"b": 1}}, Merge(Tree{"a": []any{1}}, Tree{"a": Tree{"b": 1}}))
		assert.Equal(t, Tree{"a": nil}, Merge(Tree{"a": 1}, Tree{"a": nil}))
	})

	t.Run("InputsNotModified", func(t *testing.T) {
		base := Tree{"a": Tree{"b": 1}, "list": []any{1}}
		incoming := Tree{"a": Tree{"c": 2}, "list": []any{2}}

		merged := Merge(base, incoming)
		merged["a"].(Tree)["d"] = 3
		merged["list"] = append(merged["list"].([]any), 4)

		assert.Equal(t, Tree{"a": Tree{"b": 1}, "list": []any{1}}, base)
		assert.Equal(t, Tree{"a": Tree{"c": 2}, "list": []any{2}}, incoming)
	})

	t.Run("NilInputs", func(t *testing.T) {
		assert.Equal(t, Tree{"a": 1}, Merge(nil, Tree{"a": 1}))
		assert.Equal(t, Tree{"a": 1}, Merge(Tree{"a": 1}, nil))
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(json.Number("3"), int64(3)))
	assert.True(t, Equal(3, 3.0))
	assert.False(t, Equal(json.Number("3"), "3"))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 0))
	assert.True(t, Equal(Tree{"a": []any{1}}, Tree{"a": []any{json.Number("1")}}))
	assert.False(t, Equal(Tree{"a": 1}, Tree{"b": 1}))
	assert.False(t, Equal([]any{1, 2}, []any{2, 1}))

	assert.False(t, Equal(json.Number("9007199254740993"), json.Number("9007199254740992")))
	assert.False(t, Equal(json.Number("9007199254740993"), int64(9007199254740992)))
	assert.True(t, Equal(json.Number("9007199254740993"), int64(9007199254740993)))
	assert.True(t, Equal(json.Number("18446744073709551615"), uint64(18446744073709551615)))
	assert.False(t, Equal(int64(-1), uint64(18446744073709551615)))
	assert.True(t, Equal(json.Number("2.5"), 2.5))
	assert.True(t, Equal(json.Number("3.0"), 3))
}

func TestNormalize(t *testing.T) {
	doc := map[string]any{
		"a": map[any]any{1: "one"},
		"b": []map[string]any{{"x": 1}},
		"c": []string{"s"},
	}

	assert.Equal(t, Tree{
		"a": Tree{"1": "one"},
		"b": []any{Tree{"x": 1}},
		"c": []any{"s"},
	}, normalize(doc))
}
