package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrs_KeepsInsertionOrder(t *testing.T) {
	attrs := Attrs("id", 1, "foo", "bar", 3, "skipped", "dangling")

	assert.Equal(t, []string{"id", "foo"}, attrs.Keys())
	assert.Equal(t, 1, attrs.Value("id"))
	assert.True(t, attrs.Has("foo"))
	assert.False(t, attrs.Has("dangling"))
}

func TestAttributes_Merge(t *testing.T) {
	base := Attrs("class", "y", "id", "a")
	merged := base.Merge(Attrs("id", "x", "title", "t"))

	assert.Equal(t, []string{"class", "id", "title"}, merged.Keys())
	assert.Equal(t, "x", merged.Value("id"))
	assert.Equal(t, "a", base.Value("id"), "merge must not mutate the receiver")
	assert.Equal(t, 2, base.Len())
}

func TestAttributes_ZeroValue(t *testing.T) {
	var attrs Attributes

	assert.Zero(t, attrs.Len())
	assert.Nil(t, attrs.Value("id"))
	assert.Equal(t, map[string]any{}, attrs.Map())

	next := attrs.With("id", "x")
	assert.Equal(t, 1, next.Len())
	assert.Zero(t, attrs.Len())
}

func TestAttributesFrom(t *testing.T) {
	fromMap, ok := AttributesFrom(map[string]any{"b": 2, "a": 1})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, fromMap.Keys())

	fromStrings, ok := AttributesFrom(map[string]string{"id": "x"})
	require.True(t, ok)
	assert.Equal(t, "x", fromStrings.Value("id"))

	attrs := Attrs("id", "x")
	fromPtr, ok := AttributesFrom(&attrs)
	require.True(t, ok)
	assert.Equal(t, attrs, fromPtr)

	_, ok = AttributesFrom([]string{"id"})
	assert.False(t, ok)
	_, ok = AttributesFrom(nil)
	assert.False(t, ok)
}
