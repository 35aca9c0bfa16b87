package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSet_ResolveQualified(t *testing.T) {
	refs := NewReferenceSet("playground.ui.Button")

	qualified, ok := refs.Resolve("playground.ui.Button", nil)
	require.True(t, ok)
	assert.Equal(t, "playground.ui.Button", qualified)

	_, ok = refs.Resolve("playground.ui.Missing", nil)
	assert.False(t, ok)
}

func TestReferenceSet_ResolveBareViaImports(t *testing.T) {
	refs := NewReferenceSet("playground.ui.Button", "playground.services.HttpService")

	// Bare names only resolve through imported namespaces.
	_, ok := refs.Resolve("Button", nil)
	assert.False(t, ok)

	qualified, ok := refs.Resolve("Button", []string{"playground.services", "playground.ui"})
	require.True(t, ok)
	assert.Equal(t, "playground.ui.Button", qualified)
}

func TestReferenceSet_ResolveUnqualifiedUserExport(t *testing.T) {
	refs := NewReferenceSet("Greeting")

	qualified, ok := refs.Resolve("Greeting", nil)
	require.True(t, ok)
	assert.Equal(t, "Greeting", qualified)
}

func TestReferenceSet_ImportOrderWins(t *testing.T) {
	refs := NewReferenceSet("a.Button", "b.Button")

	qualified, ok := refs.Resolve("Button", []string{"b", "a"})
	require.True(t, ok)
	assert.Equal(t, "b.Button", qualified)
}

func TestReferenceSet_WithReferenceDoesNotMutate(t *testing.T) {
	base := NewReferenceSet("playground.ui.Button")

	extended := base.WithReference(&LinkReference{Exports: []string{"Greeting"}})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.True(t, extended.Contains("Greeting"))
	assert.False(t, base.Contains("Greeting"))

	assert.Same(t, base, base.WithReference(nil))
}

func TestReferenceSet_ContainsLeaf(t *testing.T) {
	refs := NewReferenceSet("playground.ui.Button", "Greeting")

	assert.True(t, refs.ContainsLeaf("Button"))
	// Bare user exports have no namespace and never match.
	assert.False(t, refs.ContainsLeaf("Greeting"))
	assert.False(t, refs.ContainsLeaf("Missing"))
}

func TestReferenceSet_SymbolsSorted(t *testing.T) {
	refs := NewReferenceSet("b.X", "a.X", "c.X")

	assert.Equal(t, []string{"a.X", "b.X", "c.X"}, refs.Symbols())
}

func TestReferenceSet_NilReceiver(t *testing.T) {
	var refs *ReferenceSet

	assert.False(t, refs.Contains("anything"))
	assert.False(t, refs.ContainsLeaf("anything"))
	_, ok := refs.Resolve("anything", []string{"ns"})
	assert.False(t, ok)
	assert.Nil(t, refs.Symbols())
	assert.Zero(t, refs.Len())
}
