package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templpad/templpad/backend"
	"github.com/templpad/templpad/compiler/models"
)

func newTestLinker(t *testing.T) *AssemblyLinker {
	t.Helper()
	env, err := InitBaseEnvironment()
	require.NoError(t, err)
	return NewAssemblyLinker(backend.NewJsBackend(), env, models.LinkOptions{})
}

func TestAssemblyLinker_CarriedErrorShortCircuits(t *testing.T) {
	linker := newTestLinker(t)

	results := []models.TranslationResult{{
		FilePath:      "main.tpl",
		GeneratedCode: "export function A($ctx) {}\n",
		Diagnostics: []models.Diagnostic{{
			Message:  "unterminated code block",
			Severity: models.Error,
		}},
	}}

	result, err := linker.Link(results)
	require.NoError(t, err)
	assert.Nil(t, result.BinaryImage)
	// No link pass ran: the carried diagnostic is the only one.
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "unterminated code block", result.Diagnostics[0].Message)
}

func TestAssemblyLinker_EmitsImage(t *testing.T) {
	linker := newTestLinker(t)

	results := []models.TranslationResult{{
		FilePath:      "main.tpl",
		GeneratedCode: "export function Greeting($ctx) {\n  $ctx.text(\"Hello\");\n}\n",
	}}

	result, err := linker.Link(results)
	require.NoError(t, err)
	require.True(t, result.Success())

	image, err := backend.DecodeImage(result.BinaryImage)
	require.NoError(t, err)
	require.Len(t, image.Modules, 1)
	assert.Equal(t, "main.tpl", image.Modules[0].Path)
	assert.Contains(t, image.Exports, "Greeting")
}

func TestAssemblyLinker_SyntaxErrorBlocksEmission(t *testing.T) {
	linker := newTestLinker(t)

	results := []models.TranslationResult{
		{
			FilePath:      "broken.js",
			GeneratedCode: "export function (\n",
		},
		{
			FilePath:      "main.tpl",
			GeneratedCode: "export function A($ctx) {}\n",
			Diagnostics: []models.Diagnostic{{
				Message:  "unknown directive @foo",
				Severity: models.Warning,
			}},
		},
	}

	result, err := linker.Link(results)
	require.NoError(t, err)
	assert.Nil(t, result.BinaryImage)
	require.NotEmpty(t, result.Diagnostics)

	// Link diagnostics come first, carried translation diagnostics follow.
	assert.Equal(t, models.Error, result.Diagnostics[0].Severity)
	assert.Equal(t, "broken.js", result.Diagnostics[0].Location.File)
	last := result.Diagnostics[len(result.Diagnostics)-1]
	assert.Equal(t, "unknown directive @foo", last.Message)
}

// A user export shadowing a library symbol warns but still emits.
func TestAssemblyLinker_ShadowWarningStillEmits(t *testing.T) {
	linker := newTestLinker(t)

	results := []models.TranslationResult{{
		FilePath:      "main.tpl",
		GeneratedCode: "export function Button($ctx) {}\n",
	}}

	result, err := linker.Link(results)
	require.NoError(t, err)
	assert.True(t, result.Success())

	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, models.Warning, result.Diagnostics[0].Severity)
	assert.Contains(t, result.Diagnostics[0].Message, `export "Button" shadows a library symbol`)
}

// A link error arriving after the diagnostic cap is reached must still
// block emission: a binary is present only when no diagnostic is an Error.
func TestAssemblyLinker_ErrorPastDiagnosticCapBlocksEmission(t *testing.T) {
	env, err := InitBaseEnvironment()
	require.NoError(t, err)
	linker := NewAssemblyLinker(backend.NewJsBackend(), env, models.LinkOptions{MaxDiagnostics: 1})

	results := []models.TranslationResult{
		{FilePath: "main.tpl", GeneratedCode: "export function Button($ctx) {}\n"},
		{FilePath: "a.tpl", GeneratedCode: "export function Same($ctx) {}\n"},
		{FilePath: "b.tpl", GeneratedCode: "export function Same($ctx) {}\n"},
	}

	result, err := linker.Link(results)
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Nil(t, result.BinaryImage)

	require.True(t, models.HasErrors(result.Diagnostics))
	assert.Equal(t, models.Warning, result.Diagnostics[0].Severity)
	last := result.Diagnostics[len(result.Diagnostics)-1]
	assert.Contains(t, last.Message, `duplicate symbol "Same"`)
}

func TestAssemblyLinker_EmptyInputEmitsMinimalImage(t *testing.T) {
	linker := newTestLinker(t)

	result, err := linker.Link(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	require.True(t, result.Success())

	image, err := backend.DecodeImage(result.BinaryImage)
	require.NoError(t, err)
	assert.Empty(t, image.Modules)
	assert.Empty(t, image.Exports)
}

func TestAssemblyLinker_RequiresBaseEnvironment(t *testing.T) {
	linker := NewAssemblyLinker(backend.NewJsBackend(), nil, models.LinkOptions{})

	_, err := linker.Link(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base environment not initialized")
}
