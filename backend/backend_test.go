package backend

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
)

func TestJsBackend_ParseExtractsExports(t *testing.T) {
	be := NewJsBackend()

	code := "export function render($ctx) {}\nexport class Widget {}\nfunction internal() {}\n"
	unit := be.Parse(code, "main.tpl")

	assert.Empty(t, unit.Diagnostics())
	assert.ElementsMatch(t, []string{"render", "Widget"}, unit.ExportedSymbols())
	assert.Equal(t, "main.tpl", unit.Path())
	assert.Equal(t, code, unit.Source())
}

func TestJsBackend_ParseReportsSyntaxErrors(t *testing.T) {
	be := NewJsBackend()

	unit := be.Parse("export function (\n", "broken.tpl")

	diags := unit.Diagnostics()
	require.NotEmpty(t, diags)
	assert.Equal(t, models.Error, diags[0].Severity)
	require.NotNil(t, diags[0].Location)
	assert.Equal(t, "broken.tpl", diags[0].Location.File)
	assert.GreaterOrEqual(t, diags[0].Location.Line, 1)
}

func TestJsBackend_ParseIsDeterministic(t *testing.T) {
	be := NewJsBackend()

	code := "export function a() {}\nexport function b() {}\nexport class C {}\n"
	first := be.Parse(code, "x.js")
	second := be.Parse(code, "x.js")

	assert.Equal(t, first.ExportedSymbols(), second.ExportedSymbols())
	assert.Equal(t, first.Diagnostics(), second.Diagnostics())
}

func TestLinkUnit_DuplicateExport(t *testing.T) {
	be := NewJsBackend()

	a := be.Parse("export function Same() {}\n", "a.tpl")
	b := be.Parse("export function Same() {}\n", "b.tpl")
	unit := be.CreateBaseUnit(models.NewReferenceSet(), models.LinkOptions{}).
		AddUnits([]contracts.SyntaxUnit{a, b})

	diags := unit.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, models.Error, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `duplicate symbol "Same", already exported by a.tpl`)
	assert.Equal(t, "b.tpl", diags[0].Location.File)
}

func TestLinkUnit_ShadowWarning(t *testing.T) {
	be := NewJsBackend()

	unit := be.CreateBaseUnit(models.NewReferenceSet("playground.ui.Button"), models.LinkOptions{}).
		AddUnits([]contracts.SyntaxUnit{be.Parse("export function Button() {}\n", "main.tpl")})

	diags := unit.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, models.Warning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `export "Button" shadows a library symbol`)
}

func TestLinkUnit_MaxDiagnosticsBound(t *testing.T) {
	be := NewJsBackend()

	refs := models.NewReferenceSet("playground.ui.Button", "playground.ui.Card")
	a := be.Parse("export function Button() {}\n", "a.tpl")
	b := be.Parse("export function Card() {}\n", "b.tpl")
	unit := be.CreateBaseUnit(refs, models.LinkOptions{MaxDiagnostics: 1}).
		AddUnits([]contracts.SyntaxUnit{a, b})

	diags := unit.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, models.Warning, diags[0].Severity)
}

// The diagnostic cap only drops warnings; an Error past the cap must still
// be reported so callers never emit for an erroneous program.
func TestLinkUnit_ErrorSurvivesDiagnosticCap(t *testing.T) {
	be := NewJsBackend()

	refs := models.NewReferenceSet("playground.ui.Button")
	shadow := be.Parse("export function Button() {}\n", "main.tpl")
	a := be.Parse("export function Same() {}\n", "a.tpl")
	b := be.Parse("export function Same() {}\n", "b.tpl")
	unit := be.CreateBaseUnit(refs, models.LinkOptions{MaxDiagnostics: 1}).
		AddUnits([]contracts.SyntaxUnit{shadow, a, b})

	diags := unit.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, models.Warning, diags[0].Severity)
	assert.Equal(t, models.Error, diags[1].Severity)
	assert.Contains(t, diags[1].Message, `duplicate symbol "Same"`)
	assert.True(t, models.HasErrors(diags))
}

// AddUnits derives a new unit and leaves the receiver untouched.
func TestLinkUnit_AddUnitsIsImmutable(t *testing.T) {
	be := NewJsBackend()
	base := be.CreateBaseUnit(models.NewReferenceSet(), models.LinkOptions{})

	extended := base.AddUnits([]contracts.SyntaxUnit{be.Parse("export function A() {}\n", "a.tpl")})

	assert.Empty(t, base.AsReference().Exports)
	assert.Equal(t, []string{"A"}, extended.AsReference().Exports)
}

func TestLinkUnit_EmitRoundTrip(t *testing.T) {
	be := NewJsBackend()

	code := "export function Greeting($ctx) {}\n"
	unit := be.CreateBaseUnit(models.NewReferenceSet(), models.LinkOptions{}).
		AddUnits([]contracts.SyntaxUnit{be.Parse(code, "main.tpl")})

	var buf bytes.Buffer
	require.NoError(t, unit.Emit(&buf))

	image, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ImageSchemaVersion, image.Schema)
	assert.Equal(t, []string{"Greeting"}, image.Exports)
	require.Len(t, image.Modules, 1)
	assert.Equal(t, "main.tpl", image.Modules[0].Path)
	assert.Equal(t, code, image.Modules[0].Code)
}

func TestDecodeImage_RejectsGarbage(t *testing.T) {
	_, err := DecodeImage([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}
