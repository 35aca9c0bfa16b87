package contracts

import (
	"bytes"

	"github.com/templpad/templpad/compiler/models"
)

// ITemplateEngine translates one template-flavored source file into an
// intermediate-language fragment plus diagnostics. Implementations are
// stateless per call apart from the reference set they are handed.
type ITemplateEngine interface {
	// ProcessDeclarationOnly runs the restricted declaration pass: no
	// cross-file symbol references are visible and no resolution happens.
	// The output's Declaration carries the processed item back to the
	// caller so the full pass can reuse it unchanged; implementations
	// should set it whenever the pass completes.
	ProcessDeclarationOnly(item *models.ProjectItem) *models.TranslationOutput
	// Process runs the full pass with the given references visible to
	// cross-file lookups.
	Process(item *models.ProjectItem, references *models.ReferenceSet) *models.TranslationOutput
}

// SyntaxUnit is one parsed intermediate-language fragment, tagged with the
// original file path for diagnostic location mapping.
type SyntaxUnit interface {
	Path() string
	Source() string
	Diagnostics() []models.Diagnostic
	ExportedSymbols() []string
}

// LinkUnit is a merged compilation unit. AddUnits returns a new unit; link
// units are never mutated in place.
type LinkUnit interface {
	AddUnits(units []SyntaxUnit) LinkUnit
	Diagnostics() []models.Diagnostic
	// Emit writes the binary image into buf. It must only be called when
	// Diagnostics contains no Error severity.
	Emit(buf *bytes.Buffer) error
	// AsReference produces a metadata-only reference for cross-file
	// resolution. It never emits code.
	AsReference() *models.LinkReference
}

// ILanguageBackend performs low-level parsing, linking and emission of the
// intermediate language.
type ILanguageBackend interface {
	Parse(code string, filePath string) SyntaxUnit
	CreateBaseUnit(references *models.ReferenceSet, options models.LinkOptions) LinkUnit
}

// StatusSink receives coarse human-readable progress labels. Invocations are
// fire-and-forget; a failing sink must never affect a compilation.
type StatusSink func(label string)
