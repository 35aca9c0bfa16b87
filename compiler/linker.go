package compiler

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
)

// emitBufferSize pre-sizes the emission buffer for a typical playground
// output. Performance hint, not a correctness constraint.
const emitBufferSize = 64 * 1024

// AssemblyLinker merges translated fragments onto the base environment and
// emits the in-memory assembly image.
type AssemblyLinker struct {
	backend contracts.ILanguageBackend
	env     *BaseEnvironment
	opts    models.LinkOptions
}

// NewAssemblyLinker wires a linker against an initialized base environment.
func NewAssemblyLinker(backend contracts.ILanguageBackend, env *BaseEnvironment, opts models.LinkOptions) *AssemblyLinker {
	return &AssemblyLinker{backend: backend, env: env, opts: opts}
}

// Link produces the final assembly result. The binary image is present
// exactly when no diagnostic has Error severity; emission is attempted at
// most once. The returned error covers infrastructure failures only, never
// problems with the user's input.
func (l *AssemblyLinker) Link(results []models.TranslationResult) (*models.AssemblyResult, error) {
	if l.env == nil {
		return nil, errors.New("base environment not initialized")
	}

	carried := collectDiagnostics(results)
	if models.HasErrors(carried) {
		return &models.AssemblyResult{Diagnostics: carried}, nil
	}

	units := make([]contracts.SyntaxUnit, 0, len(results))
	for _, r := range results {
		units = append(units, l.backend.Parse(r.GeneratedCode, r.FilePath))
	}
	unit := l.backend.CreateBaseUnit(l.env.References, l.opts).AddUnits(units)

	// Link diagnostics come first in the final ordering.
	linkDiags := unit.Diagnostics()
	diagnostics := append(linkDiags, carried...)
	if models.HasErrors(linkDiags) {
		return &models.AssemblyResult{Diagnostics: diagnostics}, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, emitBufferSize))
	if err := unit.Emit(buf); err != nil {
		return nil, fmt.Errorf("assembly emission failed: %w", err)
	}
	return &models.AssemblyResult{Diagnostics: diagnostics, BinaryImage: buf.Bytes()}, nil
}
