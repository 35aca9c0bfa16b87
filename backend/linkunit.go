package backend

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
)

// linkUnit merges syntax units onto a base reference set. It is immutable;
// AddUnits derives a new unit.
type linkUnit struct {
	refs  *models.ReferenceSet
	opts  models.LinkOptions
	units []contracts.SyntaxUnit
}

func (u *linkUnit) AddUnits(units []contracts.SyntaxUnit) contracts.LinkUnit {
	merged := &linkUnit{refs: u.refs, opts: u.opts}
	merged.units = append(merged.units, u.units...)
	merged.units = append(merged.units, units...)
	return merged
}

// Diagnostics reports everything above informational severity: per-unit
// syntax errors, duplicate exports across units, and exports shadowing a
// base-environment symbol.
func (u *linkUnit) Diagnostics() []models.Diagnostic {
	var diags []models.Diagnostic
	owner := map[string]string{}

	for _, unit := range u.units {
		diags = append(diags, unit.Diagnostics()...)

		for _, name := range unit.ExportedSymbols() {
			if prev, dup := owner[name]; dup {
				diags = append(diags, models.Diagnostic{
					Message:  fmt.Sprintf("duplicate symbol %q, already exported by %s", name, prev),
					Severity: models.Error,
					Location: &models.Location{File: unit.Path(), Line: 1},
				})
				continue
			}
			owner[name] = unit.Path()

			if u.refs.ContainsLeaf(name) {
				diags = append(diags, models.Diagnostic{
					Message:  fmt.Sprintf("export %q shadows a library symbol", name),
					Severity: models.Warning,
					Location: &models.Location{File: unit.Path(), Line: 1},
				})
			}
		}
	}

	if max := u.opts.MaxDiagnostics; max > 0 && len(diags) > max {
		// The cap bounds noise, not correctness: Error diagnostics past the
		// cap are still reported so emission gating sees every error.
		kept := make([]models.Diagnostic, 0, max)
		kept = append(kept, diags[:max]...)
		for _, d := range diags[max:] {
			if d.Severity >= models.Error {
				kept = append(kept, d)
			}
		}
		diags = kept
	}
	return diags
}

// Emit encodes the assembly image into buf. Callers gate on Diagnostics
// first; Emit itself only fails on encoding problems.
func (u *linkUnit) Emit(buf *bytes.Buffer) error {
	image := AssemblyImage{Schema: ImageSchemaVersion}
	for _, unit := range u.units {
		image.Exports = append(image.Exports, unit.ExportedSymbols()...)
		image.Modules = append(image.Modules, ModuleImage{Path: unit.Path(), Code: unit.Source()})
	}

	enc := msgpack.NewEncoder(buf)
	if err := enc.Encode(&image); err != nil {
		return fmt.Errorf("failed to encode assembly image: %w", err)
	}
	return nil
}

// AsReference exposes the merged export surface with no emitted code.
func (u *linkUnit) AsReference() *models.LinkReference {
	ref := &models.LinkReference{}
	for _, unit := range u.units {
		ref.Exports = append(ref.Exports, unit.ExportedSymbols()...)
	}
	return ref
}
