package compiler

import (
	"fmt"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
	"github.com/templpad/templpad/embed_data"
)

// providerScaffolding is prepended (never appended) to the first template
// file of the set, so every project gets the shared service-injection
// imports without writing them.
var providerScaffolding = string(embed_data.ProviderScaffolding)

// ProjectCompiler runs the two-pass translation over a file set: a
// declaration pass with no cross-file references, then a full pass against
// the base environment plus a temporary link reference built from the
// declaration outputs. The second pass is what lets templates reference
// components declared in other templates regardless of file order.
type ProjectCompiler struct {
	engine  contracts.ITemplateEngine
	backend contracts.ILanguageBackend
	env     *BaseEnvironment
	opts    models.LinkOptions
}

// NewProjectCompiler wires a project compiler against an initialized base
// environment.
func NewProjectCompiler(engine contracts.ITemplateEngine, backend contracts.ILanguageBackend, env *BaseEnvironment, opts models.LinkOptions) *ProjectCompiler {
	return &ProjectCompiler{engine: engine, backend: backend, env: env, opts: opts}
}

// Translate returns one result per input file, in input order. On a
// declaration-pass failure it returns a single synthetic result carrying the
// union of all diagnostics collected so far and the full pass never runs.
func (pc *ProjectCompiler) Translate(files []models.CodeFile) []models.TranslationResult {
	if dup, ok := findDuplicatePath(files); ok {
		return []models.TranslationResult{{Diagnostics: []models.Diagnostic{{
			Message:  fmt.Sprintf("duplicate file path %q in input", dup),
			Severity: models.Error,
		}}}}
	}

	// Phase 1: declaration pass, no external references visible.
	phase1 := make([]models.TranslationResult, 0, len(files))
	for i, file := range files {
		if file.Type != models.Template {
			phase1 = append(phase1, models.TranslationResult{FilePath: file.Path, GeneratedCode: file.Content})
			continue
		}
		out := pc.engine.ProcessDeclarationOnly(prepareItem(i, file))
		phase1 = append(phase1, models.TranslationResult{
			FilePath:      file.Path,
			GeneratedCode: out.GeneratedCode,
			Diagnostics:   out.Diagnostics,
			Declaration:   out.Declaration,
		})
	}

	collected := collectDiagnostics(phase1)
	if models.HasErrors(collected) {
		return []models.TranslationResult{{Diagnostics: collected}}
	}

	// Speculatively link the declaration outputs. Never emitted; it only
	// exists so the full pass can resolve cross-file components.
	tempUnit := pc.speculativeLink(phase1)
	if linkDiags := tempUnit.Diagnostics(); models.HasErrors(linkDiags) {
		return []models.TranslationResult{{Diagnostics: append(collected, linkDiags...)}}
	}

	references := pc.env.References.WithReference(tempUnit.AsReference())

	// Phase 2: full pass. Plain-source results carry over from phase 1.
	results := make([]models.TranslationResult, len(phase1))
	copy(results, phase1)
	for i, file := range files {
		if file.Type != models.Template {
			continue
		}
		// Reuse the prepared item so the boilerplate prepend is identical
		// across passes; engines that return no declaration handle get a
		// freshly prepared item instead.
		var item *models.ProjectItem
		if decl := phase1[i].Declaration; decl != nil && decl.Item != nil {
			item = decl.Item
		} else {
			item = prepareItem(i, file)
		}
		out := pc.engine.Process(item, references)
		results[i] = models.TranslationResult{
			FilePath:      file.Path,
			GeneratedCode: out.GeneratedCode,
			Diagnostics:   out.Diagnostics,
			Declaration:   out.Declaration,
		}
	}
	return results
}

func (pc *ProjectCompiler) speculativeLink(results []models.TranslationResult) contracts.LinkUnit {
	units := make([]contracts.SyntaxUnit, 0, len(results))
	for _, r := range results {
		units = append(units, pc.backend.Parse(r.GeneratedCode, r.FilePath))
	}
	return pc.backend.CreateBaseUnit(pc.env.References, pc.opts).AddUnits(units)
}

// prepareItem wraps one input file for the template engine, prepending the
// provider scaffolding to file index 0 only.
func prepareItem(index int, file models.CodeFile) *models.ProjectItem {
	content := file.Content
	if index == 0 {
		content = providerScaffolding + content
	}
	return &models.ProjectItem{FilePath: file.Path, Content: []byte(content)}
}

func findDuplicatePath(files []models.CodeFile) (string, bool) {
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, dup := seen[f.Path]; dup {
			return f.Path, true
		}
		seen[f.Path] = struct{}{}
	}
	return "", false
}

func collectDiagnostics(results []models.TranslationResult) []models.Diagnostic {
	var diags []models.Diagnostic
	for _, r := range results {
		diags = append(diags, r.Diagnostics...)
	}
	return diags
}
