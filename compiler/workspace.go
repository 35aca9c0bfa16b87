package compiler

import (
	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
)

// Status labels reported through the sink at coarse pipeline milestones.
// Observable behavior: a cache hit reports nothing.
const (
	statusPreparingProject  = "Preparing Project"
	statusCompilingAssembly = "Compiling Assembly"
)

// Workspace is the core-exposed surface: one entry point taking an ordered
// file collection plus an optional status sink, returning an assembly
// result. At most one compile should be in flight per workspace; callers
// serialize.
type Workspace struct {
	engine       contracts.ITemplateEngine
	backend      contracts.ILanguageBackend
	cache        *CompilationCache
	cacheEnabled bool
	opts         models.LinkOptions
}

// NewWorkspace wires a workspace from a template engine and language backend.
// The compilation cache starts enabled.
func NewWorkspace(engine contracts.ITemplateEngine, backend contracts.ILanguageBackend, opts models.LinkOptions) *Workspace {
	return &Workspace{
		engine:       engine,
		backend:      backend,
		cache:        NewCompilationCache(),
		cacheEnabled: true,
		opts:         opts,
	}
}

// SetCacheEnabled toggles the compilation cache. Disabling drops the stored
// slot and makes every compile run the full pipeline.
func (w *Workspace) SetCacheEnabled(enabled bool) {
	w.cacheEnabled = enabled
	if !enabled {
		w.cache.Reset()
	}
}

// CompileToAssembly compiles the file set, serving an unchanged input from
// the cache slot. All input-caused problems come back as diagnostics inside
// the result; the error return is reserved for infrastructure failures.
func (w *Workspace) CompileToAssembly(files []models.CodeFile, onStatus contracts.StatusSink) (*models.AssemblyResult, error) {
	var fingerprint uint64
	if w.cacheEnabled {
		fingerprint = w.cache.Fingerprint(files)
		if result, ok := w.cache.Get(fingerprint); ok {
			return result, nil
		}
	}

	env, err := InitBaseEnvironment()
	if err != nil {
		return nil, err
	}

	safeNotify(onStatus, statusPreparingProject)
	project := NewProjectCompiler(w.engine, w.backend, env, w.opts)
	results := project.Translate(files)

	safeNotify(onStatus, statusCompilingAssembly)
	linker := NewAssemblyLinker(w.backend, env, w.opts)
	result, err := linker.Link(results)
	if err != nil {
		return nil, err
	}

	if w.cacheEnabled {
		w.cache.Put(fingerprint, result)
	}
	return result, nil
}

// ResetCache drops the cached result, forcing the next compile to run the
// full pipeline.
func (w *Workspace) ResetCache() {
	w.cache.Reset()
}

// safeNotify shields the pipeline from a misbehaving status sink: sink
// panics are swallowed so the compile result depends only on its inputs.
func safeNotify(sink contracts.StatusSink, label string) {
	if sink == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	sink(label)
}
