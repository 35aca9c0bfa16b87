package models

import "fmt"

// FileType identifies how a playground source file is handled by the pipeline.
type FileType int

const (
	// Template files mix markup and embedded code and are translated to an
	// intermediate-language fragment before linking.
	Template FileType = iota
	// PlainSource files are passed to the linker as-is.
	PlainSource
)

// CodeFile is one user-authored input file. Identity is Path.
type CodeFile struct {
	Path    string
	Content string
	Type    FileType
}

// Severity levels are ordered: Info < Warning < Error.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Location points at a position in an original source file.
// Line is 1-based, Column is 0-based.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is a single message produced by translation or linking.
// It carries no ownership; results hold slices of them by value.
type Diagnostic struct {
	Message  string
	Severity Severity
	Location *Location
}

func (d Diagnostic) String() string {
	if d.Location != nil {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// HasErrors reports whether any diagnostic has Error severity.
func HasErrors(diags []Diagnostic) bool {
	for i := range diags {
		if diags[i].Severity >= Error {
			return true
		}
	}
	return false
}

// ProjectItem wraps a virtual file path plus raw bytes for the template engine.
type ProjectItem struct {
	FilePath string
	Content  []byte
}

// DeclarationHandle links a template-origin translation result back to the
// project-item metadata the full pass needs. Plain-source results never
// carry one.
type DeclarationHandle struct {
	Item       *ProjectItem
	Components []string
}

// TranslationOutput is what the template engine returns for a single item.
type TranslationOutput struct {
	GeneratedCode string
	Diagnostics   []Diagnostic
	Declaration   *DeclarationHandle
}

// TranslationResult is the per-file outcome of a project translation pass,
// ordered identically to the input file set.
type TranslationResult struct {
	FilePath      string
	GeneratedCode string
	Diagnostics   []Diagnostic
	Declaration   *DeclarationHandle
}

// AssemblyResult is the final outcome of a compilation. BinaryImage is
// present exactly when no diagnostic has Error severity.
type AssemblyResult struct {
	Diagnostics []Diagnostic
	BinaryImage []byte
}

// Success reports whether the compilation produced a binary image.
func (r *AssemblyResult) Success() bool {
	return r.BinaryImage != nil
}

// LinkOptions carries linker tuning shared by every compilation.
type LinkOptions struct {
	// MaxDiagnostics bounds how many link diagnostics a unit reports.
	// Zero means unbounded. Error-severity diagnostics are always reported
	// regardless of the bound.
	MaxDiagnostics int
}
