package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
)

// TemplateEngine translates the playground template dialect into JavaScript
// fragments the language backend can link. The dialect is line-oriented:
//
//	@import <namespace>      bring a namespace's exports into tag scope
//	@component <Name>        start a component block (runs to next @component)
//	@inject <Service>        bind a service inside a component
//	@{ ... }                 verbatim code block (closing brace on its own line)
//	<Name/> <Name> </Name>   component tags, Name may be dotted
//
// Lines before the first @component form the file's implicit page component.
type TemplateEngine struct{}

// NewTemplateEngine returns the reference template engine.
func NewTemplateEngine() contracts.ITemplateEngine {
	return &TemplateEngine{}
}

var (
	directiveRe = regexp.MustCompile(`^@(\w+)\s*(.*?)\s*$`)
	selfTagRe   = regexp.MustCompile(`^<([A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)*)\s*/>\s*$`)
	openTagRe   = regexp.MustCompile(`^<([A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)*)\s*>\s*$`)
	closeTagRe  = regexp.MustCompile(`^</([A-Za-z_][\w$]*(?:\.[A-Za-z_][\w$]*)*)\s*>\s*$`)
	identRe     = regexp.MustCompile(`^[A-Za-z_][\w$]*$`)
	pathSanRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ProcessDeclarationOnly runs the restricted declaration pass: the export
// surface is discovered and stubbed out, but no tag or service resolution
// takes place and no cross-file references are consulted.
func (e *TemplateEngine) ProcessDeclarationOnly(item *models.ProjectItem) *models.TranslationOutput {
	return e.translate(item, nil, false)
}

// Process runs the full pass with the given references visible.
func (e *TemplateEngine) Process(item *models.ProjectItem, references *models.ReferenceSet) *models.TranslationOutput {
	return e.translate(item, references, true)
}

type opKind int

const (
	opText opKind = iota
	opTagSelf
	opTagOpen
	opTagClose
	opCode
	opInject
)

type bodyOp struct {
	kind opKind
	arg  string
	line int
	col  int
}

type componentBlock struct {
	name string
	line int
	body []bodyOp
}

func (e *TemplateEngine) translate(item *models.ProjectItem, refs *models.ReferenceSet, resolve bool) *models.TranslationOutput {
	var (
		diags      []models.Diagnostic
		imports    []string
		components []*componentBlock
		seen       = map[string]int{}
		inCode     bool
		codeStart  int
	)

	page := &componentBlock{name: pageExportName(item.FilePath)}
	current := page

	lines := strings.Split(string(item.Content), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if inCode {
			if trimmed == "}" {
				inCode = false
				continue
			}
			current.body = append(current.body, bodyOp{kind: opCode, arg: raw, line: lineNo})
			continue
		}

		switch {
		case trimmed == "":
			continue

		case trimmed == "@{":
			inCode = true
			codeStart = lineNo

		case strings.HasPrefix(trimmed, "@"):
			m := directiveRe.FindStringSubmatch(trimmed)
			if m == nil {
				diags = append(diags, errorAt(item.FilePath, lineNo, 0, "malformed directive"))
				continue
			}
			name, arg := m[1], m[2]
			switch name {
			case "import":
				if arg == "" {
					diags = append(diags, errorAt(item.FilePath, lineNo, 0, "@import requires a namespace"))
					continue
				}
				imports = append(imports, arg)
			case "component":
				if !identRe.MatchString(arg) {
					diags = append(diags, errorAt(item.FilePath, lineNo, 0, fmt.Sprintf("invalid component name %q", arg)))
					continue
				}
				if prev, dup := seen[arg]; dup {
					diags = append(diags, errorAt(item.FilePath, lineNo, 0,
						fmt.Sprintf("component %q already declared on line %d", arg, prev)))
					continue
				}
				seen[arg] = lineNo
				block := &componentBlock{name: arg, line: lineNo}
				components = append(components, block)
				current = block
			case "inject":
				if current == page {
					diags = append(diags, models.Diagnostic{
						Message:  "@inject outside a component has no effect",
						Severity: models.Warning,
						Location: &models.Location{File: item.FilePath, Line: lineNo},
					})
					continue
				}
				if !identRe.MatchString(arg) {
					diags = append(diags, errorAt(item.FilePath, lineNo, 0, fmt.Sprintf("invalid service name %q", arg)))
					continue
				}
				current.body = append(current.body, bodyOp{kind: opInject, arg: arg, line: lineNo})
			default:
				diags = append(diags, models.Diagnostic{
					Message:  fmt.Sprintf("unknown directive @%s", name),
					Severity: models.Warning,
					Location: &models.Location{File: item.FilePath, Line: lineNo},
				})
			}

		case selfTagRe.MatchString(trimmed):
			name := selfTagRe.FindStringSubmatch(trimmed)[1]
			current.body = append(current.body, bodyOp{kind: opTagSelf, arg: name, line: lineNo, col: strings.Index(raw, "<")})

		case openTagRe.MatchString(trimmed):
			name := openTagRe.FindStringSubmatch(trimmed)[1]
			current.body = append(current.body, bodyOp{kind: opTagOpen, arg: name, line: lineNo, col: strings.Index(raw, "<")})

		case closeTagRe.MatchString(trimmed):
			current.body = append(current.body, bodyOp{kind: opTagClose, line: lineNo})

		default:
			current.body = append(current.body, bodyOp{kind: opText, arg: raw, line: lineNo})
		}
	}

	if inCode {
		diags = append(diags, errorAt(item.FilePath, codeStart, 0, "unterminated code block"))
	}

	exports := make([]string, 0, len(components)+1)
	exports = append(exports, page.name)
	for _, c := range components {
		exports = append(exports, c.name)
	}

	own := map[string]struct{}{}
	for _, c := range components {
		own[c.name] = struct{}{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// generated from %s\n", item.FilePath)
	blocks := append([]*componentBlock{page}, components...)
	for _, block := range blocks {
		if !resolve {
			// Declaration pass keeps the export surface but stubs every body.
			fmt.Fprintf(&sb, "export function %s($ctx) {}\n", block.name)
			continue
		}
		fmt.Fprintf(&sb, "export function %s($ctx) {\n", block.name)
		for _, op := range block.body {
			e.emitOp(&sb, item.FilePath, op, own, imports, refs, &diags)
		}
		sb.WriteString("}\n")
	}

	return &models.TranslationOutput{
		GeneratedCode: sb.String(),
		Diagnostics:   diags,
		Declaration: &models.DeclarationHandle{
			Item:       item,
			Components: exports,
		},
	}
}

func (e *TemplateEngine) emitOp(sb *strings.Builder, file string, op bodyOp, own map[string]struct{}, imports []string, refs *models.ReferenceSet, diags *[]models.Diagnostic) {
	switch op.kind {
	case opText:
		fmt.Fprintf(sb, "  $ctx.text(%s);\n", strconv.Quote(op.arg))
	case opCode:
		sb.WriteString(op.arg)
		sb.WriteString("\n")
	case opTagClose:
		sb.WriteString("  $ctx.close();\n")
	case opTagSelf, opTagOpen:
		qualified, ok := e.resolveTag(op.arg, own, imports, refs)
		if !ok {
			*diags = append(*diags, errorAt(file, op.line, op.col,
				fmt.Sprintf("unable to resolve component %q", op.arg)))
			return
		}
		if op.kind == opTagSelf {
			fmt.Fprintf(sb, "  $ctx.child(%s);\n", strconv.Quote(qualified))
		} else {
			fmt.Fprintf(sb, "  $ctx.open(%s);\n", strconv.Quote(qualified))
		}
	case opInject:
		qualified, ok := refs.Resolve(op.arg, imports)
		if !ok {
			*diags = append(*diags, errorAt(file, op.line, 0,
				fmt.Sprintf("unable to resolve service %q", op.arg)))
			return
		}
		fmt.Fprintf(sb, "  const %s = $ctx.service(%s);\n", "$svc$"+op.arg, strconv.Quote(qualified))
	}
}

// resolveTag checks the file's own components before consulting the shared
// reference set, so a template can always reference what it declares itself.
func (e *TemplateEngine) resolveTag(name string, own map[string]struct{}, imports []string, refs *models.ReferenceSet) (string, bool) {
	if _, ok := own[name]; ok {
		return name, true
	}
	return refs.Resolve(name, imports)
}

func errorAt(file string, line, col int, msg string) models.Diagnostic {
	return models.Diagnostic{
		Message:  msg,
		Severity: models.Error,
		Location: &models.Location{File: file, Line: line, Column: col},
	}
}

func pageExportName(path string) string {
	return "Page$" + pathSanRe.ReplaceAllString(path, "_")
}
