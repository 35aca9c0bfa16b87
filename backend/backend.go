package backend

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/templpad/templpad/compiler/contracts"
	"github.com/templpad/templpad/compiler/models"
	"github.com/templpad/templpad/embed_data"
)

// JsBackend is the language backend for the JavaScript intermediate
// language. It parses generated fragments with Tree-sitter and extracts the
// exported symbol surface via embedded queries.
type JsBackend struct {
	lang      *sitter.Language
	queryTags []string
	queries   map[string]string
}

// NewJsBackend initializes the backend, loading the export queries from the
// embedded query file.
func NewJsBackend() contracts.ILanguageBackend {
	queries := make(map[string]string)
	if err := json.Unmarshal(embed_data.JsExportQuery, &queries); err != nil {
		log.Fatalf("failed to parse export query JSON: %v", err)
	}

	// Fixed tag order keeps export extraction deterministic.
	tags := make([]string, 0, len(queries))
	for tag := range queries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return &JsBackend{
		lang:      javascript.GetLanguage(),
		queryTags: tags,
		queries:   queries,
	}
}

// Parse parses one generated fragment into a syntax unit tagged with its
// original file path. Diagnostics and exports are extracted eagerly so the
// unit does not keep the parse tree alive.
func (b *JsBackend) Parse(code string, filePath string) contracts.SyntaxUnit {
	parser := sitter.NewParser()
	parser.SetLanguage(b.lang)

	source := []byte(code)
	tree := parser.Parse(nil, source)
	root := tree.RootNode()

	return &syntaxUnit{
		path:    filePath,
		source:  code,
		diags:   collectSyntaxErrors(root, filePath),
		exports: b.extractExports(root, source),
	}
}

// CreateBaseUnit returns an empty link unit carrying the given references
// and options.
func (b *JsBackend) CreateBaseUnit(references *models.ReferenceSet, options models.LinkOptions) contracts.LinkUnit {
	return &linkUnit{refs: references, opts: options}
}

func (b *JsBackend) extractExports(root *sitter.Node, source []byte) []string {
	var exports []string
	for _, tag := range b.queryTags {
		query, err := sitter.NewQuery([]byte(b.queries[tag]), b.lang)
		if err != nil {
			log.Fatalf("failed to compile export query %q: %v", tag, err)
		}

		cursor := sitter.NewQueryCursor()
		cursor.Exec(query, root)

		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			for _, cap := range match.Captures {
				exports = append(exports, cap.Node.Content(source))
			}
		}
	}
	return exports
}

// collectSyntaxErrors walks the tree for ERROR and missing nodes. Children
// of an ERROR node are not descended into; one diagnostic per error region
// is enough.
func collectSyntaxErrors(root *sitter.Node, filePath string) []models.Diagnostic {
	if !root.HasError() {
		return nil
	}

	var diags []models.Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		point := n.StartPoint()
		loc := &models.Location{File: filePath, Line: int(point.Row) + 1, Column: int(point.Column)}
		if n.IsMissing() {
			diags = append(diags, models.Diagnostic{
				Message:  fmt.Sprintf("missing %s", n.Type()),
				Severity: models.Error,
				Location: loc,
			})
			return
		}
		if n.Type() == "ERROR" {
			diags = append(diags, models.Diagnostic{
				Message:  "syntax error",
				Severity: models.Error,
				Location: loc,
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return diags
}

type syntaxUnit struct {
	path    string
	source  string
	diags   []models.Diagnostic
	exports []string
}

func (u *syntaxUnit) Path() string                     { return u.path }
func (u *syntaxUnit) Source() string                   { return u.source }
func (u *syntaxUnit) Diagnostics() []models.Diagnostic { return u.diags }
func (u *syntaxUnit) ExportedSymbols() []string        { return u.exports }
