package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cmm/internal/ast"
	"cmm/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Label    string          `json:"label,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the unit as an indented tree.
func FormatASTPretty(w io.Writer, b *ast.Builder, unit *ast.Unit, fs *source.FileSet) error {
	if unit == nil {
		return fmt.Errorf("no translation unit")
	}
	root := buildUnitNode(b, unit)
	header := unit.Path
	if header == "" {
		header = "TranslationUnit"
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(unit.Span, fs)); err != nil {
		return err
	}
	for i, child := range root.Children {
		writeTree(w, child, "", i == len(root.Children)-1, fs)
	}
	return nil
}

func writeTree(w io.Writer, node ASTNodeOutput, prefix string, last bool, fs *source.FileSet) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	label := node.Kind
	if node.Label != "" {
		label += ": " + node.Label
	}
	fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, label, formatSpan(node.Span, fs))
	for i, child := range node.Children {
		writeTree(w, child, prefix+next, i == len(node.Children)-1, fs)
	}
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, unit *ast.Unit) error {
	if unit == nil {
		return fmt.Errorf("no translation unit")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildUnitNode(b, unit))
}

// formatSpan prints line:col of the first and last range, or byte offsets without a FileSet.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if sp.Empty() {
		return "-"
	}
	first, last := sp.First(), sp.Last()
	if fs == nil {
		return fmt.Sprintf("%d-%d", first.Start, last.End)
	}
	start, _ := fs.Resolve(first)
	_, end := fs.Resolve(last)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func specsString(specs ast.DeclSpecs) string {
	parts := make([]string, 0, len(specs.Items))
	for _, sp := range specs.Items {
		parts = append(parts, sp.Name)
	}
	return strings.Join(parts, " ")
}

// describeDeclarator reads a declarator chain from the name outwards,
// e.g. "names: array of pointer to const char".
func describeDeclarator(b *ast.Builder, id ast.DeclaratorID, base string) string {
	var layers []*ast.Declarator
	name := ""
	for id.IsValid() {
		d := b.Declarators.Get(id)
		if d.Kind == ast.DeclaratorName {
			name = d.Name
			break
		}
		if d.Kind != ast.DeclaratorAbstract {
			layers = append(layers, d)
		}
		id = d.Inner
	}
	words := make([]string, 0, len(layers)+1)
	for i := len(layers) - 1; i >= 0; i-- {
		d := layers[i]
		switch d.Kind {
		case ast.DeclaratorPointer:
			words = append(words, strings.Join(append(append([]string(nil), d.Quals...), "pointer to"), " "))
		case ast.DeclaratorArray:
			words = append(words, "array of")
		case ast.DeclaratorFunction:
			variadic := ""
			if d.Variadic {
				variadic = ", ..."
			}
			words = append(words, fmt.Sprintf("function(%d params%s) returning", len(d.Params), variadic))
		}
	}
	words = append(words, base)
	desc := strings.Join(words, " ")
	if name == "" {
		return desc
	}
	return name + ": " + desc
}
