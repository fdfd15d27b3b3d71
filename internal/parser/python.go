package parser

import (
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor walks the full tree, so nested functions and class
// methods are all candidates, not just module-level defs.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]Target, error) {
	lines := strings.Split(string(source), "\n")

	var targets []Target
	e.walk(root, source, lines, filePath, &targets)

	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].StartLine < targets[j].StartLine
	})
	return targets, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, lines []string, filePath string, targets *[]Target) {
	if node.Kind() == "function_definition" && !hasDocstring(node) {
		if tgt, ok := e.makeTarget(node, source, lines, filePath); ok {
			*targets = append(*targets, tgt)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, lines, filePath, targets)
	}
}

func (e *PythonExtractor) makeTarget(node *sitter.Node, source []byte, lines []string, filePath string) (Target, bool) {
	name := e.childFieldText(node, "name", source)
	if name == "" {
		return Target{}, false
	}

	startLine := int(node.StartPosition().Row) + 1
	endLine := int(node.EndPosition().Row) + 1
	if endLine > len(lines) {
		endLine = len(lines)
	}

	return Target{
		Filepath:  filePath,
		StartLine: startLine,
		EndLine:   endLine,
		IndentCol: int(node.StartPosition().Column),
		Name:      name,
		Source:    strings.Join(lines[startLine-1:endLine], "\n"),
	}, true
}

// hasDocstring reports whether the first statement of the function body is
// a string expression, mirroring ast.get_docstring semantics.
func hasDocstring(fn *sitter.Node) bool {
	body := fn.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}

	first := body.NamedChild(0)
	if first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}

	switch first.NamedChild(0).Kind() {
	case "string", "concatenated_string":
		return true
	}
	return false
}

func (e *PythonExtractor) childFieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}
