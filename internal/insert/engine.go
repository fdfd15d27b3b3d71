package insert

import (
	"fmt"
	"sort"
	"strings"

	"docgaps/internal/parser"
)

const delimiter = `"""`

// Insertion pairs a target with its accepted docstring.
type Insertion struct {
	Target parser.Target
	Doc    string
}

// Engine splices accepted docstrings into per-file line buffers.
type Engine struct {
	indentUnit int // spaces per indentation level
}

func NewEngine(indentUnit int) *Engine {
	if indentUnit <= 0 {
		indentUnit = 4
	}
	return &Engine{indentUnit: indentUnit}
}

// Apply splices every insertion for one file into buf. The batch is
// sorted descending by start line internally: each splice grows the
// buffer below itself only, so the still-pending insertion points above
// stay valid. Applying in any other order would corrupt all but the
// last-inserted target, which is why callers are not trusted to pre-sort.
func (e *Engine) Apply(buf *Buffer, batch []Insertion) (int, error) {
	sorted := make([]Insertion, len(batch))
	copy(sorted, batch)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Target.StartLine > sorted[j].Target.StartLine
	})

	applied := 0
	for _, ins := range sorted {
		if err := e.applyOne(buf, ins); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (e *Engine) applyOne(buf *Buffer, ins Insertion) error {
	line := ins.Target.StartLine
	if line < 1 || line > buf.Len() {
		return fmt.Errorf("target %s line %d outside buffer (%d lines)", ins.Target.Name, line, buf.Len())
	}

	// Indentation comes from the live buffer line, not the scan-time
	// snapshot, so upstream edits that re-indented the def are honored.
	def := buf.Line(line)
	base := def[:len(def)-len(strings.TrimLeft(def, " \t"))]
	indent := base + strings.Repeat(" ", e.indentUnit)

	doc := Normalize(ins.Doc)
	var indented []string
	for _, ln := range strings.Split(doc, "\n") {
		if ln == "" {
			indented = append(indented, "")
			continue
		}
		indented = append(indented, indent+ln)
	}
	indented = append(indented, "") // blank line after the docstring

	return buf.InsertAfter(line, indented)
}

// Normalize wraps text in triple quotes unless it is already delimited.
func Normalize(doc string) string {
	doc = strings.TrimSpace(doc)
	if strings.HasPrefix(doc, delimiter) && strings.HasSuffix(doc, delimiter) && len(doc) >= 2*len(delimiter) {
		return doc
	}
	return delimiter + "\n" + doc + "\n" + delimiter
}

// ApplyToFile loads path into a fresh buffer, applies the batch, and
// writes the file back exactly once. Nothing is written when the batch
// is empty or any splice fails.
func (e *Engine) ApplyToFile(path string, batch []Insertion) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	buf, err := LoadBuffer(path)
	if err != nil {
		return 0, err
	}

	n, err := e.Apply(buf, batch)
	if err != nil {
		return 0, err
	}

	if err := buf.Write(); err != nil {
		return 0, err
	}
	return n, nil
}
