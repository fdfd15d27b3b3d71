package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Target is one function definition that lacks a docstring.
type Target struct {
	Filepath  string
	StartLine int    // 1-based line of the def keyword
	EndLine   int    // 1-based inclusive end of the definition
	IndentCol int    // column offset of the def keyword
	Name      string // function identifier, for reporting
	Source    string // verbatim snapshot of the span at scan time
}

// ErrNoHeader means a Target's source contains no valid function header.
// That is an extractor bug, not bad user input, so callers must not
// swallow it.
var ErrNoHeader = errors.New("no function header in target source")

var defLineRe = regexp.MustCompile(`^\s*(async\s+)?def\b`)

// Signature returns the complete `def ...:` header of the target, spanning
// multiple physical lines when the parameter list is wrapped. Leading blank
// lines and decorators are skipped.
func (t Target) Signature() (string, error) {
	lines := strings.Split(t.Source, "\n")

	i := 0
	for ; i < len(lines); i++ {
		if defLineRe.MatchString(lines[i]) {
			break
		}
	}
	if i == len(lines) {
		return "", fmt.Errorf("%w: %s at %s:%d", ErrNoHeader, t.Name, t.Filepath, t.StartLine)
	}

	var sig []string
	for ; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		sig = append(sig, line)
		if strings.HasSuffix(line, ":") {
			return strings.Join(sig, "\n"), nil
		}
	}
	return "", fmt.Errorf("%w: header of %s at %s:%d never closes", ErrNoHeader, t.Name, t.Filepath, t.StartLine)
}

// Ref renders the target in the report's path:line:name form.
func (t Target) Ref() string {
	return fmt.Sprintf("%s:%d:%s", t.Filepath, t.StartLine, t.Name)
}
