package audit

import (
	"github.com/google/uuid"

	"docgaps/internal/parser"
)

// Registry is the ordered set of targets located by one scan: sorted by
// file path, ascending by start line within a file. The order is the
// display order and the negotiation order.
type Registry struct {
	RunID         string
	Targets       []parser.Target
	FileCount     int // files successfully parsed
	ParseFailures int
}

func NewRegistry() *Registry {
	return &Registry{RunID: uuid.New().String()}
}

// ByFile groups targets per file, preserving ascending line order inside
// each group.
func (r *Registry) ByFile() map[string][]parser.Target {
	grouped := make(map[string][]parser.Target)
	for _, t := range r.Targets {
		grouped[t.Filepath] = append(grouped[t.Filepath], t)
	}
	return grouped
}

// Lines renders the audit in the report's path:line:name form.
func (r *Registry) Lines() []string {
	lines := make([]string, 0, len(r.Targets))
	for _, t := range r.Targets {
		lines = append(lines, t.Ref())
	}
	return lines
}
