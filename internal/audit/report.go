package audit

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// WriteReport persists the audit as one path:line:name line per target,
// preceded by a run header.
func WriteReport(path string, reg *Registry) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# docgaps audit %s at %s\n", reg.RunID, time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "# %d missing docstring(s) in %d file(s)\n", len(reg.Targets), reg.FileCount)
	for _, line := range reg.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
