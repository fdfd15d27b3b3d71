package history

import (
	"fmt"
	"strings"
	"time"
)

// Trend summarizes how the missing-docstring count moved across the
// recorded audits.
type Trend struct {
	Snapshots []Snapshot
	Delta     int // missing-count change from first to last
}

func ComputeTrend(snapshots []Snapshot) Trend {
	t := Trend{Snapshots: snapshots}
	if len(snapshots) >= 2 {
		t.Delta = snapshots[len(snapshots)-1].MissingCount - snapshots[0].MissingCount
	}
	return t
}

func (t Trend) String() string {
	if len(t.Snapshots) == 0 {
		return "No audit history recorded yet.\n"
	}

	var b strings.Builder
	b.WriteString("Audit history\n")
	b.WriteString("=============\n")
	for _, s := range t.Snapshots {
		fmt.Fprintf(&b, "%s  files=%d missing=%d inserted=%d\n",
			s.Timestamp.Format(time.RFC3339), s.FileCount, s.MissingCount, s.InsertedCount)
	}

	switch {
	case len(t.Snapshots) < 2:
		b.WriteString("\nNot enough runs for a trend.\n")
	case t.Delta < 0:
		fmt.Fprintf(&b, "\nMissing docstrings down by %d since first recorded run.\n", -t.Delta)
	case t.Delta > 0:
		fmt.Fprintf(&b, "\nMissing docstrings up by %d since first recorded run.\n", t.Delta)
	default:
		b.WriteString("\nMissing docstring count unchanged since first recorded run.\n")
	}
	return b.String()
}
