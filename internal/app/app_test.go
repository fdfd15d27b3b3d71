package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"docgaps/internal/config"
)

// queuePrompter answers Choose from a fixed script and never blocks.
type queuePrompter struct {
	answers []byte
}

func (p *queuePrompter) Choose(msg, valid string) (byte, error) {
	if len(p.answers) == 0 {
		return 0, fmt.Errorf("prompter script exhausted at %q", msg)
	}
	b := p.answers[0]
	p.answers = p.answers[1:]
	return b, nil
}

func (p *queuePrompter) Collect(msg, seed string) (string, error) { return seed, nil }
func (p *queuePrompter) Say(msg string)                           {}

// queueGenerator hands out canned docstrings in call order.
type queueGenerator struct {
	docs []string
}

func (g *queueGenerator) GenerateDocstring(ctx context.Context, source string) (string, error) {
	if len(g.docs) == 0 {
		return "", fmt.Errorf("generator script exhausted")
	}
	doc := g.docs[0]
	g.docs = g.docs[1:]
	return doc, nil
}

const twoGaps = `def f(a, b):
    return a + b


def g():
    return 0
`

func newTestApp(t *testing.T, dir string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		ScanPaths:  []string{dir},
		IndentUnit: 4,
	}
	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	var out bytes.Buffer
	a.SetOutput(&out)
	return a, &out
}

func TestInteractiveAcceptAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.py")
	require.NoError(t, os.WriteFile(path, []byte(twoGaps), 0o644))

	a, out := newTestApp(t, dir)
	a.SetGenerator(&queueGenerator{docs: []string{
		`"""Add a and b."""`,
		`"""Return zero."""`,
	}})
	prompter := &queuePrompter{answers: []byte{'g', 'a', 'g', 'a'}}

	require.NoError(t, a.Interactive(context.Background(), prompter, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `def f(a, b):
    """Add a and b."""

    return a + b


def g():
    """Return zero."""

    return 0
`
	require.Equal(t, want, string(got))
	require.Contains(t, out.String(), "Updated "+path+" (+2 docstring(s))")
	require.Contains(t, out.String(), "All accepted docstrings inserted (2 total).")

	// A rescan of the updated tree must come back clean.
	reg, err := a.Scan()
	require.NoError(t, err)
	require.Empty(t, reg.Targets)
}

func TestInteractiveSkipAllLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.py")
	require.NoError(t, os.WriteFile(path, []byte(twoGaps), 0o644))

	a, out := newTestApp(t, dir)
	prompter := &queuePrompter{answers: []byte{'s', 's'}}

	require.NoError(t, a.Interactive(context.Background(), prompter, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, twoGaps, string(got))
	require.Contains(t, out.String(), "No changes made.")
}

func TestInteractiveQuitKeepsEarlierAccepts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.py")
	require.NoError(t, os.WriteFile(path, []byte(twoGaps), 0o644))

	a, _ := newTestApp(t, dir)
	a.SetGenerator(&queueGenerator{docs: []string{`"""Add a and b."""`}})
	prompter := &queuePrompter{answers: []byte{'g', 'a', 'q'}}

	require.NoError(t, a.Interactive(context.Background(), prompter, false))

	// f got its docstring before the quit; g is still missing one.
	reg, err := a.Scan()
	require.NoError(t, err)
	require.Len(t, reg.Targets, 1)
	require.Equal(t, "g", reg.Targets[0].Name)
}

func TestAuditPrintsFindingsAndReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.py")
	require.NoError(t, os.WriteFile(path, []byte(twoGaps), 0o644))

	a, out := newTestApp(t, dir)
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	reg, err := a.Audit(reportPath, false)
	require.NoError(t, err)
	require.Len(t, reg.Targets, 2)

	require.Contains(t, out.String(), path+":1:f")
	require.Contains(t, out.String(), path+":5:g")

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(report), path+":5:g")
}

func TestAuditCleanTree(t *testing.T) {
	dir := t.TempDir()
	documented := "def f():\n    \"\"\"Done already.\"\"\"\n    return 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "done.py"), []byte(documented), 0o644))

	a, out := newTestApp(t, dir)
	reg, err := a.Audit("", false)
	require.NoError(t, err)
	require.Empty(t, reg.Targets)
	require.Contains(t, out.String(), "No missing docstrings found.")
}
