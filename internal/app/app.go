package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"docgaps/internal/audit"
	"docgaps/internal/config"
	"docgaps/internal/editor"
	"docgaps/internal/highlight"
	"docgaps/internal/history"
	"docgaps/internal/insert"
	"docgaps/internal/llm"
	"docgaps/internal/parser"
	"docgaps/internal/session"
)

// App wires the scanner, the negotiation session, and the insertion
// engine together behind the three operations the CLI drives: Scan,
// Negotiate, Apply.
type App struct {
	Config *config.Config

	scanner   *audit.Scanner
	engine    *insert.Engine
	generator llm.Generator
	store     *history.Store // nil when history is disabled
	out       io.Writer
}

func New(cfg *config.Config) (*App, error) {
	p := parser.NewParser(parser.NewGrammarLoader())

	scanner, err := audit.NewScanner(p, cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		scanner:   scanner,
		engine:    insert.NewEngine(cfg.IndentUnit),
		generator: llm.NewGenerator(cfg.LLM),
		out:       os.Stdout,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			slog.Warn("audit history disabled", "path", cfg.History.Path, "error", err)
		} else {
			a.store = store
		}
	}

	return a, nil
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// SetOutput redirects user-facing prints, used by tests.
func (a *App) SetOutput(w io.Writer) { a.out = w }

// SetGenerator swaps the generation backend, used by tests.
func (a *App) SetGenerator(g llm.Generator) { a.generator = g }

// Scan builds the registry for the configured paths.
func (a *App) Scan() (*audit.Registry, error) {
	start := time.Now()
	reg, err := a.scanner.Scan(a.Config.ScanPaths)
	if err != nil {
		return nil, err
	}
	scanDuration.Observe(time.Since(start).Seconds())
	missingTotal.Set(float64(len(reg.Targets)))
	filesTotal.Set(float64(reg.FileCount))
	return reg, nil
}

// Negotiate runs the interactive session over the registry order using
// the given prompter.
func (a *App) Negotiate(ctx context.Context, reg *audit.Registry, prompter session.Prompter, showBody bool) ([]session.Outcome, error) {
	var hl highlight.Highlighter = highlight.Noop{}
	if fileIsTerminal(a.out) {
		hl = highlight.Chroma{}
	}

	sess := session.New(
		prompter,
		a.generator,
		editor.EnvLauncher{Command: a.Config.Editor.Command},
		hl,
		showBody,
	)
	return sess.Run(ctx, reg.Targets)
}

// Apply flushes accepted outcomes into their files, one buffer and one
// write per file, in the engine's descending-order discipline. It returns
// the total number of docstrings inserted.
func (a *App) Apply(outcomes []session.Outcome) (int, error) {
	grouped := make(map[string][]insert.Insertion)
	for _, o := range outcomes {
		if !o.Accepted {
			continue
		}
		grouped[o.Target.Filepath] = append(grouped[o.Target.Filepath], insert.Insertion{
			Target: o.Target,
			Doc:    o.Doc,
		})
	}

	paths := make([]string, 0, len(grouped))
	for path := range grouped {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	total := 0
	for _, path := range paths {
		n, err := a.engine.ApplyToFile(path, grouped[path])
		if err != nil {
			return total, fmt.Errorf("apply insertions to %s: %w", path, err)
		}
		total += n
		insertedTotal.Add(float64(n))
		fmt.Fprintf(a.out, "Updated %s (+%d docstring(s))\n", path, n)
	}

	return total, nil
}

// Audit runs the scan-only mode: prints every missing-docstring location,
// optionally writes the report file, and returns the registry for exit
// status decisions.
func (a *App) Audit(reportPath string, quiet bool) (*audit.Registry, error) {
	reg, err := a.Scan()
	if err != nil {
		return nil, err
	}

	if len(reg.Targets) == 0 {
		if !quiet {
			fmt.Fprintln(a.out, "No missing docstrings found.")
		}
		a.recordSnapshot(reg, 0)
		return reg, nil
	}

	if reportPath != "" {
		if err := audit.WriteReport(reportPath, reg); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		if !quiet {
			fmt.Fprintf(a.out, "Report written to %s (%d missing docstring(s)).\n", reportPath, len(reg.Targets))
		}
	}

	if !quiet {
		for _, line := range reg.Lines() {
			fmt.Fprintln(a.out, line)
		}
	}

	a.recordSnapshot(reg, 0)
	return reg, nil
}

// Interactive runs the full negotiate-then-apply flow.
func (a *App) Interactive(ctx context.Context, prompter session.Prompter, showBody bool) error {
	reg, err := a.Scan()
	if err != nil {
		return err
	}

	if len(reg.Targets) == 0 {
		fmt.Fprintln(a.out, "No missing docstrings found.")
		a.recordSnapshot(reg, 0)
		return nil
	}

	outcomes, err := a.Negotiate(ctx, reg, prompter, showBody)
	if err != nil {
		return err
	}

	inserted, err := a.Apply(outcomes)
	if err != nil {
		return err
	}

	if inserted == 0 {
		fmt.Fprintln(a.out, "No changes made.")
	} else {
		fmt.Fprintf(a.out, "All accepted docstrings inserted (%d total).\n", inserted)
	}

	a.recordSnapshot(reg, inserted)
	return nil
}

// Trends renders the recorded audit history.
func (a *App) Trends(since time.Time) (string, error) {
	if a.store == nil {
		return "", fmt.Errorf("audit history is not configured (set history.path)")
	}
	snapshots, err := a.store.LoadSnapshots(since)
	if err != nil {
		return "", err
	}
	return history.ComputeTrend(snapshots).String(), nil
}

func (a *App) recordSnapshot(reg *audit.Registry, inserted int) {
	if a.store == nil {
		return
	}
	err := a.store.SaveSnapshot(history.Snapshot{
		RunID:         reg.RunID,
		Timestamp:     time.Now().UTC(),
		FileCount:     reg.FileCount,
		MissingCount:  len(reg.Targets),
		InsertedCount: inserted,
		ParseFailures: reg.ParseFailures,
	})
	if err != nil {
		slog.Warn("failed to record audit snapshot", "error", err)
	}
}

func fileIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
