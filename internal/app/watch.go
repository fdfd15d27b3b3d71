package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"docgaps/internal/watcher"
)

// Watch re-audits the configured paths whenever Python files change,
// until ctx is cancelled. Findings are logged and recorded in the
// history store; the rate limiter caps rescan frequency during editor
// save storms.
func (a *App) Watch(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(a.Config.Watch.RescanPerS), 1)

	rescan := func(changed []string) {
		if !limiter.Allow() {
			slog.Debug("rescan throttled", "changed", len(changed))
			return
		}
		rescanTotal.Inc()

		reg, err := a.Scan()
		if err != nil {
			slog.Error("rescan failed", "error", err)
			return
		}

		fmt.Fprintf(a.out, "[%s] %d file(s) changed: %d missing docstring(s) in %d file(s)\n",
			time.Now().Format("15:04:05"), len(changed), len(reg.Targets), reg.FileCount)
		a.recordSnapshot(reg, 0)
	}

	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files, rescan)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(a.Config.ScanPaths); err != nil {
		return err
	}

	var obs *ObservabilityServer
	if addr := a.Config.Watch.MetricsAddr; addr != "" {
		obs = NewObservabilityServer(addr)
		obs.Start()
	}

	<-ctx.Done()

	if obs != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = obs.Stop(shutdownCtx)
	}
	return nil
}
