package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs resident set size along with Go heap stats to correlate native (OpenCV,
// Tk) vs heap growth during long scans.

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// AttrsFunc supplies extra key/value pairs for each memstats record. It runs
// on the logger goroutine and must be safe for concurrent use.
type AttrsFunc func() []any

// StartMemLogger launches a goroutine that logs memory stats every interval
// until ctx is done. RSS failures are logged once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, extra AttrsFunc) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	var rssErrLogged bool
	go tick(ctx, interval, func() {
		rss, err := residentSetSize()
		if err != nil && !rssErrLogged {
			logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
			rssErrLogged = true
		}
		logger.Info("memstats", memAttrs(rss, extra)...)
	})
}

func memAttrs(rss uint64, extra AttrsFunc) []any {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []any{
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_idle", ms.HeapIdle),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("rss", rss),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
	if extra != nil {
		attrs = append(attrs, extra()...)
	}
	return attrs
}
