package slog

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/encarte"
)

var _ encarte.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs each flyer download with its host, size and whether
// the body looks like HTML. Close reports totals for the run.
type LoggingFetcher struct {
	next   encarte.Fetcher
	logger *slog.Logger

	fetches atomic.Int64
	bytes   atomic.Int64
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next encarte.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Failures are logged at warn level.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (body string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("flyer fetch failed",
				"host", hostOf(rawURL),
				"url", rawURL,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.fetches.Add(1)
		f.bytes.Add(int64(len(body)))
		f.logger.Info("flyer fetched",
			"host", hostOf(rawURL),
			"url", rawURL,
			"bytes", len(body),
			"content", contentKind(body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() (err error) {
	defer func() {
		f.logger.Debug("fetcher closed",
			"fetches", f.fetches.Load(),
			"bytes", f.bytes.Load(),
			"err", err,
		)
	}()
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// contentKind reports "html" or "text" from the body's sniffed type.
func contentKind(body string) string {
	if strings.HasPrefix(http.DetectContentType([]byte(body)), "text/html") {
		return "html"
	}
	return "text"
}
