package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/encarte"
)

// Loader turns an input location into a document. Locations with an http
// or https scheme are fetched; anything else is read from disk.
type Loader struct {
	Fetcher encarte.Fetcher

	// Cleaner, when set, strips page chrome from HTML before parsing.
	// A failed or empty cleanup falls back to the raw HTML.
	Cleaner encarte.ContentExtractor

	// HTML parses HTML inputs. Plain text inputs never need it.
	HTML encarte.DocumentParser

	// RetryDelays defaults to DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Load reads location and parses it. HTML is recognized by a .html or .htm
// extension or by sniffing the content; everything else is plain text with
// form feeds between pages.
func (l *Loader) Load(ctx context.Context, location string) (encarte.Document, error) {
	content, name, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}

	if !isHTML(name, content) {
		return encarte.ParsePlainText(content), nil
	}
	if l.HTML == nil {
		return nil, encarte.Errorf(encarte.EINVALID, "no HTML parser configured for %s", location)
	}

	if l.Cleaner != nil {
		res, err := l.Cleaner.Extract(content)
		switch {
		case err != nil:
			l.logger().Warn("cleanup failed, parsing raw HTML", "location", location, "err", err)
		case strings.TrimSpace(res.ContentHTML) == "":
			l.logger().Warn("cleanup left no content, parsing raw HTML", "location", location)
		default:
			content = res.ContentHTML
		}
	}

	doc, err := l.HTML.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return doc, nil
}

// read returns the content of location and the path used for type detection.
func (l *Loader) read(ctx context.Context, location string) (content, name string, err error) {
	if u, ok := parseURL(location); ok {
		if l.Fetcher == nil {
			return "", "", encarte.Errorf(encarte.EINVALID, "no fetcher configured for %s", location)
		}
		delays := l.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}
		content, err := FetchWithRetry(ctx, location, l.Fetcher.Fetch, l.Logger, delays)
		if err != nil {
			return "", "", fmt.Errorf("fetch %s: %w", location, err)
		}
		return content, path.Base(u.Path), nil
	}

	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", encarte.Errorf(encarte.ENOTFOUND, "input %s not found", location)
	} else if err != nil {
		return "", "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(b), filepath.Base(location), nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

// parseURL reports whether location is an http(s) URL.
func parseURL(location string) (*url.URL, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func isHTML(name, content string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		return true
	case ".txt":
		return false
	}
	return strings.HasPrefix(http.DetectContentType([]byte(content)), "text/html")
}
