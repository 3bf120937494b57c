package ingest

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/encarte"
	"golang.org/x/time/rate"
)

var _ encarte.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out flyer fetches per site. Hosts that name the same
// site ("Mercado.example:443", "www.mercado.example.") share one bucket.
type HostLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	sites map[string]*rate.Limiter
}

// NewHostLimiter allows rps fetches per second to each site, one at a time.
// A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{
		limit: limit,
		sites: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a fetch from host is allowed or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.site(siteKey(host)).Wait(ctx)
}

func (h *HostLimiter) site(key string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.sites[key]
	if !ok {
		l = rate.NewLimiter(h.limit, 1)
		h.sites[key] = l
	}
	return l
}

// canonicalHost lower-cases host and drops a trailing dot and the default
// http/https port.
func canonicalHost(host string) string {
	host = strings.ToLower(host)
	if h, port, err := net.SplitHostPort(host); err == nil && (port == "80" || port == "443") {
		host = h
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
	}
	return strings.TrimSuffix(host, ".")
}

// siteKey is the canonical host without a leading "www.".
func siteKey(host string) string {
	return strings.TrimPrefix(canonicalHost(host), "www.")
}
