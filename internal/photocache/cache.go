// Package photocache memoizes photo lookups per service id for the lifetime
// of the session and deduplicates concurrent fetches: at most one request is
// ever outstanding per id.
package photocache

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "photo_cache_hits_total",
		Help:      "Photo lookups served from the session cache.",
	})
	fetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "photo_cache_fetches_total",
		Help:      "Photo lookups that went to the network.",
	})
	coalescedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "photo_cache_coalesced_total",
		Help:      "Photo lookups dropped because a fetch for the same id was already in flight.",
	})
)

// FetchFunc retrieves the photo URLs for one service id.
type FetchFunc func(ctx context.Context, serviceID string) ([]string, error)

// PublishFunc receives freshly fetched results so other observers (the app
// state) can see them.
type PublishFunc func(serviceID string, urls []string)

// Cache owns its in-flight markers and memoized results explicitly, so it is
// injectable and resettable in tests rather than ambient module state.
type Cache struct {
	fetch   FetchFunc
	publish PublishFunc
	log     zerolog.Logger

	mu       sync.Mutex
	photos   map[string][]string
	inflight map[string]struct{}
}

// New constructs a Cache. publish may be nil.
func New(fetch FetchFunc, publish PublishFunc, log zerolog.Logger) *Cache {
	return &Cache{
		fetch:    fetch,
		publish:  publish,
		log:      log,
		photos:   make(map[string][]string),
		inflight: make(map[string]struct{}),
	}
}

// Photos returns the photo URLs for serviceID.
//
//   - Cached id: the memoized sequence, no network.
//   - Fetch already outstanding for this id: an empty sequence immediately;
//     the caller may retry once the other fetch settles.
//   - Otherwise: fetch, memoize, publish. Failures are logged and yield an
//     empty sequence; Photos never returns an error.
func (c *Cache) Photos(ctx context.Context, serviceID string) []string {
	c.mu.Lock()
	if urls, ok := c.photos[serviceID]; ok {
		c.mu.Unlock()
		hitsTotal.Inc()
		return copyURLs(urls)
	}
	if _, busy := c.inflight[serviceID]; busy {
		c.mu.Unlock()
		coalescedTotal.Inc()
		return []string{}
	}
	c.inflight[serviceID] = struct{}{}
	c.mu.Unlock()

	// The marker must come off whatever happens to the fetch.
	defer func() {
		c.mu.Lock()
		delete(c.inflight, serviceID)
		c.mu.Unlock()
	}()

	fetchesTotal.Inc()
	urls, err := c.fetch(ctx, serviceID)
	if err != nil {
		c.log.Warn().Err(err).Str("service_id", serviceID).Msg("photo fetch failed")
		return []string{}
	}
	if urls == nil {
		urls = []string{}
	}

	c.mu.Lock()
	c.photos[serviceID] = copyURLs(urls)
	c.mu.Unlock()

	if c.publish != nil {
		c.publish(serviceID, copyURLs(urls))
	}
	return urls
}

// Cached returns the memoized sequence without ever fetching.
func (c *Cache) Cached(serviceID string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls, ok := c.photos[serviceID]
	if !ok {
		return nil, false
	}
	return copyURLs(urls), true
}

// Reset drops all memoized entries and markers. Intended for tests and for
// session teardown.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos = make(map[string][]string)
	c.inflight = make(map[string]struct{})
}

func copyURLs(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
