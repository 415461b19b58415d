// Package cache is a keyed client-side cache of backend resources with
// staleness windows, request coalescing, invalidation and optimistic
// mutation support. One instance is shared by every service in the process.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Key struct {
	Resource string
	Filter   string
}

// NewKey builds a cache key from a resource name and an optional filter
// tuple, e.g. NewKey("leads", agentID, "status=new").
func NewKey(resource string, parts ...string) Key {
	return Key{Resource: resource, Filter: strings.Join(parts, "|")}
}

func (k Key) String() string {
	if k.Filter == "" {
		return k.Resource
	}
	return k.Resource + "[" + k.Filter + "]"
}

type Options struct {
	// StaleTime is how long a value is served without triggering a
	// background refetch. Zero means always fresh enough until invalidated.
	StaleTime time.Duration
	// CacheTime is how long an unused entry survives before eviction.
	CacheTime time.Duration
}

type Fetcher func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	lastUsed  time.Time
	stale     bool
	// gen counts local writes (invalidations, patches). A refetch that
	// started under an older gen carries a response that predates the write
	// and must not clear staleness.
	gen   uint64
	fetch Fetcher
	opts  Options
}

type flight struct {
	done  chan struct{}
	value any
	err   error
}

type Store struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	inflight map[Key]*flight
	defaults Options
	now      func() time.Time
}

func NewStore(defaults Options) *Store {
	if defaults.CacheTime <= 0 {
		defaults.CacheTime = 5 * time.Minute
	}
	return &Store{
		entries:  make(map[Key]*entry),
		inflight: make(map[Key]*flight),
		defaults: defaults,
		now:      time.Now,
	}
}

func (s *Store) normalize(opts Options) Options {
	if opts.StaleTime == 0 {
		opts.StaleTime = s.defaults.StaleTime
	}
	if opts.CacheTime == 0 {
		opts.CacheTime = s.defaults.CacheTime
	}
	return opts
}

// Read returns the cached value for key if present, refreshing it in the
// background once it is stale. On a miss the fetch runs synchronously;
// concurrent misses for the same key coalesce onto a single fetch.
func (s *Store) Read(ctx context.Context, key Key, fetch Fetcher, opts Options) (any, error) {
	opts = s.normalize(opts)

	s.mu.Lock()
	now := s.now()
	s.sweep(now)

	if e, ok := s.entries[key]; ok {
		e.lastUsed = now
		e.fetch = fetch
		e.opts = opts
		value := e.value
		if e.stale || now.Sub(e.fetchedAt) > opts.StaleTime {
			s.refreshLocked(key, fetch)
		}
		s.mu.Unlock()
		return value, nil
	}

	if fl, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-fl.done:
			return fl.value, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	fl := &flight{done: make(chan struct{})}
	s.inflight[key] = fl
	s.mu.Unlock()

	value, err := fetch(ctx)

	s.mu.Lock()
	delete(s.inflight, key)
	if err == nil {
		now := s.now()
		s.entries[key] = &entry{
			value:     value,
			fetchedAt: now,
			lastUsed:  now,
			fetch:     fetch,
			opts:      opts,
		}
	}
	s.mu.Unlock()

	fl.value = value
	fl.err = err
	close(fl.done)

	return value, err
}

// Invalidate marks entries stale and kicks a background refetch for each.
// The cached value stays visible until the refetch lands, so consumers never
// see a flash of missing data.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		e.stale = true
		e.gen++
		if e.fetch != nil {
			s.refreshLocked(key, e.fetch)
		}
	}
}

// InvalidateResource invalidates every entry for a resource, whatever the
// filter. Used after mutations whose reach across filters is unknown,
// e.g. a CSV import.
func (s *Store) InvalidateResource(resource string) {
	s.mu.Lock()
	keys := make([]Key, 0, len(s.entries))
	for key := range s.entries {
		if key.Resource == resource {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()
	s.Invalidate(keys...)
}

// ResourceKeys lists the currently cached keys for a resource, whatever
// their filter.
func (s *Store) ResourceKeys(resource string) []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.entries))
	for key := range s.entries {
		if key.Resource == resource {
			keys = append(keys, key)
		}
	}
	return keys
}

// Peek returns the cached value without touching staleness bookkeeping.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// refreshLocked starts one background refetch for key unless one is already
// in flight. Callers must hold s.mu.
func (s *Store) refreshLocked(key Key, fetch Fetcher) {
	if _, ok := s.inflight[key]; ok {
		return
	}
	var gen uint64
	if e, ok := s.entries[key]; ok {
		gen = e.gen
	}
	fl := &flight{done: make(chan struct{})}
	s.inflight[key] = fl
	go s.refetch(key, fetch, fl, gen)
}

// refetch runs detached from any caller: the consumer that made the entry
// stale may be long gone by the time the response arrives.
func (s *Store) refetch(key Key, fetch Fetcher, fl *flight, startGen uint64) {
	value, err := fetch(context.Background())

	s.mu.Lock()
	delete(s.inflight, key)
	if e, ok := s.entries[key]; ok {
		switch {
		case err != nil:
			// Keep serving the stale value; the next read retries.
			log.Warn().Err(err).Str("key", key.String()).Msg("background refetch failed")
		case e.gen != startGen:
			// The entry was invalidated or patched while this fetch was in
			// flight, so the response predates that write. Discard it and
			// fetch again.
			s.refreshLocked(key, e.fetch)
		default:
			e.value = value
			e.fetchedAt = s.now()
			e.stale = false
		}
	}
	s.mu.Unlock()

	fl.value = value
	fl.err = err
	close(fl.done)
}

// sweep evicts entries unused for longer than their CacheTime. Callers must
// hold s.mu.
func (s *Store) sweep(now time.Time) {
	for key, e := range s.entries {
		if _, busy := s.inflight[key]; busy {
			continue
		}
		if now.Sub(e.lastUsed) > e.opts.CacheTime {
			delete(s.entries, key)
		}
	}
}

// Read is the typed convenience wrapper over Store.Read.
func Read[T any](ctx context.Context, s *Store, key Key, opts Options, fetch func(context.Context) (T, error)) (T, error) {
	value, err := s.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return typed, nil
}
