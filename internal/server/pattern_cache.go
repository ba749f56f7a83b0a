package server

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"GoMatch/internal/automaton"
)

// CacheStats is a point-in-time view of a PatternCache.
type CacheStats struct {
	Entries  int    `json:"entries"`
	Capacity int    `json:"capacity"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
}

// PatternCache keeps recently used compiled patterns. Compiled FSMs are
// immutable, so one instance is handed to every caller.
type PatternCache struct {
	opts     automaton.Options
	capacity int
	metrics  *Metrics
	logger   *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	hits    uint64
	misses  uint64
}

type cacheEntry struct {
	pattern string
	fsm     *automaton.FSM
}

// NewPatternCache creates a cache holding up to capacity patterns compiled
// with opts. metrics may be nil.
func NewPatternCache(capacity int, opts automaton.Options, metrics *Metrics, logger *slog.Logger) *PatternCache {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity < 1 {
		capacity = 1
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &PatternCache{
		opts:     opts,
		capacity: capacity,
		metrics:  metrics,
		logger:   logger,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the compiled FSM for pattern, compiling it on a miss.
// Concurrent misses for the same pattern share one compilation. Compile
// errors are returned and not cached.
func (c *PatternCache) Get(pattern string) (*automaton.FSM, error) {
	if fsm, ok := c.lookup(pattern); ok {
		return fsm, nil
	}

	v, err, _ := c.group.Do(pattern, func() (interface{}, error) {
		if fsm, ok := c.peek(pattern); ok {
			return fsm, nil
		}
		start := time.Now()
		fsm, err := automaton.CompileWithOptions(pattern, c.opts)
		if c.metrics != nil {
			c.metrics.CompileDuration.Observe(time.Since(start).Seconds())
			result := "ok"
			if err != nil {
				result = "error"
			}
			c.metrics.Compiles.WithLabelValues(result).Inc()
		}
		if err != nil {
			return nil, err
		}
		c.insert(pattern, fsm)
		return fsm, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*automaton.FSM), nil
}

// Stats returns current counters.
func (c *PatternCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries:  c.order.Len(),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// lookup is a counted read that refreshes recency.
func (c *PatternCache) lookup(pattern string) (*automaton.FSM, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[pattern]
	if !ok {
		c.misses++
		if c.metrics != nil {
			c.metrics.CacheMisses.Inc()
		}
		return nil, false
	}
	c.hits++
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).fsm, true
}

// peek is an uncounted read.
func (c *PatternCache) peek(pattern string) (*automaton.FSM, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[pattern]; ok {
		return el.Value.(*cacheEntry).fsm, true
	}
	return nil, false
}

func (c *PatternCache) insert(pattern string, fsm *automaton.FSM) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[pattern]; ok {
		c.order.MoveToFront(el)
		return
	}
	c.entries[pattern] = c.order.PushFront(&cacheEntry{pattern: pattern, fsm: fsm})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		evicted := oldest.Value.(*cacheEntry).pattern
		delete(c.entries, evicted)
		c.logger.Debug("evicted pattern", "pattern", evicted)
	}
}
