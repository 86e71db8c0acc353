// Package worker is the async routing facade: it offloads elbow path search
// to one persistent background goroutine and falls back to synchronous
// computation when the worker is disabled or has failed. The worker owns its
// obstacle snapshot exclusively; the host replaces it wholesale via message,
// never mutates it in place, and correlates responses to requests with
// per-consumer generation counters.
package worker

import (
	"log"
	"sync"
	"sync/atomic"

	"tether/routing"
	"tether/scene"
)

// Config holds the facade tunables.
type Config struct {
	// Synchronous disables the background worker entirely; every route
	// computes inline. Behavior is observably identical, minus the hop.
	Synchronous bool

	// QueueSize bounds the pending request queue. A full queue degrades the
	// overflowing request to an inline computation rather than blocking.
	QueueSize int

	// CacheSize bounds the route memoization cache.
	CacheSize int

	// Routing carries the elbow router tunables.
	Routing routing.Options
}

// DefaultConfig returns sensible facade defaults.
func DefaultConfig() Config {
	return Config{
		QueueSize: 64,
		CacheSize: 256,
		Routing:   routing.DefaultOptions(),
	}
}

// RouteParams describes one routing request.
type RouteParams struct {
	Start, End   scene.Point
	StartShapeID string
	EndShapeID   string
	MinStub      float64
}

// request is the host→worker route message.
type request struct {
	consumer *Consumer
	gen      uint64
	params   RouteParams
}

// snapshotMsg is the host→worker obstacle replacement message.
type snapshotMsg struct {
	shapes      []scene.Shape
	fingerprint uint64
}

// Service dispatches routing work to the background worker and owns the
// shared route cache. One Service serves many consumers.
type Service struct {
	cfg   Config
	cache *routing.Cache

	requests chan request
	updates  chan snapshotMsg
	quit     chan struct{}

	mu          sync.RWMutex
	shapes      []scene.Shape // latest snapshot, for the synchronous path
	fingerprint uint64
	havePushed  bool

	failed atomic.Bool // worker died; permanent synchronous fallback
	closed atomic.Bool
}

// NewService creates the facade and, unless configured synchronous, starts
// the background worker.
func NewService(cfg Config) *Service {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	s := &Service{
		cfg:      cfg,
		cache:    routing.NewCache(cfg.CacheSize),
		requests: make(chan request, cfg.QueueSize),
		updates:  make(chan snapshotMsg, 1),
		quit:     make(chan struct{}),
	}
	if !cfg.Synchronous {
		go s.run()
	}
	return s
}

// Close stops the background worker. Consumers keep working in synchronous
// mode afterwards.
func (s *Service) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.quit)
	}
}

// UpdateElements publishes the current scene to the facade. The snapshot is
// only copied and re-pushed to the worker when the spatial fingerprint
// actually changed, so identical scenes are never re-sent.
func (s *Service) UpdateElements(shapes []scene.Shape) {
	fp := Fingerprint(shapes)

	s.mu.Lock()
	if s.havePushed && fp == s.fingerprint {
		s.mu.Unlock()
		return
	}
	snapshot := make([]scene.Shape, len(shapes))
	copy(snapshot, shapes)
	s.shapes = snapshot
	s.fingerprint = fp
	s.havePushed = true
	s.mu.Unlock()

	if s.syncMode() {
		return
	}
	msg := snapshotMsg{shapes: snapshot, fingerprint: fp}
	// Replace any snapshot still sitting in the channel; only the newest
	// one matters.
	for {
		select {
		case s.updates <- msg:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// CurrentFingerprint returns the fingerprint of the last published scene.
func (s *Service) CurrentFingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}

// CacheStats exposes the route cache statistics string.
func (s *Service) CacheStats() string {
	return s.cache.String()
}

func (s *Service) syncMode() bool {
	return s.cfg.Synchronous || s.failed.Load() || s.closed.Load()
}

// run is the worker loop. It exclusively owns the obstacle snapshot it
// routes against; the snapshot is replaced whole on each update message. A
// panic anywhere in routing flips the facade into permanent synchronous
// mode instead of taking the host down.
func (s *Service) run() {
	defer func() {
		if r := recover(); r != nil {
			s.failed.Store(true)
			log.Printf("routing worker failed, falling back to synchronous routing: %v", r)
		}
	}()

	var cached []scene.Shape
	var fingerprint uint64

	for {
		select {
		case <-s.quit:
			return
		case msg := <-s.updates:
			cached, fingerprint = msg.shapes, msg.fingerprint
		case req := <-s.requests:
			// Apply any snapshot that arrived while requests were queued,
			// so routes always use the newest obstacles.
		drain:
			for {
				select {
				case msg := <-s.updates:
					cached, fingerprint = msg.shapes, msg.fingerprint
				default:
					break drain
				}
			}
			points := s.computeRoute(req.params, cached, fingerprint)
			req.consumer.deliver(req.gen, points)
		}
	}
}

// computeRoute resolves a request against a snapshot, through the cache.
func (s *Service) computeRoute(params RouteParams, shapes []scene.Shape, fingerprint uint64) []scene.Point {
	key := routing.NewRouteKey(params.Start, params.End, params.StartShapeID, params.EndShapeID, fingerprint)
	if points, ok := s.cache.Get(key); ok {
		return points
	}
	opts := s.cfg.Routing
	opts.MinStub = params.MinStub
	points := routing.ComputeElbowPoints(params.Start, params.End, params.StartShapeID, params.EndShapeID, shapes, opts)
	s.cache.Put(key, points)
	return points
}

// computeInline runs a request synchronously against the latest published
// snapshot. Used for the synchronous mode, the first paint, and queue
// overflow; results are identical to the worker path.
func (s *Service) computeInline(params RouteParams) []scene.Point {
	s.mu.RLock()
	shapes := s.shapes
	fingerprint := s.fingerprint
	s.mu.RUnlock()
	return s.computeRoute(params, shapes, fingerprint)
}
