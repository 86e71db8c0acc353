package worker

import (
	"sync"
	"sync/atomic"

	"tether/scene"
)

// Consumer is one routing client, typically a single rendered connector. It
// tracks request generations so an older route can never be applied over a
// newer one, regardless of completion order.
type Consumer struct {
	svc      *Service
	onResult func([]scene.Point)

	gen atomic.Uint64 // generation of the latest dispatched request

	mu       sync.Mutex
	applied  uint64 // generation of the last applied result
	last     []scene.Point
	haveLast bool
}

// NewConsumer creates a routing consumer. onResult, which may be nil, fires
// on the worker goroutine whenever an async result lands and has not been
// superseded.
func (s *Service) NewConsumer(onResult func([]scene.Point)) *Consumer {
	return &Consumer{svc: s, onResult: onResult}
}

// Route requests a route and returns the best points available right now:
// the last resolved result while the new request is pending, or an inline
// computation when nothing has resolved yet, so the first paint is never
// blank. In synchronous mode (configured, worker failure, or closed
// service) it computes inline with identical results.
func (c *Consumer) Route(params RouteParams) []scene.Point {
	if c.svc.syncMode() {
		gen := c.gen.Add(1)
		points := c.svc.computeInline(params)
		c.apply(gen, points)
		return points
	}

	gen := c.gen.Add(1)
	select {
	case c.svc.requests <- request{consumer: c, gen: gen, params: params}:
	default:
		// Queue full; degrade this request to an inline computation.
		points := c.svc.computeInline(params)
		c.apply(gen, points)
		return points
	}

	c.mu.Lock()
	if c.haveLast {
		points := c.last
		c.mu.Unlock()
		return points
	}
	c.mu.Unlock()

	// Nothing resolved yet: compute a provisional result inline. The
	// pending async result will supersede it.
	points := c.svc.computeInline(params)
	c.mu.Lock()
	if !c.haveLast {
		c.last = points
		c.haveLast = true
	} else {
		points = c.last
	}
	c.mu.Unlock()
	return points
}

// Last returns the most recently applied route, if any.
func (c *Consumer) Last() ([]scene.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.haveLast
}

// deliver is called by the worker when a request completes. Results for
// superseded generations are discarded.
func (c *Consumer) deliver(gen uint64, points []scene.Point) {
	if gen != c.gen.Load() {
		return
	}
	c.apply(gen, points)
}

// apply stores a result if no newer one has been applied, then notifies.
func (c *Consumer) apply(gen uint64, points []scene.Point) {
	c.mu.Lock()
	if gen <= c.applied {
		c.mu.Unlock()
		return
	}
	c.applied = gen
	c.last = points
	c.haveLast = true
	cb := c.onResult
	c.mu.Unlock()

	if cb != nil {
		cb(points)
	}
}
