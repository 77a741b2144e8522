package dispatch

import (
	"sync"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// pending is a single-slot completion handle for one in-flight request.
// It is fulfilled at most once by the response collector.
type pending struct {
	ch   chan struct{}
	resp *domain.Response
	once sync.Once
}

func newPending() *pending {
	return &pending{ch: make(chan struct{})}
}

// fulfill completes the handle. Later calls are ignored.
func (p *pending) fulfill(resp *domain.Response) {
	p.once.Do(func() {
		p.resp = resp
		close(p.ch)
	})
}

// done is closed once the handle is fulfilled.
func (p *pending) done() <-chan struct{} {
	return p.ch
}

// registry maps in-flight request ids to their completion handles. It
// replaces the old requeue-on-mismatch scan over the response queue: the
// collector popping a response looks its waiter up here and fulfills it
// directly.
type registry struct {
	mu      sync.Mutex
	waiters map[string]*pending
}

func newRegistry() *registry {
	return &registry{waiters: make(map[string]*pending)}
}

// register creates a handle for the given request id.
func (r *registry) register(id string) *pending {
	p := newPending()
	r.mu.Lock()
	r.waiters[id] = p
	r.mu.Unlock()
	return p
}

// resolve removes and returns the handle for id, if a caller is still
// waiting on it.
func (r *registry) resolve(id string) (*pending, bool) {
	r.mu.Lock()
	p, ok := r.waiters[id]
	if ok {
		delete(r.waiters, id)
	}
	r.mu.Unlock()
	return p, ok
}

// drop removes the handle for id without fulfilling it. Used when the caller
// gives up after a timeout; the eventual response is then discarded by the
// collector.
func (r *registry) drop(id string) {
	r.mu.Lock()
	delete(r.waiters, id)
	r.mu.Unlock()
}

// size reports the number of in-flight handles.
func (r *registry) size() int {
	r.mu.Lock()
	n := len(r.waiters)
	r.mu.Unlock()
	return n
}

// failAll fulfills every in-flight handle with the given response template,
// used on shutdown so no caller hangs.
func (r *registry) failAll(errMsg string) {
	r.mu.Lock()
	waiters := r.waiters
	r.waiters = make(map[string]*pending)
	r.mu.Unlock()

	for id, p := range waiters {
		p.fulfill(&domain.Response{RequestID: id, Error: errMsg})
	}
}
