package state

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry hands out one Container per user, loading it on first use.
type Registry struct {
	gw   Gateway
	opts Options

	mu         sync.Mutex
	containers map[string]*Container
	// draining holds evicted containers until their background saves finish.
	draining map[*Container]struct{}
	loads    singleflight.Group
}

// NewRegistry creates an empty Registry backed by gw.
func NewRegistry(gw Gateway, opts Options) *Registry {
	return &Registry{
		gw:         gw,
		opts:       opts,
		containers: make(map[string]*Container),
		draining:   make(map[*Container]struct{}),
	}
}

// Get returns the user's container, loading it if needed. Concurrent first
// requests for the same user share one load.
func (r *Registry) Get(ctx context.Context, userID string) (*Container, error) {
	r.mu.Lock()
	if c, ok := r.containers[userID]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	v, err, _ := r.loads.Do(userID, func() (interface{}, error) {
		r.mu.Lock()
		if c, ok := r.containers[userID]; ok {
			r.mu.Unlock()
			return c, nil
		}
		evicted := r.drainingFor(userID)
		r.mu.Unlock()

		// A reload must see every save the evicted container still has in flight.
		for _, old := range evicted {
			old.Wait()
		}

		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		c, err := Load(context.WithoutCancel(ctx), r.gw, userID, r.opts)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.containers[userID] = c
		r.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Container), nil
}

// Evict drops the user's container so the next Get reloads it. Background
// work already started still completes, and the reload waits for it.
func (r *Registry) Evict(userID string) {
	r.mu.Lock()
	c, ok := r.containers[userID]
	if ok {
		delete(r.containers, userID)
		r.draining[c] = struct{}{}
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	go func() {
		c.Wait()
		r.mu.Lock()
		delete(r.draining, c)
		r.mu.Unlock()
	}()
}

// drainingFor returns the user's evicted containers. r.mu must be held.
func (r *Registry) drainingFor(userID string) []*Container {
	var out []*Container
	for c := range r.draining {
		if c.userID == userID {
			out = append(out, c)
		}
	}
	return out
}

// Drain waits for the background work of every loaded or evicted container.
func (r *Registry) Drain() {
	r.mu.Lock()
	all := make([]*Container, 0, len(r.containers)+len(r.draining))
	for _, c := range r.containers {
		all = append(all, c)
	}
	for c := range r.draining {
		all = append(all, c)
	}
	r.mu.Unlock()

	for _, c := range all {
		c.Wait()
	}
}
