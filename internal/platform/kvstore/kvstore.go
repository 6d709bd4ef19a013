// Package kvstore provides namespaced key-value storage shared by many open
// views, with change notifications delivered to the views that did not make
// the change.
package kvstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrClosed is returned by operations on a closed view.
var ErrClosed = errors.New("kvstore: view is closed")

// Change describes a new value written under Key by another view.
type Change struct {
	Key     string
	Value   string
	Present bool
}

// Store is the per-view storage contract.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Subscribe(key string, fn func(Change)) (cancel func())
}

// Backend persists values for one namespace at a time.
type Backend interface {
	Load(ctx context.Context, namespace string, key string) (string, bool, error)
	Save(ctx context.Context, namespace string, key string, value string) error
}

// Origin groups views that share storage, like browser tabs of one site. A
// namespace partitions the origin per visitor.
type Origin struct {
	backend Backend

	mu    sync.Mutex
	views map[string]map[*View]struct{}
}

// NewOrigin returns an origin persisting through backend.
func NewOrigin(backend Backend) *Origin {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Origin{backend: backend, views: map[string]map[*View]struct{}{}}
}

// View opens a new view of namespace. Callers must Close it when done.
func (o *Origin) View(namespace string) *View {
	namespace = strings.TrimSpace(namespace)
	v := &View{origin: o, namespace: namespace, subs: map[string]map[int]func(Change){}}
	o.mu.Lock()
	defer o.mu.Unlock()
	group, ok := o.views[namespace]
	if !ok {
		group = map[*View]struct{}{}
		o.views[namespace] = group
	}
	group[v] = struct{}{}
	return v
}

func (o *Origin) openViews(namespace string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.views[strings.TrimSpace(namespace)])
}

func (o *Origin) detach(v *View) {
	o.mu.Lock()
	defer o.mu.Unlock()
	group := o.views[v.namespace]
	delete(group, v)
	if len(group) == 0 {
		delete(o.views, v.namespace)
	}
}

// broadcast notifies every open view of the writer's namespace except the
// writer. Callbacks run after the origin lock is released.
func (o *Origin) broadcast(writer *View, change Change) {
	o.mu.Lock()
	peers := make([]*View, 0, len(o.views[writer.namespace]))
	for peer := range o.views[writer.namespace] {
		if peer != writer {
			peers = append(peers, peer)
		}
	}
	o.mu.Unlock()

	for _, peer := range peers {
		for _, fn := range peer.listeners(change.Key) {
			fn(change)
		}
	}
}

// View is one open view of a namespace. It implements Store.
type View struct {
	origin    *Origin
	namespace string

	mu     sync.Mutex
	closed bool
	nextID int
	subs   map[string]map[int]func(Change)
}

var _ Store = (*View)(nil)

// Get reads key from the backend.
func (v *View) Get(ctx context.Context, key string) (string, bool, error) {
	if v.isClosed() {
		return "", false, ErrClosed
	}
	return v.origin.backend.Load(ctx, v.namespace, key)
}

// Set writes key and notifies other open views of the namespace.
func (v *View) Set(ctx context.Context, key string, value string) error {
	if v.isClosed() {
		return ErrClosed
	}
	if err := v.origin.backend.Save(ctx, v.namespace, key, value); err != nil {
		return err
	}
	v.origin.broadcast(v, Change{Key: key, Value: value, Present: true})
	return nil
}

// Subscribe registers fn for changes to key made by other views. The
// returned cancel function is idempotent.
func (v *View) Subscribe(key string, fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return func() {}
	}
	id := v.nextID
	v.nextID++
	if v.subs[key] == nil {
		v.subs[key] = map[int]func(Change){}
	}
	v.subs[key][id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs[key], id)
	}
}

// Close drops every subscription and detaches the view from its origin.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.subs = map[string]map[int]func(Change){}
	v.mu.Unlock()
	v.origin.detach(v)
}

func (v *View) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *View) listeners(key string) []func(Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]func(Change), 0, len(v.subs[key]))
	for _, fn := range v.subs[key] {
		out = append(out, fn)
	}
	return out
}
