// Package dedupe tracks seen match-event ids for at-most-once ingestion.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen event ids so a replayed match submission is
// acknowledged as a duplicate instead of being appended twice.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set so the event can be retried.
	// Used when an event was marked seen but failed to enqueue.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

const defaultMaxSize = 50000

// node is one entry in the eviction list.
type node struct {
	id   string
	next *node
}

func (n *node) reset() {
	n.id = ""
	n.next = nil
}

// inMemoryDeduper implements Deduper with a map plus a singly linked list for
// bounded eviction. With maxSize <= 0 the set grows without bound.
type inMemoryDeduper struct {
	mu      sync.RWMutex
	seen    map[string]*node
	head    *node
	maxSize int
	size    atomic.Int64
	pool    sync.Pool
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*node)
	if d.maxSize > 0 {
		d.pool = sync.Pool{New: func() interface{} { return &node{} }}
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
		n := d.pool.Get().(*node)
		n.id = id
		n.next = d.head
		d.head = n
		d.seen[id] = n
	} else {
		d.seen[id] = nil
	}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, exists := d.seen[id]
	if !exists {
		return
	}
	delete(d.seen, id)
	d.size.Add(-1)

	if d.maxSize <= 0 {
		return
	}
	if d.head == n {
		d.head = n.next
	} else {
		cur := d.head
		for cur != nil && cur.next != n {
			cur = cur.next
		}
		if cur != nil {
			cur.next = n.next
		}
	}
	n.reset()
	d.pool.Put(n)
}

// evictOldest drops the tail of the list. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	if d.head == nil {
		return
	}
	if d.head.next == nil {
		delete(d.seen, d.head.id)
		d.head.reset()
		d.pool.Put(d.head)
		d.head = nil
		d.size.Add(-1)
		return
	}
	prev := d.head
	cur := d.head.next
	for cur.next != nil {
		prev = cur
		cur = cur.next
	}
	prev.next = nil
	delete(d.seen, cur.id)
	cur.reset()
	d.pool.Put(cur)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
