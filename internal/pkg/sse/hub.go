package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Key identifies one user's stream inside one company.
type Key struct {
	CompanyID string
	UserID    string
}

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Event string
	Data  interface{}
}

// Hub fans events out to the open streams of a user. Slow subscribers lose
// events rather than block publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[Key]map[chan Event]struct{}
	buffer      int
	dropped     atomic.Int64
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 10
	}
	return &Hub{
		subscribers: make(map[Key]map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a stream for key. The returned cleanup closes the
// channel and may be called more than once.
func (h *Hub) Subscribe(key Key) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.subscribers[key] == nil {
		h.subscribers[key] = make(map[chan Event]struct{})
	}
	h.subscribers[key][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subs, ok := h.subscribers[key]; ok {
				if _, ok := subs[ch]; ok {
					delete(subs, ch)
					close(ch)
				}
				if len(subs) == 0 {
					delete(h.subscribers, key)
				}
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every stream of key and returns how many
// received it.
func (h *Hub) Publish(key Key, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subscribers[key] {
		select {
		case ch <- event:
			delivered++
		default:
			h.dropped.Add(1)
		}
	}
	return delivered
}

func (h *Hub) SubscriberCount(key Key) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[key])
}

// Dropped counts events skipped because a subscriber's buffer was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close ends every open stream.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, key)
	}
}

// Write encodes one event in text/event-stream framing.
func Write(w io.Writer, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to encode sse event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
	return err
}
