package core

import (
	"sync"

	"github.com/google/uuid"
)

// SubscriberBuffer is the event buffer of each subscriber.
const SubscriberBuffer = 16

// Subscriber receives presence events for one room.
type Subscriber struct {
	ID     string
	Room   RoomID
	Events chan *Event
}

// Hub fans presence events out to subscribers keyed by room.
type Hub struct {
	mu   sync.RWMutex
	subs map[RoomID]map[*Subscriber]struct{}
}

// NewHub creates an empty presence hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[RoomID]map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber for room.
func (h *Hub) Subscribe(room RoomID) *Subscriber {
	s := &Subscriber{
		ID:     uuid.NewString(),
		Room:   room,
		Events: make(chan *Event, SubscriberBuffer),
	}

	h.mu.Lock()
	set, ok := h.subs[room]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[room] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes s and closes its event channel. Returns true if removed.
func (h *Hub) Unsubscribe(s *Subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[s.Room]
	if !ok {
		return false
	}
	if _, exists := set[s]; !exists {
		return false
	}
	delete(set, s)
	close(s.Events)
	if len(set) == 0 {
		delete(h.subs, s.Room)
	}
	return true
}

// Publish delivers ev to every subscriber of ev.Room without blocking.
// It returns how many subscribers were skipped because their buffer was full.
func (h *Hub) Publish(ev *Event) (dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[ev.Room] {
		select {
		case s.Events <- ev:
		default:
			dropped++
		}
	}
	return dropped
}

// Subscribers returns the number of subscribers for room.
func (h *Hub) Subscribers(room RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[room])
}
