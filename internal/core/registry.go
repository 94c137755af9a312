package core

import (
	"math/rand/v2"
	"sync"
)

// Id ranges for room allocation. The first draw covers the whole narrow
// range, retries skip ids below narrowRetryLo. When the narrow range keeps
// colliding the allocator falls through to the wide range.
const (
	narrowLo      uint64 = 0
	narrowRetryLo uint64 = 100_000
	narrowHi      uint64 = 1_000_000
	wideLo        uint64 = 1_000_000
	wideHi        uint64 = 1 << 63

	// DefaultMaxIDAttempts bounds the draws per range.
	DefaultMaxIDAttempts = 64
)

// IDSource returns a uniformly distributed value in [lo, hi).
type IDSource func(lo, hi uint64) uint64

func randomID(lo, hi uint64) uint64 {
	return lo + rand.Uint64N(hi-lo)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIDSource replaces the random source used for room ids.
func WithIDSource(src IDSource) RegistryOption {
	return func(r *Registry) {
		if src != nil {
			r.draw = src
		}
	}
}

// WithMaxIDAttempts sets the per-range retry cap for id allocation.
func WithMaxIDAttempts(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithCapacityEnforcement makes joins fail with ErrRoomFull once a room
// holds Capacity members.
func WithCapacityEnforcement(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.enforceCapacity = enabled
	}
}

// Registry is the process-wide directory of rooms.
type Registry struct {
	mu    sync.RWMutex
	rooms map[RoomID]*Room

	draw            IDSource
	maxAttempts     int
	enforceCapacity bool
}

// NewRegistry constructs an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms:       make(map[RoomID]*Room),
		draw:        randomID,
		maxAttempts: DefaultMaxIDAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create allocates a fresh id and inserts a room containing only creator.
// Allocation and insertion share one write-lock section so concurrent
// creates never settle on the same id.
func (r *Registry) Create(capacity uint64, creator Member) (RoomID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.allocateID()
	if err != nil {
		return 0, err
	}
	r.rooms[id] = newRoom(id, capacity, r.enforceCapacity, creator)
	return id, nil
}

// allocateID must be called with r.mu held for writing.
func (r *Registry) allocateID() (RoomID, error) {
	candidate := r.draw(narrowLo, narrowHi)
	for attempt := 1; ; attempt++ {
		if _, taken := r.rooms[RoomID(candidate)]; !taken {
			return RoomID(candidate), nil
		}
		if attempt >= r.maxAttempts {
			break
		}
		candidate = r.draw(narrowRetryLo, narrowHi)
	}

	for range r.maxAttempts {
		candidate = r.draw(wideLo, wideHi)
		if _, taken := r.rooms[RoomID(candidate)]; !taken {
			return RoomID(candidate), nil
		}
	}
	return 0, ErrIDSpaceExhausted
}

// Get returns the room with the given id.
func (r *Registry) Get(id RoomID) (*Room, bool) {
	r.mu.RLock()
	room, ok := r.rooms[id]
	r.mu.RUnlock()
	return room, ok
}

// ContainsMember reports whether user is a member of room id.
// The registry lock is released before the room lock is taken.
func (r *Registry) ContainsMember(id RoomID, user UserID) bool {
	room, ok := r.Get(id)
	if !ok {
		return false
	}
	return room.HasMember(user)
}

// Len returns the number of rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
