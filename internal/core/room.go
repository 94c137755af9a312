package core

import (
	"sort"
	"sync"
)

// Room holds the member set of a single room.
// Its lock is independent of the registry lock.
type Room struct {
	id       RoomID
	capacity uint64
	enforce  bool

	mu      sync.RWMutex
	members map[UserID]Member
}

// newRoom constructs a room whose only member is the creator.
func newRoom(id RoomID, capacity uint64, enforce bool, creator Member) *Room {
	return &Room{
		id:       id,
		capacity: capacity,
		enforce:  enforce,
		members:  map[UserID]Member{creator.ID: creator},
	}
}

// ID returns the room id.
func (r *Room) ID() RoomID {
	return r.id
}

// Capacity returns the capacity fixed at creation.
func (r *Room) Capacity() uint64 {
	return r.capacity
}

// HasMember reports whether user is in the room.
func (r *Room) HasMember(user UserID) bool {
	r.mu.RLock()
	_, ok := r.members[user]
	r.mu.RUnlock()
	return ok
}

// AddMember inserts m if it is not already present. The presence check,
// the capacity check and the insert happen under one exclusive hold.
func (r *Room) AddMember(m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[m.ID]; exists {
		return ErrAlreadyMember
	}
	if r.enforce && uint64(len(r.members)) >= r.capacity {
		return ErrRoomFull
	}
	r.members[m.ID] = m
	return nil
}

// Roster returns the nicknames of all members, sorted.
func (r *Room) Roster() []string {
	r.mu.RLock()
	roster := make([]string, 0, len(r.members))
	for _, m := range r.members {
		roster = append(roster, m.Nick)
	}
	r.mu.RUnlock()

	sort.Strings(roster)
	return roster
}

// Members returns a snapshot of the member set.
func (r *Room) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out
}

// Len returns the number of members.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
