package core

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryCreateAddsCreator(t *testing.T) {
	reg := NewRegistry()

	id, err := reg.Create(2, member(1, "alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	room, ok := reg.Get(id)
	if !ok {
		t.Fatalf("room %d not found after create", id)
	}
	if room.ID() != id || room.Capacity() != 2 {
		t.Fatalf("unexpected room: id=%d capacity=%d", room.ID(), room.Capacity())
	}
	if !reg.ContainsMember(id, 1) {
		t.Fatalf("creator is not a member")
	}
	if reg.ContainsMember(id, 2) {
		t.Fatalf("unexpected member 2")
	}
	if uint64(id) >= narrowHi {
		t.Fatalf("first draw outside narrow range: %d", id)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Get(999999); ok {
		t.Fatalf("expected unknown room to be absent")
	}
	if reg.ContainsMember(999999, 1) {
		t.Fatalf("expected no membership in unknown room")
	}
}

func TestRegistryCollisionRetriesInNarrowRange(t *testing.T) {
	var (
		mu     sync.Mutex
		ranges [][2]uint64
	)
	next := sequence(5, 5, 200_000)
	src := func(lo, hi uint64) uint64 {
		mu.Lock()
		ranges = append(ranges, [2]uint64{lo, hi})
		mu.Unlock()
		return next(lo, hi)
	}

	reg := NewRegistry(WithIDSource(src))

	first, err := reg.Create(1, member(1, "a"))
	if err != nil || first != 5 {
		t.Fatalf("first create: id=%d err=%v", first, err)
	}
	second, err := reg.Create(1, member(2, "b"))
	if err != nil || second != 200_000 {
		t.Fatalf("second create: id=%d err=%v", second, err)
	}

	want := [][2]uint64{
		{narrowLo, narrowHi},
		{narrowLo, narrowHi},
		{narrowRetryLo, narrowHi},
	}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d draws, got %d", len(want), len(ranges))
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Fatalf("draw %d: expected range %v, got %v", i, want[i], ranges[i])
		}
	}
}

func TestRegistryFallsBackToWideRange(t *testing.T) {
	src := func(lo, hi uint64) uint64 {
		if lo >= wideLo {
			return lo
		}
		return 42
	}
	reg := NewRegistry(WithIDSource(src), WithMaxIDAttempts(3))

	if _, err := reg.Create(1, member(1, "a")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	id, err := reg.Create(1, member(2, "b"))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if uint64(id) != wideLo {
		t.Fatalf("expected wide-range id %d, got %d", wideLo, id)
	}
}

func TestRegistryExhaustionTerminates(t *testing.T) {
	reg := NewRegistry(WithIDSource(func(_, _ uint64) uint64 { return 42 }), WithMaxIDAttempts(2))

	if _, err := reg.Create(1, member(1, "a")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := reg.Create(1, member(2, "b")); !errors.Is(err, ErrIDSpaceExhausted) {
		t.Fatalf("expected ErrIDSpaceExhausted, got %v", err)
	}
	if n := reg.Len(); n != 1 {
		t.Fatalf("expected 1 room, got %d", n)
	}
}

func TestRegistryConcurrentCreatesAreDistinct(t *testing.T) {
	const workers = 64
	const perWorker = 50

	reg := NewRegistry()

	var wg sync.WaitGroup
	ids := make(chan RoomID, workers*perWorker)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range perWorker {
				id, err := reg.Create(1, member(uint64(w*perWorker+i), "n"))
				if err != nil {
					t.Errorf("create: %v", err)
					return
				}
				ids <- id
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[RoomID]struct{}, workers*perWorker)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate room id %d", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*perWorker || reg.Len() != workers*perWorker {
		t.Fatalf("expected %d rooms, got %d ids and %d in registry", workers*perWorker, len(seen), reg.Len())
	}
}
