package core

import (
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed before event kind %v", kind)
			}
			if ev != nil && ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
			return nil
		}
	}
}

// sequence returns an IDSource that yields the given values in order and
// then repeats the last one.
func sequence(values ...uint64) IDSource {
	i := 0
	return func(lo, hi uint64) uint64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func member(id uint64, nick string) Member {
	return Member{ID: UserID(id), Nick: nick}
}
