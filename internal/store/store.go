package store

import (
	"context"
	"time"
)

// RecordKind describes a journaled membership change.
type RecordKind string

const (
	RecordRoomCreated  RecordKind = "room_created"
	RecordMemberJoined RecordKind = "member_joined"
)

// Record is one entry of the membership journal.
type Record struct {
	ID        int64
	Kind      RecordKind
	RoomID    uint64
	UserID    uint64
	Nick      string
	Capacity  uint64 // set for RecordRoomCreated
	CreatedAt time.Time
}

// Journal is an append-only log of membership changes.
// It is write-behind: room state is never restored from it.
type Journal interface {
	// Append stores a record.
	Append(ctx context.Context, rec Record) error

	// ListRoom returns the records of a room in insertion order.
	ListRoom(ctx context.Context, roomID uint64) ([]Record, error)

	// Close releases the underlying resources.
	Close() error
}

// Nop is a Journal that discards everything.
type Nop struct{}

func (Nop) Append(context.Context, Record) error { return nil }

func (Nop) ListRoom(context.Context, uint64) ([]Record, error) { return nil, nil }

func (Nop) Close() error { return nil }
