package rooms

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/store"
)

// Recorder accepts journal records without blocking.
type Recorder interface {
	Record(rec store.Record) bool
}

// View is what a member sees of a room.
type View struct {
	ID       core.RoomID
	Capacity uint64
	Roster   []string
}

// Service implements the create, view and join use-cases on top of the registry.
type Service struct {
	registry *core.Registry
	hub      *core.Hub
	recorder Recorder
	log      *zerolog.Logger
}

// New creates a room service. hub and recorder may be nil.
func New(registry *core.Registry, hub *core.Hub, recorder Recorder, logger *zerolog.Logger) *Service {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{
		registry: registry,
		hub:      hub,
		recorder: recorder,
		log:      logger,
	}
}

// CreateRoom creates a room with who as its first member. Capacity is not validated.
func (s *Service) CreateRoom(ctx context.Context, capacity uint64, who core.Member) (core.RoomID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	id, err := s.registry.Create(capacity, who)
	if err != nil {
		return 0, fmt.Errorf("create room: %w", err)
	}

	s.log.Info().
		Uint64("room_id", uint64(id)).
		Uint64("capacity", capacity).
		Str("user_id", who.ID.String()).
		Msg("room created")

	s.record(store.Record{
		Kind:     store.RecordRoomCreated,
		RoomID:   uint64(id),
		UserID:   uint64(who.ID),
		Nick:     who.Nick,
		Capacity: capacity,
	})
	return id, nil
}

// ViewRoom returns the roster of room id.
// Non-members get core.ErrMustJoinFirst.
func (s *Service) ViewRoom(ctx context.Context, id core.RoomID, who core.Member) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}

	room, ok := s.registry.Get(id)
	if !ok {
		return View{}, core.ErrRoomNotFound
	}
	if !room.HasMember(who.ID) {
		return View{}, core.ErrMustJoinFirst
	}

	return View{ID: id, Capacity: room.Capacity(), Roster: room.Roster()}, nil
}

// JoinRoom adds who to room id. Joining twice yields core.ErrAlreadyMember.
func (s *Service) JoinRoom(ctx context.Context, id core.RoomID, who core.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	room, ok := s.registry.Get(id)
	if !ok {
		return core.ErrRoomNotFound
	}
	if err := room.AddMember(who); err != nil {
		return err
	}

	s.log.Info().
		Uint64("room_id", uint64(id)).
		Str("user_id", who.ID.String()).
		Str("nick", who.Nick).
		Msg("member joined room")

	s.record(store.Record{
		Kind:   store.RecordMemberJoined,
		RoomID: uint64(id),
		UserID: uint64(who.ID),
		Nick:   who.Nick,
	})
	s.publish(&core.Event{
		Kind:   core.EventMemberJoined,
		Room:   id,
		Nick:   who.Nick,
		Roster: room.Roster(),
	})
	return nil
}

// JoinPage reports whether who already belongs to room id.
func (s *Service) JoinPage(ctx context.Context, id core.RoomID, who core.Member) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	room, ok := s.registry.Get(id)
	if !ok {
		return false, core.ErrRoomNotFound
	}
	return room.HasMember(who.ID), nil
}

// Subscribe opens a presence subscription on room id for a member.
// The returned view is the roster at subscription time.
func (s *Service) Subscribe(ctx context.Context, id core.RoomID, who core.Member) (*core.Subscriber, View, error) {
	if s.hub == nil {
		return nil, View{}, fmt.Errorf("presence hub not configured")
	}

	// Subscribing before reading the roster means a join racing with us is
	// either in the snapshot or delivered as an event.
	sub := s.hub.Subscribe(id)
	view, err := s.ViewRoom(ctx, id, who)
	if err != nil {
		s.hub.Unsubscribe(sub)
		return nil, View{}, err
	}

	s.log.Debug().
		Uint64("room_id", uint64(id)).
		Str("subscriber_id", sub.ID).
		Msg("presence subscription opened")
	return sub, view, nil
}

// Unsubscribe closes a presence subscription.
func (s *Service) Unsubscribe(sub *core.Subscriber) {
	if s.hub == nil || sub == nil {
		return
	}
	if s.hub.Unsubscribe(sub) {
		s.log.Debug().
			Uint64("room_id", uint64(sub.Room)).
			Str("subscriber_id", sub.ID).
			Msg("presence subscription closed")
	}
}

// Rooms returns the number of live rooms.
func (s *Service) Rooms() int {
	return s.registry.Len()
}

func (s *Service) record(rec store.Record) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(rec)
}

func (s *Service) publish(ev *core.Event) {
	if s.hub == nil {
		return
	}
	if dropped := s.hub.Publish(ev); dropped > 0 {
		s.log.Warn().
			Uint64("room_id", uint64(ev.Room)).
			Int("dropped", dropped).
			Msg("presence event dropped for slow subscribers")
	}
}
