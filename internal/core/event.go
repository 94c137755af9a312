package core

// EventKind is a notification the core emits to presence subscribers.
type EventKind int

const (
	// EventRoster delivers the current roster to a new subscriber.
	EventRoster EventKind = iota
	// EventMemberJoined notifies subscribers that a member joined the room.
	EventMemberJoined
)

func (k EventKind) String() string {
	switch k {
	case EventRoster:
		return "roster"
	case EventMemberJoined:
		return "member_joined"
	default:
		return "unknown"
	}
}

// Event describes a change to a room's membership.
type Event struct {
	Kind   EventKind
	Room   RoomID
	Nick   string   // joining member, EventMemberJoined only
	Roster []string // roster after the change
}
