package proto

// Wire constants for the presence channel.
const (
	ProtocolVersion = 1

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventRoster       = "roster"
	EventMemberJoined = "member_joined"
)

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type    string `json:"type"`
	Event   string `json:"event,omitempty"`
	Version int    `json:"v,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// EventRosterData carries the roster of a room, plus the joining member for
// member_joined events.
type EventRosterData struct {
	Room   uint64   `json:"room"`
	Roster []string `json:"roster"`
	Joined string   `json:"joined,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
