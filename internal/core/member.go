package core

import "strconv"

// UserID is the opaque per-session identity of a participant.
type UserID uint64

// String renders the id in base 10.
func (u UserID) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// RoomID identifies a room in the registry.
type RoomID uint64

func (r RoomID) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

// ParseRoomID parses a base-10 room id.
func ParseRoomID(s string) (RoomID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return RoomID(v), nil
}

// Member is a room participant as seen by the core layer.
type Member struct {
	ID   UserID
	Nick string
}
