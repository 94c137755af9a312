package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound     = "room_not_found"
	ErrCodeMustJoinFirst    = "must_join_first"
	ErrCodeAlreadyMember    = "already_member"
	ErrCodeRoomFull         = "room_full"
	ErrCodeIDSpaceExhausted = "id_space_exhausted"
	ErrCodeInternal         = "internal_error"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrMustJoinFirst    = errors.New("must join room first")
	ErrAlreadyMember    = errors.New("already a member")
	ErrRoomFull         = errors.New("room is full")
	ErrIDSpaceExhausted = errors.New("no free room id")
)

// Code returns the stable code for a domain error, or ErrCodeInternal when
// err is not one of the package sentinels.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return ErrCodeRoomNotFound
	case errors.Is(err, ErrMustJoinFirst):
		return ErrCodeMustJoinFirst
	case errors.Is(err, ErrAlreadyMember):
		return ErrCodeAlreadyMember
	case errors.Is(err, ErrRoomFull):
		return ErrCodeRoomFull
	case errors.Is(err, ErrIDSpaceExhausted):
		return ErrCodeIDSpaceExhausted
	default:
		return ErrCodeInternal
	}
}
