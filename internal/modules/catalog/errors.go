package catalog

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrUnauthenticated = errors.New("authentication required")
)
