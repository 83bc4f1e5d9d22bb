package pricing

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoomNotFound       = errors.New("room not found")
	ErrPriceNotSet        = errors.New("room has no price for this tariff")
)
