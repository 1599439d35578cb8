package interceptor

import "errors"

var (
	ErrInvalidOrigin  = errors.New("invalid interceptor origin")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrFetchFailed    = errors.New("fetch failed")
)
