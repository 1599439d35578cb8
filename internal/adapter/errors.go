package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrNetworkUnavailable wraps every transport failure and every response
	// synthesized by the interception layer while offline.
	ErrNetworkUnavailable = errors.New("network unavailable")

	ErrDecodingResponse = errors.New("error decoding response")
)
