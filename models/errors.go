package models

import "errors"

var (
	ErrUnknownMutationKind = errors.New("unknown mutation kind")
	ErrNilMutation         = errors.New("mutation is nil")
)
