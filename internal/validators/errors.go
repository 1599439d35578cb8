package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidProgress = errors.New("invalid progress")
	ErrInvalidMutation = errors.New("invalid mutation")
	ErrInvalidEntityID = errors.New("invalid entity id")
)
