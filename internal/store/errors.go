package store

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown transaction memory backend")
	ErrCorruptRecord  = errors.New("corrupt stored transaction")
)
