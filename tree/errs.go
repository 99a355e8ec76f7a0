package tree

import "errors"

var (
	ErrTypeConflict = errors.New("type conflict")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrKeyNotFound  = errors.New("key not found")
	ErrNoValue      = errors.New("no value")
)
