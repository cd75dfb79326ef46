package core

import "errors"

// Common errors.
var (
	ErrReadOnly = errors.New("storage is in read-only mode")
	ErrNotFound = errors.New("key not found")

	ErrInvalidSetting = errors.New("invalid setting")
	ErrInvalidTheme   = errors.New("invalid theme")
)
