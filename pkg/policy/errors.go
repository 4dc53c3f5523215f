package policy

import "errors"

var (
	ErrVersionProvided    = errors.New("version provided for managed dependency")
	ErrDependencyNotFound = errors.New("dependency not found in manifest")
	ErrInvalidStrictness  = errors.New("invalid strictness")
	ErrInvalidRequest     = errors.New("invalid dependency request")
)
