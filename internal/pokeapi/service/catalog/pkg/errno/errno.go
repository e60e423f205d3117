package errno

import "errors"

var (
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrInvalidStat     = errors.New("invalid stat")
	ErrInvalidLimit    = errors.New("invalid ranking limit")
	ErrCacheMiss       = errors.New("cache miss")
	// ErrInvalidRecord marks a stored row that fails entity validation.
	ErrInvalidRecord   = errors.New("invalid stored record")
)
