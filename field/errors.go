package field

import "github.com/pkg/errors"

var (
	ErrInvalidDimensions  = errors.New("field dimensions must be positive")
	ErrInvalidProbability = errors.New("mine probability must be within (0, 1]")
	ErrNoMines            = errors.New("mine placement produced no mines")
	ErrMalformedLayout    = errors.New("malformed layout")
)
