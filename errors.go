package intmap

import "github.com/pkg/errors"

var (
	// ErrConfiguration is returned when a map is asked for a capacity it cannot have.
	ErrConfiguration = errors.New("intmap: invalid capacity")

	// ErrCapacityExceeded is returned by Put when the table would have to grow past
	// MaxCapacity. The map is left exactly as it was before the call.
	ErrCapacityExceeded = errors.New("intmap: capacity exceeded")
)
