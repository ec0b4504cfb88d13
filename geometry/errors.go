package geometry

import "github.com/gdey/errors"

const (
	// ErrShapeMismatch is returned when point batches can not be broadcast
	// against each other.
	ErrShapeMismatch = errors.String("point batches have mismatched lengths")
)
