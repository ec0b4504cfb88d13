package render

import "github.com/gdey/errors"

const (
	// ErrStaleArtifact is returned when a handle is retracted that the manager
	// no longer knows about. It is recoverable.
	ErrStaleArtifact = errors.String("artifact already removed")

	// ErrNilArtifact is returned when publishing a nil artifact.
	ErrNilArtifact = errors.String("artifact is nil")

	// ErrNoProjectionsRegistered is returned when no projections have been registered
	ErrNoProjectionsRegistered = errors.String("no projections registered")

	// ErrLengthMismatch is returned when lon and lat batches differ in length.
	ErrLengthMismatch = errors.String("lons and lats have different lengths")
)

// ErrProjectionExists is returned when the projection name was already registered.
type ErrProjectionExists string

func (err ErrProjectionExists) Error() string {
	return "projection (" + string(err) + ") already exists"
}

// ErrUnknownProjection is returned when the requested projection has not been registered
type ErrUnknownProjection string

func (err ErrUnknownProjection) Error() string {
	return "projection (" + string(err) + ") not registered"
}
