package grid

import (
	"fmt"

	"github.com/gdey/errors"
)

const (
	// ErrRemoved is returned when operating on a grid or labels that were removed.
	ErrRemoved = errors.String("grid has been removed")

	// ErrNilProjection is returned when a factory is built without a projection
	ErrNilProjection = errors.String("projection is nil")
	// ErrNilView is returned when a factory is built without a viewport
	ErrNilView = errors.String("viewport is nil")
	// ErrNilManager is returned when a factory is built without a rendering manager
	ErrNilManager = errors.String("rendering manager is nil")
)

// ErrInvalidSpacing is returned for malformed grid spacing.
type ErrInvalidSpacing struct {
	Value  interface{}
	Reason string
}

func (err ErrInvalidSpacing) Error() string {
	return fmt.Sprintf("invalid grid spacing (%v): %v", err.Value, err.Reason)
}

// ErrInvalidBounds is returned for bounds outside of the globe or with no area.
type ErrInvalidBounds Bounds

func (err ErrInvalidBounds) Error() string {
	b := Bounds(err)
	return fmt.Sprintf("invalid bounds lon(%v, %v) lat(%v, %v)", b.LonMin, b.LonMax, b.LatMin, b.LatMax)
}

// ErrInvalidLineStyle is returned for a line style key that can not be applied.
type ErrInvalidLineStyle struct {
	Key string
	Err error
}

func (err ErrInvalidLineStyle) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("unsupported line style property %q", err.Key)
	}
	return fmt.Sprintf("invalid line style property %q: %v", err.Key, err.Err)
}

func (err ErrInvalidLineStyle) Unwrap() error { return err.Err }

// ErrInvalidTextStyle is returned for a label text style key that can not be applied.
type ErrInvalidTextStyle struct {
	Key string
	Err error
}

func (err ErrInvalidTextStyle) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("unsupported text style property %q", err.Key)
	}
	return fmt.Sprintf("invalid text style property %q: %v", err.Key, err.Err)
}

func (err ErrInvalidTextStyle) Unwrap() error { return err.Err }

// ErrInvalidLabelOption is returned for label options that can not be used.
type ErrInvalidLabelOption struct {
	Option string
	Value  interface{}
}

func (err ErrInvalidLabelOption) Error() string {
	return fmt.Sprintf("invalid label option %v: %v", err.Option, err.Value)
}

// ErrRefresh wraps a failure while refreshing a grid or its labels from the
// pre-render hook. These are logged, never propagated into the render cycle.
type ErrRefresh struct {
	// Who names the grid or labels that failed
	Who string
	Err error
}

func (err ErrRefresh) Error() string {
	return fmt.Sprintf("refresh of %v failed: %v", err.Who, err.Err)
}

func (err ErrRefresh) Unwrap() error { return err.Err }
