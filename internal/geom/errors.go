package geom

import "errors"

var (
	// ErrEmpty is returned when input contains no usable coordinates.
	ErrEmpty = errors.New("no coordinates")
	// ErrUnsupported is returned for geometry types or formats that
	// cannot describe a single polygon.
	ErrUnsupported = errors.New("unsupported geometry")
)
