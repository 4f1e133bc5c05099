package analysis

import "errors"

var (
	// ErrUnknownFramework is returned for framework names outside the catalogue.
	ErrUnknownFramework = errors.New("unknown framework")
	// ErrTooManyFrameworks is returned when more than MaxFrameworks are selected.
	ErrTooManyFrameworks = errors.New("too many frameworks")
	// ErrInvalidGeo is returned for geographies outside the allowed set.
	ErrInvalidGeo = errors.New("invalid geography")
	// ErrUnsupportedFormat is returned for unknown export formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrGeneration wraps any failure reported by a strategy generator.
	ErrGeneration = errors.New("generation failed")
)
