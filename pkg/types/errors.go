package types

import "fmt"

// ValidationKind classifies client-caused request errors.
type ValidationKind int

const (
	// MissingParameters means no size mode was supplied, or a physical-size
	// request was missing one of its three fields.
	MissingParameters ValidationKind = iota
	// ConflictingModes means pixel and physical size fields were both supplied.
	ConflictingModes
	// OutOfRange means a numeric field violated its allowed range.
	OutOfRange
	// NotAnImage means the uploaded file did not declare an image content type.
	NotAnImage
)

// ValidationError is a client error detected before any expensive work.
// The message always names the violated rule; for OutOfRange it names the
// offending field and its valid range.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ConflictingModes:
		return "cannot mix pixel-based and cm-based dimensions, choose one mode"
	case OutOfRange:
		return fmt.Sprintf("%s must be between %s and %s", e.Field, formatBound(e.Min), formatBound(e.Max))
	case NotAnImage:
		return "file must be an image"
	default:
		return "either provide target_width and target_height (in pixels) or width_cm, height_cm, and dpi"
	}
}

// NewOutOfRange builds an OutOfRange error for a named field.
func NewOutOfRange(field string, min, max float64) *ValidationError {
	return &ValidationError{Kind: OutOfRange, Field: field, Min: min, Max: max}
}

func formatBound(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// ProcessingError is a server-side failure from decode, engine
// initialization, or inference. It aborts the current request or file only.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("error processing image: %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
