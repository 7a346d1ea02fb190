package analysis

import "errors"

// Typed failures returned by Analyze. Callers translate these into
// user-facing messages; the core never logs or retries.
var (
	// ErrInsufficientData: fewer than 2 distinct points remain after
	// deduplication.
	ErrInsufficientData = errors.New("insufficient data: need at least 2 distinct points")

	// ErrTemporalOrder: a later point carries an earlier timestamp.
	ErrTemporalOrder = errors.New("temporal order: timestamps regress")

	// ErrMalformedPoint: latitude, longitude or elevation out of range.
	ErrMalformedPoint = errors.New("malformed point")

	// ErrInvalidProfile: fitness index outside the plausible range.
	ErrInvalidProfile = errors.New("invalid runner profile")
)
