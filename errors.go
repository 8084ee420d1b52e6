package bootgo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySample is returned when a run is requested on a nil or empty sample.
	ErrEmptySample = errors.New("sample must contain at least one observation")

	// ErrNilEstimator is returned when no estimator is supplied.
	ErrNilEstimator = errors.New("estimator must not be nil")

	// ErrInvalidReplications is returned when the replication count is less than 1.
	ErrInvalidReplications = errors.New("replication count must be at least 1")

	// ErrInvalidAlpha is returned when a significance level lies outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in (0, 1)")

	// ErrTooFewReplications is returned when a bootstrap standard error is
	// requested from fewer than 2 replications.
	ErrTooFewReplications = errors.New("at least 2 replications required for a standard error")

	// ErrStatisticWidth is returned when an estimator produces an empty result
	// or results of differing widths across replications.
	ErrStatisticWidth = errors.New("estimator must produce a fixed-width, non-empty statistic")

	// ErrPointEstimateWidth is returned when the point estimate passed to
	// NormalInterval does not match the width of the bootstrap statistic.
	ErrPointEstimateWidth = errors.New("point estimate width must match the bootstrap statistic")

	// ErrInvalidComponent is returned when a component index is out of range.
	ErrInvalidComponent = errors.New("component index out of range")
)

// ReplicationError reports an estimator failure on a single bootstrap
// replication. The whole run is aborted and the partial distribution
// discarded: a distribution shorter than the configured replication count
// would invalidate any interval derived from it.
//
// The underlying estimator error can be accessed via errors.Unwrap.
type ReplicationError struct {
	Replication int
	cause       error
}

func (e *ReplicationError) Error() string {
	return fmt.Sprintf("estimator failed on replication %d: %v", e.Replication, e.cause)
}

func (e *ReplicationError) Unwrap() error { return e.cause }

func widthMismatch(b, got, want int) error {
	return fmt.Errorf("%w: replication %d produced %d values, want %d", ErrStatisticWidth, b, got, want)
}
