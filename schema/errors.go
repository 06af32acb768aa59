package schema

import "errors"

// Sentinel errors surfaced by the core library. Callers match them with
// errors.Is after unwrapping whatever context was added along the way.
var (
	// ErrMalformedInput means a node in an API response tree was a scalar or
	// list where a mapping was required.
	ErrMalformedInput = errors.New("malformed response structure")

	// ErrShapeMismatch means two paired sequences had different or zero lengths.
	ErrShapeMismatch = errors.New("mismatched sequence lengths")

	// ErrInvalidInput means a metric received degenerate statistical input,
	// such as zero-variance actuals for R-squared.
	ErrInvalidInput = errors.New("degenerate metric input")

	// ErrRequestFailed means an API request returned a non-success status or
	// failed at the transport level.
	ErrRequestFailed = errors.New("request failed")

	// ErrMissingGroupKey means the grouping column for leave-one-group-out
	// was absent from the dataset.
	ErrMissingGroupKey = errors.New("missing group column")
)
