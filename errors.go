package firfilter

import (
	"errors"

	"github.com/tphakala/go-fir-filter/internal/engine"
	"github.com/tphakala/go-fir-filter/internal/pipeline"
)

// Errors returned by the package. Engine errors are re-exported as the same
// values, so errors.Is matches regardless of which layer produced them.
var (
	// ErrInvalidRate indicates a non-positive or non-finite rate, a ratio
	// term below 1, or a phase count below 1.
	ErrInvalidRate = engine.ErrInvalidRate

	// ErrEmptyTaps indicates a filter built without coefficients.
	ErrEmptyTaps = engine.ErrEmptyTaps

	// ErrBufferTooSmall indicates an output buffer shorter than OutputLength.
	ErrBufferTooSmall = engine.ErrBufferTooSmall

	// ErrNotSupported indicates an operation the filter's kernel does not have.
	ErrNotSupported = engine.ErrNotSupported

	// ErrInvalidPhase indicates a negative or non-finite phase.
	ErrInvalidPhase = engine.ErrInvalidPhase

	// ErrTypeMismatch indicates complex values requested as a real type.
	ErrTypeMismatch = errors.New("cannot convert complex values to a real type")

	// ErrNoStages indicates a cascade built without filters.
	ErrNoStages = pipeline.ErrNoStages

	// ErrChannelCount indicates a channel count outside [1, 256] or an input
	// whose channel count does not match.
	ErrChannelCount = errors.New("invalid channel count")
)
