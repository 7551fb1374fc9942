package firfilter

import "github.com/tphakala/go-fir-filter/internal/engine"

// DefaultPhases is a reasonable phase count for Arbitrary rates.
const DefaultPhases = engine.DefaultArbitraryPhases

// Channel limits for MultiChannel.
const (
	stereoChannels = 2
	maxChannels    = 256
)
