package engine

const (
	// Input samples convolved per pass in the block paths, sized to keep the
	// working set in L2.
	l2CacheChunkSize = 4096

	// Interpolators with this factor interleave phases with Interleave2.
	halfBandFactor = 2

	// Construction-time kernel state.
	initialDeficit     = 1
	initialAccumulator = 1.0

	// DefaultArbitraryPhases is the phase count used for arbitrary-rate
	// kernels when the caller does not pick one.
	DefaultArbitraryPhases = 32
)
