package firfilter

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MultiChannel runs one independent filter per channel, all cloned from a
// prototype so they share coefficient tables.
//
// Channels can be processed concurrently because each filter owns its state.
// Calls on the MultiChannel itself must still be serialized.
type MultiChannel[E Element] struct {
	filters  []*Filter[E]
	parallel bool
}

// NewMultiChannel creates channels filters cloned from proto. When parallel
// is set, ProcessMulti filters the channels on separate goroutines.
func NewMultiChannel[E Element](proto *Filter[E], channels int, parallel bool) (*MultiChannel[E], error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: %d (must be 1-%d)", ErrChannelCount, channels, maxChannels)
	}

	filters := make([]*Filter[E], channels)
	for i := range filters {
		filters[i] = proto.Clone()
	}
	return &MultiChannel[E]{filters: filters, parallel: parallel}, nil
}

// Channels returns the channel count.
func (m *MultiChannel[E]) Channels() int {
	return len(m.filters)
}

// Channel returns the filter of channel i.
func (m *MultiChannel[E]) Channel(i int) *Filter[E] {
	return m.filters[i]
}

// ProcessMulti filters one chunk per channel. input must have exactly one
// slice per channel; slices may differ in length.
func (m *MultiChannel[E]) ProcessMulti(input [][]E) ([][]E, error) {
	if len(input) != len(m.filters) {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrChannelCount, len(m.filters), len(input))
	}

	output := make([][]E, len(input))
	if !m.parallel || len(input) == 1 {
		for ch, f := range m.filters {
			output[ch] = f.Filter(input[ch])
		}
		return output, nil
	}

	var g errgroup.Group
	for ch, f := range m.filters {
		g.Go(func() error {
			output[ch] = f.Filter(input[ch])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessInterleaved filters frame-ordered samples and returns frame-ordered
// output. Every channel must produce the same number of samples, which holds
// whenever all channels have seen the same input lengths.
func (m *MultiChannel[E]) ProcessInterleaved(data []E) ([]E, error) {
	chans, err := Deinterleave(data, len(m.filters))
	if err != nil {
		return nil, err
	}
	out, err := m.ProcessMulti(chans)
	if err != nil {
		return nil, err
	}
	return Interleave(out), nil
}

// Reset resets every channel.
func (m *MultiChannel[E]) Reset() {
	for _, f := range m.filters {
		f.Reset()
	}
}
