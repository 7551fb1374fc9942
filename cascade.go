package firfilter

import (
	"github.com/tphakala/go-fir-filter/internal/pipeline"
)

// Cascade chains filters so each one's output feeds the next, for example a
// decimate-by-2 stage followed by a decimate-by-3 stage.
//
// Like Filter it streams: lengths are exact and state carries across calls.
type Cascade[E Element] struct {
	p       *pipeline.Pipeline[E]
	filters []*Filter[E]
}

// NewCascade chains stages, first stage first. The stages become owned by
// the cascade and must not be used directly afterwards.
func NewCascade[E Element](stages ...*Filter[E]) (*Cascade[E], error) {
	ps := make([]pipeline.Stage[E], len(stages))
	for i, s := range stages {
		if s != nil {
			ps[i] = s
		}
	}
	p, err := pipeline.New(ps...)
	if err != nil {
		return nil, err
	}
	return &Cascade[E]{p: p, filters: stages}, nil
}

// Filter runs input through every stage and returns a newly allocated output.
func (c *Cascade[E]) Filter(input []E) []E {
	out, _ := c.p.Process(input)
	return out
}

// FilterInto writes the cascade output into dst, which must hold
// OutputLength(len(input)) samples.
func (c *Cascade[E]) FilterInto(dst, input []E) (int, error) {
	return c.p.ProcessInto(dst, input)
}

// OutputLength returns the exact output count for n input samples.
func (c *Cascade[E]) OutputLength(n int) int {
	return c.p.OutputLength(n)
}

// InputLength returns the input needed for n output samples.
func (c *Cascade[E]) InputLength(n int) int {
	return c.p.InputLength(n)
}

// Ratio returns the overall output/input rate.
func (c *Cascade[E]) Ratio() float64 {
	return c.p.Ratio()
}

// TimeDelay returns the overall group delay in input samples.
func (c *Cascade[E]) TimeDelay() float64 {
	return c.p.TimeDelay()
}

// Stages returns the chained filters.
func (c *Cascade[E]) Stages() []*Filter[E] {
	return c.filters
}

// Reset resets every stage.
func (c *Cascade[E]) Reset() {
	c.p.Reset()
}
