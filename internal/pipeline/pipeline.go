// Package pipeline chains streaming filters into a cascade.
//
// Each stage's output feeds the next stage's input. Because every stage
// predicts its output length exactly, the cascade does too, and intermediate
// buffers are sized once and reused across calls.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-fir-filter/internal/engine"
	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// ErrNoStages is returned when a pipeline is built without stages.
var ErrNoStages = errors.New("pipeline has no stages")

// Stage is a single streaming filter in a cascade.
type Stage[E simdops.Element] interface {
	// FilterInto writes the output for input into dst and returns the count.
	FilterInto(dst, input []E) (int, error)

	// OutputLength returns the exact output count for inLen input samples.
	OutputLength(inLen int) int

	// InputLength returns the input needed for outLen output samples.
	InputLength(outLen int) int

	// Reset restores construction-time state.
	Reset()

	// Ratio returns the stage's output/input rate.
	Ratio() float64

	// TimeDelay returns the stage's group delay in its input samples.
	TimeDelay() float64
}

// Pipeline runs stages in order.
type Pipeline[E simdops.Element] struct {
	stages []Stage[E]

	// bufs[i] holds the output of stage i for i < len(stages)-1.
	bufs [][]E
}

// New builds a pipeline from stages, first stage first.
func New[E simdops.Element](stages ...Stage[E]) (*Pipeline[E], error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("stage %d is nil", i)
		}
	}
	return &Pipeline[E]{
		stages: append([]Stage[E](nil), stages...),
		bufs:   make([][]E, len(stages)-1),
	}, nil
}

// Stages returns the pipeline stages.
func (p *Pipeline[E]) Stages() []Stage[E] {
	return p.stages
}

// Process runs input through every stage and returns a newly allocated output.
func (p *Pipeline[E]) Process(input []E) ([]E, error) {
	out := make([]E, p.OutputLength(len(input)))
	n, err := p.ProcessInto(out, input)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// ProcessInto runs input through every stage, writing the final output to dst.
// dst must hold at least OutputLength(len(input)) samples.
func (p *Pipeline[E]) ProcessInto(dst, input []E) (int, error) {
	if need := p.OutputLength(len(input)); len(dst) < need {
		return 0, fmt.Errorf("%w: need %d samples, have %d", engine.ErrBufferTooSmall, need, len(dst))
	}

	current := input
	last := len(p.stages) - 1
	for i, stage := range p.stages[:last] {
		size := stage.OutputLength(len(current))
		if cap(p.bufs[i]) < size {
			p.bufs[i] = make([]E, size)
		}
		n, err := stage.FilterInto(p.bufs[i][:size], current)
		if err != nil {
			return 0, fmt.Errorf("stage %d: %w", i, err)
		}
		current = p.bufs[i][:n]
	}

	n, err := p.stages[last].FilterInto(dst, current)
	if err != nil {
		return 0, fmt.Errorf("stage %d: %w", last, err)
	}
	return n, nil
}

// OutputLength chains the stages' exact output predictions.
func (p *Pipeline[E]) OutputLength(inLen int) int {
	n := inLen
	for _, s := range p.stages {
		n = s.OutputLength(n)
	}
	return n
}

// InputLength chains the stages' inverse predictions from the last stage back.
func (p *Pipeline[E]) InputLength(outLen int) int {
	n := outLen
	for i := len(p.stages) - 1; i >= 0; i-- {
		n = p.stages[i].InputLength(n)
	}
	return n
}

// Reset resets every stage.
func (p *Pipeline[E]) Reset() {
	for _, s := range p.stages {
		s.Reset()
	}
}

// Ratio returns the product of the stage ratios.
func (p *Pipeline[E]) Ratio() float64 {
	ratio := 1.0
	for _, s := range p.stages {
		ratio *= s.Ratio()
	}
	return ratio
}

// TimeDelay returns the cascade's group delay in input samples of the first stage.
func (p *Pipeline[E]) TimeDelay() float64 {
	delay := 0.0
	rate := 1.0 // rate of the current stage's input relative to the pipeline input
	for _, s := range p.stages {
		delay += s.TimeDelay() / rate
		rate *= s.Ratio()
	}
	return delay
}
