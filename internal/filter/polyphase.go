package filter

import (
	"unsafe"

	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Bank represents a polyphase decomposition of an FIR filter.
//
// The filter is split into NumPhases sub-filters. Tap k of the prototype
// belongs to phase k mod NumPhases. Logically the bank is a table
// bank[row][col] with TapsPerPhase rows and NumPhases columns, built by
// walking rows from the bottom up and columns left to right, so each column
// holds its phase in reverse chronological order. Cells past the end of the
// prototype are zero.
//
// Storage is column-major: one contiguous slice per phase, ready to be
// dot-producted against a forward-ordered sample window.
type Bank[E simdops.Element] struct {
	columns [][]E

	// NumPhases is the number of polyphase branches.
	NumPhases int

	// TapsPerPhase is ceil(TotalTaps / NumPhases).
	TapsPerPhase int

	// TotalTaps is the prototype length before decomposition.
	TotalTaps int
}

// NewBank decomposes taps into numPhases reversed sub-filters.
// Callers guarantee len(taps) >= 1 and numPhases >= 1.
func NewBank[E simdops.Element](taps []E, numPhases int) *Bank[E] {
	tapsPerPhase := (len(taps) + numPhases - 1) / numPhases

	cells := make([]E, tapsPerPhase*numPhases)
	columns := make([][]E, numPhases)
	for col := range columns {
		lo := col * tapsPerPhase
		columns[col] = cells[lo : lo+tapsPerPhase : lo+tapsPerPhase]
	}

	next := 0
	for row := tapsPerPhase - 1; row >= 0; row-- {
		for col := range numPhases {
			if next < len(taps) {
				columns[col][row] = taps[next]
				next++
			}
		}
	}

	return &Bank[E]{
		columns:      columns,
		NumPhases:    numPhases,
		TapsPerPhase: tapsPerPhase,
		TotalTaps:    len(taps),
	}
}

// NewDerivativeBank builds the bank of the first difference of taps,
// padded with a trailing zero so it has the same shape as NewBank(taps, numPhases).
// Phase c of the result holds h[k+1]-h[k] wherever phase c of the prototype
// holds h[k], which lets a caller estimate the response between phase c and c+1.
func NewDerivativeBank[E simdops.Element](taps []E, numPhases int) *Bank[E] {
	diff := make([]E, len(taps))
	for k := 0; k+1 < len(taps); k++ {
		diff[k] = taps[k+1] - taps[k]
	}
	return NewBank(diff, numPhases)
}

// At returns bank[row][col].
func (b *Bank[E]) At(row, col int) E {
	return b.columns[col][row]
}

// Column returns the coefficients of phase col, reversed.
// The returned slice aliases the bank and must not be modified.
func (b *Bank[E]) Column(col int) []E {
	return b.columns[col]
}

// Columns returns every phase, for use with multi-kernel convolution.
// The returned slices alias the bank and must not be modified.
func (b *Bank[E]) Columns() [][]E {
	return b.columns
}

// Rows returns a row-major copy of the table, top row first.
func (b *Bank[E]) Rows() [][]E {
	rows := make([][]E, b.TapsPerPhase)
	for row := range rows {
		rows[row] = make([]E, b.NumPhases)
		for col := range b.NumPhases {
			rows[row][col] = b.columns[col][row]
		}
	}
	return rows
}

// Taps reconstructs the prototype, zero-padded to TapsPerPhase*NumPhases.
func (b *Bank[E]) Taps() []E {
	taps := make([]E, 0, b.TapsPerPhase*b.NumPhases)
	for row := b.TapsPerPhase - 1; row >= 0; row-- {
		for col := range b.NumPhases {
			taps = append(taps, b.columns[col][row])
		}
	}
	return taps
}

// GetMemoryUsage returns the approximate memory usage in bytes.
func (b *Bank[E]) GetMemoryUsage() int64 {
	var zero E
	return int64(b.TapsPerPhase*b.NumPhases) * int64(unsafe.Sizeof(zero))
}
