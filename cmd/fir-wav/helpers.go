package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	firfilter "github.com/tphakala/go-fir-filter"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Duration is only used for progress reporting.
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// createChannelFilters creates one filter per channel from taps designed for
// cfg. With cfg.Compensate the filters skip their group delay; kernels that
// cannot set a phase instead report how many output frames to drop.
func createChannelFilters[F sample](cfg *Config, channels int) (filters *firfilter.MultiChannel[F], skip int, err error) {
	taps, err := cfg.DesignTaps()
	if err != nil {
		return nil, 0, err
	}
	proto, err := firfilter.New[F](taps, cfg.FilterRate())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create filter: %w", err)
	}
	filters, err = firfilter.NewMultiChannel(proto, channels, cfg.Parallel)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create channel filters: %w", err)
	}
	if !cfg.Compensate {
		return filters, 0, nil
	}

	delay := proto.TimeDelay()
	for ch := range channels {
		err := filters.Channel(ch).SetPhase(delay)
		if errors.Is(err, firfilter.ErrNotSupported) {
			return filters, int(math.Round(delay * proto.Ratio())), nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to set phase on channel %d: %w", ch, err)
		}
	}
	return filters, 0, nil
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// filterBuffers holds the buffers reused across chunks.
type filterBuffers[F sample] struct {
	intBuffer   *audio.IntBuffer
	channelBufs [][]F
	views       [][]F
	outputInts  []int
	invMaxVal   float64
	maxVal      float64

	// Output frames still to drop from the front of the stream.
	skip int
}

func newFilterBuffers[F sample](channels, chunkFrames, bitDepth int, format *audio.Format) *filterBuffers[F] {
	channelBufs := make([][]F, channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]F, chunkFrames)
	}
	maxVal := getMaxValue(bitDepth)
	return &filterBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, chunkFrames*channels),
			Format: format,
		},
		channelBufs: channelBufs,
		views:       make([][]F, channels),
		invMaxVal:   1 / maxVal,
		maxVal:      maxVal,
	}
}

// filterAndWrite filters the first frames samples of every channel buffer
// and writes the result. At most limit frames are written when limit >= 0.
// It returns the number of frames written.
func (b *filterBuffers[F]) filterAndWrite(filters *firfilter.MultiChannel[F], output *wavOutputWriter, frames int, limit int64) (int, error) {
	for ch := range b.views {
		b.views[ch] = b.channelBufs[ch][:frames]
	}
	filtered, err := filters.ProcessMulti(b.views)
	if err != nil {
		return 0, fmt.Errorf("filtering failed: %w", err)
	}

	produced := len(filtered[0])
	drop := min(b.skip, produced)
	b.skip -= drop
	keep := produced - drop
	if limit >= 0 {
		keep = min(keep, int(limit))
	}
	for ch := range filtered {
		filtered[ch] = filtered[ch][drop : drop+keep]
	}

	if need := keep * len(filtered); len(b.outputInts) < need {
		b.outputInts = make([]int, need)
	}
	n := interleaveInto(filtered, b.outputInts, b.maxVal)
	if err := output.WriteSamples(b.outputInts[:n]); err != nil {
		return 0, fmt.Errorf("failed to write audio data: %w", err)
	}
	return keep, nil
}

// drainTail feeds silence until remaining more frames have been written,
// flushing the samples still inside the filters.
func drainTail[F sample](filters *firfilter.MultiChannel[F], b *filterBuffers[F], output *wavOutputWriter, remaining int64) (int, error) {
	written := 0
	for remaining > 0 {
		need := int(remaining) + b.skip
		frames := min(max(filters.Channel(0).InputLength(need), 1), len(b.channelBufs[0]))
		for ch := range b.channelBufs {
			clear(b.channelBufs[ch][:frames])
		}

		n, err := b.filterAndWrite(filters, output, frames, remaining)
		if err != nil {
			return written, err
		}
		written += n
		remaining -= int64(n)
	}
	return written, nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into per-channel buffers
// normalized to [-1, 1].
func deinterleaveInto[F sample](data []int, channelBufs [][]F, frames int, invMaxVal float64) {
	numChannels := len(channelBufs)
	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto clamps and converts per-channel samples into dst and returns
// the number of elements written. All channels must have the same length.
func interleaveInto[F sample](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 {
		return 0
	}
	numChannels := len(channels)
	frames := len(channels[0])
	for ch, data := range channels {
		for i, v := range data {
			s := max(-1, min(1, float64(v)))
			dst[i*numChannels+ch] = int(math.Round(s * maxVal))
		}
	}
	return frames * numChannels
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{totalFrames: totalFrames, verbose: verbose}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
