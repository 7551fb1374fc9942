// Command fir-wav streams a WAV file through a FIR filter, one filter per channel.
//
// Taps are a Kaiser windowed-sinc lowpass designed for the requested rate.
//
// Usage:
//
//	fir-wav -up 160 -down 147 input.wav output.wav   # 44.1 kHz -> 48 kHz
//	fir-wav -down 2 input.wav half.wav               # decimate by 2
//	fir-wav -rate 1.0884 -phases 64 in.wav out.wav   # arbitrary rate
//	fir-wav -up 3 -down 2 -chunk 1 in.wav out.wav    # one frame per call
//	fir-wav -up 2 -compensate=false in.wav out.wav   # keep the filter delay
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	firfilter "github.com/tphakala/go-fir-filter"
	"github.com/tphakala/go-fir-filter/internal/filter"
)

const (
	// Frames read per call by default.
	defaultChunkFrames = 65536

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	progressInterval = 10 // Print progress every N%
	percentScale     = 100
	minRequiredArgs  = 2

	// WAV audio format tag for integer PCM.
	wavFormatPCM = 1
)

// Config holds the filter and processing options.
type Config struct {
	// Up and Down give an exact rate Up/Down. Ignored when Rate is set.
	Up, Down int

	// Rate selects an arbitrary output/input rate when positive.
	Rate float64

	// Phases is the bank size for arbitrary rates.
	Phases int

	// Attenuation is the stopband attenuation of the designed taps in dB.
	Attenuation float64

	// Bandwidth is the fraction of the narrower Nyquist band kept, in (0, 1].
	Bandwidth float64

	// ChunkFrames is the number of frames handed to the filters per call.
	ChunkFrames int

	// Compensate removes the filter's group delay and trims the output to
	// ceil(frames·rate).
	Compensate bool

	Fast     bool
	Parallel bool
	Verbose  bool
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Rate < 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("invalid rate: %g", c.Rate)
	}
	if c.Rate == 0 && (c.Up < 1 || c.Down < 1) {
		return fmt.Errorf("invalid ratio %d/%d: both terms must be at least 1", c.Up, c.Down)
	}
	if c.Rate > 0 && c.Phases < 1 {
		return fmt.Errorf("invalid phase count: %d", c.Phases)
	}
	if c.Attenuation <= 0 {
		return fmt.Errorf("invalid attenuation: %g dB", c.Attenuation)
	}
	if c.Bandwidth <= 0 || c.Bandwidth > 1 {
		return fmt.Errorf("invalid bandwidth: %g (must be in (0, 1])", c.Bandwidth)
	}
	if c.ChunkFrames < 1 {
		return fmt.Errorf("invalid chunk size: %d", c.ChunkFrames)
	}
	return c.FilterRate().Validate()
}

// FilterRate returns the configured rate.
func (c *Config) FilterRate() firfilter.Rate {
	if c.Rate > 0 {
		return firfilter.Arbitrary(c.Rate, c.Phases)
	}
	return firfilter.Ratio(c.Up, c.Down)
}

// DesignTaps designs a lowpass prototype sized for the configured rate. Its
// phase count matches the bank the filter builds from it.
func (c *Config) DesignTaps() ([]float64, error) {
	rate := c.FilterRate()
	phases := rate.Phases()
	if !rate.IsArbitrary() {
		phases, _ = rate.Fraction()
	}
	taps, err := filter.DesignResampler(rate.Float(), phases, c.Bandwidth, c.Attenuation)
	if err != nil {
		return nil, fmt.Errorf("failed to design taps: %w", err)
	}
	return taps, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := &Config{}
	flag.IntVar(&cfg.Up, "up", 1, "Interpolation factor L of the rate L/M")
	flag.IntVar(&cfg.Down, "down", 1, "Decimation factor M of the rate L/M")
	flag.Float64Var(&cfg.Rate, "rate", 0, "Arbitrary output/input rate (overrides -up/-down)")
	flag.IntVar(&cfg.Phases, "phases", firfilter.DefaultPhases, "Phase count for -rate")
	flag.Float64Var(&cfg.Attenuation, "atten", filter.DefaultAttenuation, "Stopband attenuation in dB")
	flag.Float64Var(&cfg.Bandwidth, "bw", filter.DefaultBandwidth, "Fraction of the Nyquist band to keep")
	flag.IntVar(&cfg.ChunkFrames, "chunk", defaultChunkFrames, "Frames per filter call")
	flag.BoolVar(&cfg.Compensate, "compensate", true, "Remove the filter delay and trim the output length")
	flag.BoolVar(&cfg.Fast, "fast", false, "Filter in float32 precision")
	flag.BoolVar(&cfg.Parallel, "parallel", true, "Filter channels concurrently")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath, outputPath := args[0], args[1]
	if cfg.Verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Rate: %s", cfg.FilterRate())
		log.Printf("Chunk: %d frames", cfg.ChunkFrames)
	}

	start := time.Now()
	var stats *filterStats
	var err error
	if cfg.Fast {
		stats, err = process[float32](cfg, inputPath, outputPath)
	} else {
		stats, err = process[float64](cfg, inputPath, outputPath)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit, %s kernel, %d taps)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth, stats.kind, stats.taps)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames)/float64(stats.inputRate)/elapsed.Seconds())

	return nil
}

type filterStats struct {
	inputRate    int
	outputRate   int
	channels     int
	bitDepth     int
	kind         firfilter.Kind
	taps         int
	inputFrames  int64
	outputFrames int64
}

// sample is the set of precisions the command filters in.
type sample interface {
	float32 | float64
}

// process streams inputPath through per-channel filters into outputPath.
func process[F sample](cfg *Config, inputPath, outputPath string) (stats *filterStats, err error) {
	input, err := openWAVInput(inputPath, cfg.Verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	filters, skip, err := createChannelFilters[F](cfg, input.channels)
	if err != nil {
		return nil, err
	}
	info := filters.Channel(0).Info()
	outputRate := int(math.Round(float64(input.rate) * info.Ratio))
	if cfg.Verbose {
		log.Printf("Filter: %s kernel, %d taps, %d phases, delay %.2f samples, SIMD %s",
			info.Kind, info.Taps, info.Phases, info.TimeDelay, info.SIMD)
	}

	output, err := createWAVOutput(outputPath, outputRate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// finalizes the header on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	bufs := newFilterBuffers[F](input.channels, cfg.ChunkFrames, input.bitDepth, input.format)
	bufs.skip = skip
	stats = &filterStats{
		inputRate:  input.rate,
		outputRate: outputRate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		kind:       info.Kind,
		taps:       info.Taps,
	}
	progress := newProgressTracker(input.totalFrames, cfg.Verbose)

	for {
		n, readErr := input.decoder.PCMBuffer(bufs.intBuffer)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", readErr)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}
		stats.inputFrames += int64(frames)

		deinterleaveInto(bufs.intBuffer.Data[:frames*input.channels], bufs.channelBufs, frames, bufs.invMaxVal)
		written, err := bufs.filterAndWrite(filters, output, frames, -1)
		if err != nil {
			return nil, err
		}
		stats.outputFrames += int64(written)
		progress.reportIfNeeded(stats.inputFrames)
	}

	if cfg.Compensate {
		target := int64(math.Ceil(float64(stats.inputFrames) * info.Ratio))
		tail, err := drainTail(filters, bufs, output, target-stats.outputFrames)
		if err != nil {
			return nil, err
		}
		stats.outputFrames += int64(tail)
	}

	return stats, nil
}
