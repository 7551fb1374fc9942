package main

// Default command-line flag values
const (
	defaultChunks     = "1024,1024,1000,7,4096"
	defaultOutputWant = 4800
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone
	testSignalRate      = 44100.0
)

// Demo rates as L/M pairs and arbitrary rates.
var (
	demoRatios = [][2]int{
		{160, 147}, // 44.1 kHz -> 48 kHz
		{147, 160}, // 48 kHz -> 44.1 kHz
		{2, 1},
		{1, 3},
		{1, 1},
	}
	demoArbitrary = []float64{1.0884, 0.5, 3.3}
)

// Memory conversion
const (
	bytesPerKilobyte = 1024
)
