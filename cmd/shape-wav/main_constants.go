package main

const (
	// Buffer size for processing (number of interleaved samples per chunk)
	bufferSize = 65536

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	wavFormatPCM    = 1

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100
	dbScale          = 20

	// CLI defaults
	defaultDrive    = 1.0
	minRequiredArgs = 2
	inlineCurveName = "inline"
)
