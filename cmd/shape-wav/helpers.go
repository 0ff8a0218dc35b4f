package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-spline"
	"github.com/tphakala/go-spline/internal/simdops"
	"github.com/tphakala/go-spline/internal/table"
)

// curveSource names where the transfer curve comes from.
type curveSource struct {
	tablePath string
	points    string
}

// load returns the inline curve when given, else the table file.
func (c *curveSource) load(verbose bool) (*table.Table, error) {
	if c.points != "" {
		knots, err := table.ParsePairs(c.points)
		if err != nil {
			return nil, err
		}
		return &table.Table{Name: inlineCurveName, Knots: knots}, nil
	}

	path, err := table.Resolve(c.tablePath)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("Curve table: %s", path)
	}
	return table.Load(path)
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
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
	if int(decoder.WavAudioFormat) != wavFormatPCM {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported WAV encoding %d: only integer PCM is supported", decoder.WavAudioFormat)
	}
	if getMaxValue(bitDepth) == 0 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Duration is only used for progress reporting.
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds()*float64(format.SampleRate)) * int64(format.NumChannels)

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         format.SampleRate,
		channels:     format.NumChannels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		format:  &audio.Format{SampleRate: sampleRate, NumChannels: channels},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.encoder.Write(&audio.IntBuffer{Data: samples, Format: w.format})
}

// Close finalises the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// getMaxValue returns the maximum sample value for the given bit depth, or 0
// if the depth is unsupported.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

// shapeBuffers holds all preallocated buffers for shaping.
type shapeBuffers[F spline.Float] struct {
	intBuffer *audio.IntBuffer
	raw       []F
	driven    []F
	shaped    []F
	out       []int
	gain      F
	maxVal    float64
}

// newShapeBuffers preallocates the per-chunk buffers.
func newShapeBuffers[F spline.Float](bitDepth int, drive float64, format *audio.Format) *shapeBuffers[F] {
	maxVal := getMaxValue(bitDepth)
	return &shapeBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, bufferSize),
			Format: format,
		},
		raw:    make([]F, bufferSize),
		driven: make([]F, bufferSize),
		shaped: make([]F, bufferSize),
		out:    make([]int, bufferSize),
		gain:   F(drive / maxVal),
		maxVal: maxVal,
	}
}

// shapeStats accumulates level statistics over the whole file.
type shapeStats struct {
	rate       int
	channels   int
	bitDepth   int
	samples    int64
	clipped    int64
	inSum      float64
	inSquares  float64
	outSum     float64
	outSquares float64
}

// accumulate adds one chunk to the statistics. raw holds unscaled input
// samples, inScale converts them to full-scale units, and out holds the
// normalised output.
func accumulate[F spline.Float](s *shapeStats, raw, out []F, inScale float64) {
	if len(raw) == 0 {
		return
	}
	ops := simdops.For[F]()
	s.samples += int64(len(raw))
	s.inSum += float64(ops.Sum(raw)) * inScale
	s.inSquares += float64(ops.DotProductUnsafe(raw, raw)) * inScale * inScale
	s.outSum += float64(ops.Sum(out))
	s.outSquares += float64(ops.DotProductUnsafe(out, out))
}

func (s *shapeStats) inputRMS() float64  { return rms(s.inSquares, s.samples) }
func (s *shapeStats) outputRMS() float64 { return rms(s.outSquares, s.samples) }
func (s *shapeStats) inputMean() float64  { return mean(s.inSum, s.samples) }
func (s *shapeStats) outputMean() float64 { return mean(s.outSum, s.samples) }

func rms(squares float64, n int64) float64 {
	if n == 0 {
		return 0
	}
	return math.Sqrt(squares / float64(n))
}

func mean(sum float64, n int64) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// toDBFS converts a linear level to dB relative to full scale.
func toDBFS(level float64) float64 {
	if level <= 0 {
		return math.Inf(-1)
	}
	return dbScale * math.Log10(level)
}

// normalizeInto converts integer PCM to floats scaled by gain.
func normalizeInto[F spline.Float](data []int, raw, dst []F, gain F) {
	raw = raw[:len(data)]
	for i, v := range data {
		raw[i] = F(v)
	}
	simdops.For[F]().Scale(dst[:len(data)], raw, gain)
}

// quantizeInto clamps src to [-1, 1] in place, zeroing NaN, and converts it
// to integer PCM. It returns the number of samples that had to be clamped.
func quantizeInto[F spline.Float](src []F, dst []int, maxVal float64) int {
	clipped := 0
	for i, v := range src {
		sample := float64(v)
		if sample > 1.0 {
			sample = 1.0
			clipped++
		} else if sample < -1.0 {
			sample = -1.0
			clipped++
		} else if math.IsNaN(sample) {
			sample = 0
			clipped++
		}
		src[i] = F(sample)
		dst[i] = int(math.Round(sample * maxVal))
	}
	return clipped
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// shapeWAV maps every sample of inputPath through the curve described by
// tbl and writes outputPath in the same format.
func shapeWAV[F spline.Float](inputPath, outputPath string, tbl *table.Table, drive float64, verbose bool) (stats *shapeStats, err error) {
	curve, err := table.Build[F](tbl)
	if err != nil {
		return nil, fmt.Errorf("transfer curve: %w", err)
	}
	if math.IsNaN(drive) || math.IsInf(drive, 0) {
		return nil, fmt.Errorf("drive must be finite, got %v", drive)
	}

	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// writes the final header sizes on close).
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newShapeBuffers[F](input.bitDepth, drive, input.format)
	stats = &shapeStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}
	progress := newProgressTracker(input.totalSamples, verbose)

	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}
		data := buffers.intBuffer.Data[:n]

		normalizeInto(data, buffers.raw, buffers.driven, buffers.gain)
		if err := curve.EvaluateInto(buffers.shaped, buffers.driven[:n]); err != nil {
			return nil, err
		}
		stats.clipped += int64(quantizeInto(buffers.shaped[:n], buffers.out, buffers.maxVal))

		// Statistics compare the undriven input with the written output.
		accumulate(stats, buffers.raw[:n], buffers.shaped[:n], 1/buffers.maxVal)

		if err := output.WriteSamples(buffers.out[:n]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.samples)
		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
	}

	return stats, nil
}
