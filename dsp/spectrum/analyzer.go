package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidSize is returned for frame sizes that are not a power of two of
// at least MinSize.
var ErrInvalidSize = errors.New("spectrum: frame size must be a power of two >= 16")

// MinSize is the smallest accepted frame size.
const MinSize = 16

// Analyzer computes amplitude-normalized magnitude spectra of fixed-size,
// Hann-windowed frames. A sinusoid of amplitude A centered on a bin reads A
// at that bin. An Analyzer is not safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64
	plan       *algofft.Plan[complex128]
	window     []float64
	in, out    []complex128
	re, im     []float64
	mag        []float64
}

// NewAnalyzer creates an analyzer for frames of size samples.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < MinSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	bins := size/2 + 1

	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     hann(size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}, nil
}

// hann returns the periodic Hann window, whose coefficients sum to size/2.
func hann(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	return w
}

// Size returns the frame size.
func (a *Analyzer) Size() int { return a.size }

// SampleRate returns the sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Bins returns the number of bins in a spectrum, size/2+1.
func (a *Analyzer) Bins() int { return len(a.mag) }

// BinWidth returns the spacing between bins in Hz.
func (a *Analyzer) BinWidth() float64 { return a.sampleRate / float64(a.size) }

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 { return float64(k) * a.BinWidth() }

// Frame returns the magnitude spectrum of one frame. Frames shorter than the
// analyzer size are zero-padded, longer ones are truncated. The returned
// slice is reused by the next call.
func (a *Analyzer) Frame(frame []float64) ([]float64, error) {
	n := min(len(frame), a.size)
	for i := 0; i < n; i++ {
		a.in[i] = complex(frame[i]*a.window[i], 0)
	}

	for i := n; i < a.size; i++ {
		a.in[i] = 0
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	for k := range a.mag {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	// Window sum is size/2; one-sided bins carry half the energy.
	scale := 4 / float64(a.size)
	for k := 1; k < len(a.mag)-1; k++ {
		a.mag[k] *= scale
	}

	a.mag[0] *= scale / 2
	a.mag[len(a.mag)-1] *= scale / 2

	return a.mag, nil
}

// Average returns the mean magnitude spectrum of data over frames that
// overlap by half. Data shorter than one frame is analyzed as a single
// zero-padded frame. The result is a new slice.
func (a *Analyzer) Average(data []float64) ([]float64, error) {
	out := make([]float64, a.Bins())
	if len(data) <= a.size {
		mag, err := a.Frame(data)
		if err != nil {
			return nil, err
		}

		copy(out, mag)

		return out, nil
	}

	hop := a.size / 2
	frames := 0

	for start := 0; start+a.size <= len(data); start += hop {
		mag, err := a.Frame(data[start : start+a.size])
		if err != nil {
			return nil, err
		}

		for k, v := range mag {
			out[k] += v
		}

		frames++
	}

	inv := 1 / float64(frames)
	for k := range out {
		out[k] *= inv
	}

	return out, nil
}

// Centroid returns the magnitude-weighted mean frequency of mag, where bin k
// lies at k*binWidth Hz. A silent spectrum has centroid 0.
func Centroid(mag []float64, binWidth float64) float64 {
	var num, den float64
	for k, m := range mag {
		num += float64(k) * binWidth * m
		den += m
	}

	if den <= 0 {
		return 0
	}

	return num / den
}

// BandEnergy returns the sum of squared magnitudes of the bins whose center
// frequency lies in [lowHz, highHz].
func BandEnergy(mag []float64, binWidth, lowHz, highHz float64) float64 {
	if binWidth <= 0 || highHz < lowHz {
		return 0
	}

	lo := max(int(math.Ceil(lowHz/binWidth)), 0)
	hi := min(int(math.Floor(highHz/binWidth)), len(mag)-1)

	var sum float64
	for k := lo; k <= hi; k++ {
		sum += mag[k] * mag[k]
	}

	return sum
}

// PeakBin returns the index and magnitude of the largest bin, skipping DC.
func PeakBin(mag []float64) (int, float64) {
	best, peak := 0, 0.0
	for k := 1; k < len(mag); k++ {
		if mag[k] > peak {
			best, peak = k, mag[k]
		}
	}

	return best, peak
}
