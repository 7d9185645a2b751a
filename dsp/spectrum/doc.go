// Package spectrum measures rendered audio offline.
//
// An [Analyzer] computes Hann-windowed magnitude spectra with an FFT plan
// from algo-fft, and the helpers in this package reduce a spectrum or a raw
// block to a handful of numbers: spectral centroid, band energy, RMS and
// peak level. A [Goertzel] meter reads the amplitude of a single tone
// without a full transform.
//
// Everything here allocates on construction and is meant for tools and
// tests, not for the audio callback.
package spectrum
