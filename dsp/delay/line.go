// Package delay provides a fixed-capacity circular delay line.
package delay

import "fmt"

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding up to size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Read(1) is the most recently
// written sample; delays are clamped to [1, Len()].
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 1 {
		delay = 1
	}
	if delay > size {
		delay = size
	}
	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Tap returns the sample written delay samples ago and then writes sample.
// A delay of 0 passes sample through while still recording it.
func (d *Line) Tap(sample float64, delay int) float64 {
	out := sample
	if delay > 0 {
		out = d.Read(delay)
	}
	d.Write(sample)
	return out
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
