package host

import (
	"encoding/binary"
	"math"
)

// FrameBytes is the size of one float32 sample in bytes.
const FrameBytes = 4

// PutFloat32LE encodes src into dst as little-endian IEEE-754 float32 and
// returns the number of bytes written. It stops at whichever slice runs out
// first.
func PutFloat32LE(dst []byte, src []float32) int {
	n := min(len(dst)/FrameBytes, len(src))
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[i*FrameBytes:], math.Float32bits(src[i]))
	}

	return n * FrameBytes
}

// Float32LE decodes little-endian float32 samples from src into dst and
// returns the number of samples decoded.
func Float32LE(dst []float32, src []byte) int {
	n := min(len(src)/FrameBytes, len(dst))
	for i := 0; i < n; i++ {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*FrameBytes:]))
	}

	return n
}
