package signal

// Render evaluates s at start + i/sampleRate for every element of dst.
// It is an offline helper for tests and analysis; real-time paths go through
// the mixer.
func Render(s Signal, start, sampleRate float64, dst []float64) {
	if s == nil || sampleRate <= 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	for i := range dst {
		dst[i] = s.Value(start + float64(i)/sampleRate)
	}
}
