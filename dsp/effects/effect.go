package effects

// Effect is a stateful single-sample transform. t is the absolute time of
// the sample in seconds; most effects ignore it.
type Effect interface {
	Process(input, t float64) float64
	Reset()
}

// BlockProcessor is implemented by effects with a buffer path. in and out
// have equal length and may alias. The result must equal calling Process
// once per sample at t = startTime + i/sampleRate.
type BlockProcessor interface {
	ProcessBlock(in, out []float64, startTime, sampleRate float64)
}

// SampleRateSetter is implemented by effects whose coefficients depend on
// the sample rate.
type SampleRateSetter interface {
	SetSampleRate(sampleRate float64)
}

func validRate(sampleRate float64) bool {
	return sampleRate > 0 && sampleRate < 1e7
}
