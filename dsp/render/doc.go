// Package render adapts a mixer to a host audio callback.
//
// A Bridge has two sides. The control side (Start, Stop, SetVolume, the
// fade methods and ResetEffectsState) may be called from any goroutine; it
// only writes atomics. The render side (Render, RenderInterleaved) must be
// called from one goroutine at a time, normally the host's audio thread.
// It drains pending control commands once at the top of each call and owns
// the RenderState exclusively, so the render path never locks or waits.
//
// After the scratch buffers have grown to the largest block requested, the
// render path does not allocate.
package render
