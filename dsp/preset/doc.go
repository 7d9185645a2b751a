// Package preset maps named ambient presets to fully wired render bridges.
//
// A Registry holds one Factory per synthesized preset and the identifiers
// of presets that exist only as pre-recorded audio. Build either returns a
// complete bridge or an error; it never mutates the registry.
package preset
