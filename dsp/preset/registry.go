package preset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/mixer"
	"github.com/cwbudde/algo-ambient/dsp/render"
)

// ID names a preset.
type ID string

var (
	// ErrUnknownPreset is returned by Build for identifiers the registry
	// has never seen.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrUnavailable is returned by Build for presets that have no
	// synthesized realization, such as those backed by recorded audio.
	ErrUnavailable = errors.New("preset not available for synthesis")

	errDuplicatePreset = errors.New("duplicate preset")
)

// Factory builds the mixer of one preset for cfg. Seeds for random
// generators derive from cfg.Seed.
type Factory func(cfg core.ProcessorConfig) (*mixer.Mixer, error)

// Registry maps preset identifiers to factories.
type Registry struct {
	factories   map[ID]Factory
	unavailable map[ID]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:   make(map[ID]Factory),
		unavailable: make(map[ID]struct{}),
	}
}

func (r *Registry) known(id ID) bool {
	_, synth := r.factories[id]
	_, recorded := r.unavailable[id]
	return synth || recorded
}

// Register adds a factory for id.
func (r *Registry) Register(id ID, factory Factory) error {
	if id == "" {
		return errors.New("empty preset id")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if r.known(id) {
		return fmt.Errorf("%w: %s", errDuplicatePreset, id)
	}

	r.factories[id] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id ID, factory Factory) {
	err := r.Register(id, factory)
	if err != nil {
		panic("preset registry: " + err.Error())
	}
}

// RegisterUnavailable records id as a known preset without a synthesized
// realization.
func (r *Registry) RegisterUnavailable(id ID) error {
	if id == "" {
		return errors.New("empty preset id")
	}

	if r.known(id) {
		return fmt.Errorf("%w: %s", errDuplicatePreset, id)
	}

	r.unavailable[id] = struct{}{}

	return nil
}

// Available reports whether Build can synthesize id.
func (r *Registry) Available(id ID) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns every known identifier, synthesized or not, sorted.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.factories)+len(r.unavailable))
	for id := range r.factories {
		ids = append(ids, id)
	}
	for id := range r.unavailable {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Build constructs a fresh mixer for id and wraps it in a bridge attached
// at the configured sample rate and block size.
func (r *Registry) Build(id ID, opts ...core.ProcessorOption) (*render.Bridge, error) {
	factory, ok := r.factories[id]
	if !ok {
		if _, recorded := r.unavailable[id]; recorded {
			return nil, fmt.Errorf("preset %q: %w", id, ErrUnavailable)
		}
		return nil, fmt.Errorf("preset %q: %w", id, ErrUnknownPreset)
	}

	cfg := core.ApplyProcessorOptions(opts...)
	m, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("preset %q: build: %w", id, err)
	}
	if m == nil {
		return nil, fmt.Errorf("preset %q: build: nil mixer", id)
	}

	b := render.New(m)
	b.AttachAndConnect(cfg.SampleRate, cfg.BlockSize)
	return b, nil
}
