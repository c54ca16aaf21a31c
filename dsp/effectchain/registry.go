package effectchain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownEffect is returned when params reference an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

// Factory converts loosely typed params into an Effect.
type Factory func(p Params) (Effect, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Types returns the registered effect types, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// New converts one params entry into an Effect.
func (r *Registry) New(p Params) (Effect, error) {
	effectType := strings.ToLower(strings.TrimSpace(p.Type))

	factory := r.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownEffect, p.Type, strings.Join(r.Types(), ", "))
	}

	p.Type = effectType

	return factory(p)
}

// Build converts params into a Chain, skipping bypassed entries. Every
// entry is converted and all failures are joined.
func (r *Registry) Build(params []Params) (Chain, error) {
	chain := make(Chain, 0, len(params))

	var errs []error

	for i, p := range params {
		if p.Bypassed {
			continue
		}

		fx, err := r.New(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("effect %d: %w", i, err))

			continue
		}

		chain = append(chain, fx)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return chain, nil
}

