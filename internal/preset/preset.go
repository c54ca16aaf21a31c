package preset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
)

// LogLevel controls log verbosity of the host.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}

	return false
}

// Preset is the root of a preset file.
type Preset struct {
	// LogLevel overrides the host log level when set.
	LogLevel LogLevel `yaml:"log_level"`

	// BlockSize overrides the render block size when > 0.
	BlockSize int `yaml:"block_size"`

	// Effects run in order.
	Effects []Entry `yaml:"effects"`
}

// Entry is one effect in the chain.
type Entry struct {
	Type   string         `yaml:"type"`
	Bypass bool           `yaml:"bypass"`
	Params map[string]any `yaml:"params"`
}

// Load reads the YAML preset at path and returns a validated [Preset].
func Load(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: open %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("preset: parse %q: %w", path, err)
	}

	return p, nil
}

// LoadFromReader decodes a YAML preset from r and validates the result.
// Unknown fields are rejected.
func LoadFromReader(r io.Reader) (*Preset, error) {
	p := &Preset{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("preset: decode yaml: %w", err)
	}

	if err := Validate(p); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks the structure of p. Effect-specific ranges are checked
// later by the effect chain. It returns a joined error listing every
// failure found.
func Validate(p *Preset) error {
	var errs []error

	if p.LogLevel != "" && !p.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", p.LogLevel))
	}

	if p.BlockSize < 0 {
		errs = append(errs, fmt.Errorf("block_size must be >= 0, got %d", p.BlockSize))
	}

	for i, e := range p.Effects {
		if strings.TrimSpace(e.Type) == "" {
			errs = append(errs, fmt.Errorf("effects[%d].type is required", i))
		}

		if _, err := e.toParams(); err != nil {
			errs = append(errs, fmt.Errorf("effects[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// Params converts the entries for [effectchain.Registry.Build].
func (p *Preset) Params() ([]effectchain.Params, error) {
	out := make([]effectchain.Params, 0, len(p.Effects))

	for i, e := range p.Effects {
		ep, err := e.toParams()
		if err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}

		out = append(out, ep)
	}

	return out, nil
}

func (e Entry) toParams() (effectchain.Params, error) {
	ep := effectchain.Params{
		Type:     strings.TrimSpace(e.Type),
		Bypassed: e.Bypass,
		Num:      map[string]float64{},
		Str:      map[string]string{},
	}

	for k, v := range e.Params {
		switch x := v.(type) {
		case int:
			ep.Num[k] = float64(x)
		case int64:
			ep.Num[k] = float64(x)
		case uint64:
			ep.Num[k] = float64(x)
		case float64:
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return ep, fmt.Errorf("param %q must be finite", k)
			}

			ep.Num[k] = x
		case string:
			ep.Str[k] = x
		default:
			return ep, fmt.Errorf("param %q has unsupported value %v (%T)", k, v, v)
		}
	}

	return ep, nil
}
