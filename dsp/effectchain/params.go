package effectchain

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Params holds the loosely typed parameters for one chain entry, as read
// from a preset file or the command line.
type Params struct {
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum returns the numeric parameter key, or def if it is missing.
// Non-finite values are returned unchanged so validation can reject them.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok {
		return def
	}

	return v
}

// GetInt returns GetNum rounded to the nearest integer. Non-finite values
// map to math.MinInt so range checks reject them.
func (p Params) GetInt(key string, def int) int {
	v := p.GetNum(key, float64(def))
	if !core.IsFinite(v) {
		return math.MinInt
	}

	return int(math.Round(v))
}

// GetStr returns the lower-cased, trimmed string parameter key, or def if
// it is missing or blank.
func (p Params) GetStr(key, def string) string {
	if p.Str == nil {
		return def
	}

	v := strings.ToLower(strings.TrimSpace(p.Str[key]))
	if v == "" {
		return def
	}

	return v
}

// checkKeys rejects parameter names the effect does not understand.
func (p Params) checkKeys(known ...string) error {
	var unknown []string

	for k := range p.Num {
		if !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	}

	for k := range p.Str {
		if !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	}

	if len(unknown) == 0 {
		return nil
	}

	slices.Sort(unknown)

	return fmt.Errorf("%w: %s: unknown parameters %s (known: %s)",
		core.ErrInvalidParameter, p.Type, strings.Join(unknown, ", "), strings.Join(known, ", "))
}

// ParseParams parses the compact command line form of a chain entry:
//
//	type[:key=value[,key=value...]]
//
// Values that parse as numbers land in Num, everything else in Str. A
// leading "!" marks the entry bypassed.
func ParseParams(s string) (Params, error) {
	s = strings.TrimSpace(s)

	p := Params{Num: map[string]float64{}, Str: map[string]string{}}
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		p.Bypassed = true
		s = rest
	}

	typ, args, _ := strings.Cut(s, ":")

	p.Type = strings.ToLower(strings.TrimSpace(typ))
	if p.Type == "" {
		return Params{}, fmt.Errorf("%w: effect type missing in %q", core.ErrInvalidParameter, s)
	}

	if strings.TrimSpace(args) == "" {
		return p, nil
	}

	for _, kv := range strings.Split(args, ",") {
		key, val, ok := strings.Cut(kv, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		if !ok || key == "" {
			return Params{}, fmt.Errorf("%w: %s: expected key=value, got %q", core.ErrInvalidParameter, p.Type, kv)
		}

		if f, err := strconv.ParseFloat(val, 64); err == nil {
			p.Num[key] = f
		} else {
			p.Str[key] = val
		}
	}

	return p, nil
}
