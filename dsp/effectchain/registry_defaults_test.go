package effectchain

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

var builtinTypes = []string{
	"echo", "reverb", "widener", "deesser",
	"lowpass", "highpass", "bandpass", "notch",
	"normalize", "bassenhance", "bitcrush", "ringmod",
	"vocalremove", "karaoke", "denoise",
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, effectType := range builtinTypes {
		if reg.Lookup(effectType) == nil {
			t.Errorf("DefaultRegistry missing effect type: %s", effectType)
		}
	}

	if got := len(reg.Types()); got != len(builtinTypes) {
		t.Errorf("DefaultRegistry has %d types, want %d", got, len(builtinTypes))
	}
}

func TestDefaultRegistryRendersDefaults(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, effectType := range builtinTypes {
		t.Run(effectType, func(t *testing.T) {
			t.Parallel()

			fx, err := reg.New(Params{Type: effectType})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if fx.Type() != effectType {
				t.Fatalf("Type() = %q, want %q", fx.Type(), effectType)
			}

			in := stereoSine(t, 220, 44100, 2000)

			out, err := Render(context.Background(), in, fx)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if out.ChannelCount() != 2 || out.FrameCount() < in.FrameCount() {
				t.Fatalf("output layout %dx%d", out.ChannelCount(), out.FrameCount())
			}

			for ch := range out.ChannelCount() {
				testutil.RequireFinite(t, out.Channel(ch))
			}
		})
	}
}

func TestDefaultRegistryParamConversion(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name   string
		params Params
		want   Effect
	}{
		{
			name: "echo",
			params: Params{Type: "echo", Num: map[string]float64{
				"delayMs": 100, "feedbackPercent": 0, "mixPercent": 80, "repeats": 2,
			}},
			want: EchoParams{DelayMs: 100, FeedbackPercent: 0, MixPercent: 80, Repeats: 2},
		},
		{
			name: "reverb mode and seed",
			params: Params{
				Type: "reverb",
				Num:  map[string]float64{"decaySeconds": 1, "seed": 7},
				Str:  map[string]string{"mode": "FFT"},
			},
			want: ReverbParams{DecaySeconds: 1, WetPercent: 30, PredelayMs: 20, Mode: effects.ReverbConvolution, Seed: 7},
		},
		{
			name:   "bandpass with q drops default bandwidth",
			params: Params{Type: "bandpass", Num: map[string]float64{"q": 2}},
			want:   BandpassParams{CenterHz: 1000, Q: 2, Stages: 1},
		},
		{
			name:   "notch with bandwidth drops default q",
			params: Params{Type: "notch", Num: map[string]float64{"bandwidthOctaves": 0.5}},
			want:   NotchParams{CenterHz: 50, BandwidthOctaves: 0.5, Stages: 1},
		},
		{
			name:   "normalize rms",
			params: Params{Type: "normalize", Str: map[string]string{"mode": "rms"}, Num: map[string]float64{"targetDb": -12}},
			want:   NormalizeParams{Mode: dynamics.NormalizeRMS, TargetDB: -12},
		},
		{
			name:   "ringmod square",
			params: Params{Type: "ringmod", Str: map[string]string{"waveform": "square"}, Num: map[string]float64{"carrierHz": 30}},
			want:   RingModParams{CarrierHz: 30, Waveform: modulation.Square, DepthPercent: 100, MixPercent: 100},
		},
		{
			name:   "denoise strong",
			params: Params{Type: "denoise", Str: map[string]string{"strength": "strong"}, Num: map[string]float64{"humHz": 60}},
			want:   DenoiseParams{HighpassHz: 150, LowpassHz: 8000, Ratio: 8, HumHz: 60, MakeupGain: 1.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reg.New(tt.params)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if got != tt.want {
				t.Fatalf("New() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultRegistryRejects(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "unknown key", params: Params{Type: "echo", Num: map[string]float64{"delay": 10}}},
		{name: "bad reverb mode", params: Params{Type: "reverb", Str: map[string]string{"mode": "plate"}}},
		{name: "bad waveform", params: Params{Type: "ringmod", Str: map[string]string{"waveform": "noise"}}},
		{name: "bad denoise strength", params: Params{Type: "denoise", Str: map[string]string{"strength": "max"}}},
		{name: "bad normalize mode", params: Params{Type: "normalize", Str: map[string]string{"mode": "lufs-i"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := reg.New(tt.params); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}

	if _, err := reg.New(Params{Type: "chorus"}); !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("error = %v, want ErrUnknownEffect", err)
	}
}
