package effectchain

import (
	"github.com/cwbudde/algo-audiofx/dsp/effects/spatial"
)

// WidenerParams configures the mid/side stereo widener. Width 0 collapses
// to mono, 1 leaves the image unchanged.
type WidenerParams struct {
	Width      float64 // [0, 4]
	CenterGain float64 // [0, 2]
	BassMonoHz float64 // 0 disables, else [20, 500]
}

// DefaultWidenerParams returns a mild widening of 1.5.
func DefaultWidenerParams() WidenerParams {
	return WidenerParams{Width: 1.5, CenterGain: 1}
}

// Type implements Effect.
func (WidenerParams) Type() string { return "widener" }

// Validate implements Effect.
func (p WidenerParams) Validate(sampleRate int) error {
	_, err := p.build(float64(sampleRate))

	return err
}

func (p WidenerParams) build(sampleRate float64) (*spatial.StereoWidener, error) {
	return spatial.NewStereoWidener(sampleRate,
		spatial.WithWidth(p.Width),
		spatial.WithCenterGain(p.CenterGain),
		spatial.WithBassMonoFreq(p.BassMonoHz),
	)
}

// NewRuntime implements Effect.
func (p WidenerParams) NewRuntime(ctx Context) (Runtime, error) {
	if err := requireStereo(ctx, "widener"); err != nil {
		return nil, err
	}

	w, err := p.build(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return stereo(ctx, "widener", w)
}

// VocalRemoveParams configures phase-cancellation vocal removal: the side
// signal band-limited to [LowCutHz, HighCutHz] replaces the input in
// proportion to StrengthPercent.
type VocalRemoveParams struct {
	LowCutHz        float64
	HighCutHz       float64
	StrengthPercent float64 // [0, 100]
}

// DefaultVocalRemoveParams returns full-strength removal over 120-8000 Hz.
func DefaultVocalRemoveParams() VocalRemoveParams {
	return VocalRemoveParams{LowCutHz: 120, HighCutHz: 8000, StrengthPercent: 100}
}

// Type implements Effect.
func (VocalRemoveParams) Type() string { return "vocalremove" }

// Validate implements Effect.
func (p VocalRemoveParams) Validate(sampleRate int) error {
	if err := checkRange("vocalremove strengthPercent", p.StrengthPercent, 0, 100); err != nil {
		return err
	}

	if err := checkCutoff("vocalremove highCutHz", p.HighCutHz, sampleRate); err != nil {
		return err
	}

	_, err := p.build(float64(sampleRate))

	return err
}

func (p VocalRemoveParams) build(sampleRate float64) (*spatial.VocalRemover, error) {
	return spatial.NewVocalRemover(sampleRate,
		spatial.WithVocalLowCut(p.LowCutHz),
		spatial.WithVocalHighCut(p.HighCutHz),
		spatial.WithVocalStrength(p.StrengthPercent/100),
	)
}

// NewRuntime implements Effect.
func (p VocalRemoveParams) NewRuntime(ctx Context) (Runtime, error) {
	if err := requireStereo(ctx, "vocalremove"); err != nil {
		return nil, err
	}

	v, err := p.build(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return stereo(ctx, "vocalremove", v)
}

// KaraokeParams configures the karaoke maker: the mid signal above
// BassProtectHz is reduced, with an optional short room ambience.
type KaraokeParams struct {
	ReductionPercent float64 // [0, 100]
	BassProtectHz    float64 // [20, 1000]
	RoomPercent      float64 // [0, 100]
}

// DefaultKaraokeParams returns 80% center reduction above 150 Hz.
func DefaultKaraokeParams() KaraokeParams {
	return KaraokeParams{ReductionPercent: 80, BassProtectHz: 150}
}

// Type implements Effect.
func (KaraokeParams) Type() string { return "karaoke" }

// Validate implements Effect.
func (p KaraokeParams) Validate(sampleRate int) error {
	if err := checkRange("karaoke reductionPercent", p.ReductionPercent, 0, 100); err != nil {
		return err
	}

	if err := checkRange("karaoke roomPercent", p.RoomPercent, 0, 100); err != nil {
		return err
	}

	_, err := p.build(float64(sampleRate))

	return err
}

func (p KaraokeParams) build(sampleRate float64) (*spatial.KaraokeMaker, error) {
	return spatial.NewKaraokeMaker(sampleRate,
		spatial.WithKaraokeReduction(p.ReductionPercent/100),
		spatial.WithKaraokeBassProtect(p.BassProtectHz),
		spatial.WithKaraokeRoom(p.RoomPercent/100),
	)
}

// NewRuntime implements Effect.
func (p KaraokeParams) NewRuntime(ctx Context) (Runtime, error) {
	if err := requireStereo(ctx, "karaoke"); err != nil {
		return nil, err
	}

	k, err := p.build(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return stereo(ctx, "karaoke", k)
}
