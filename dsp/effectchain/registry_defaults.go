package effectchain

import (
	"github.com/cwbudde/algo-audiofx/dsp/effects"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
)

// DefaultRegistry returns a Registry pre-populated with every built-in
// effect. Missing parameters take the values of the matching Default*Params
// constructor; unknown parameter names are rejected.
//
//nolint:funlen
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("echo", func(p Params) (Effect, error) {
		if err := p.checkKeys("delayMs", "feedbackPercent", "mixPercent", "repeats"); err != nil {
			return nil, err
		}

		fx := DefaultEchoParams()
		fx.DelayMs = p.GetNum("delayMs", fx.DelayMs)
		fx.FeedbackPercent = p.GetNum("feedbackPercent", fx.FeedbackPercent)
		fx.MixPercent = p.GetNum("mixPercent", fx.MixPercent)
		fx.Repeats = p.GetInt("repeats", fx.Repeats)

		return fx, nil
	})
	r.MustRegister("reverb", func(p Params) (Effect, error) {
		if err := p.checkKeys("decaySeconds", "wetPercent", "predelayMs", "mode", "seed"); err != nil {
			return nil, err
		}

		mode, err := effects.ParseReverbMode(p.GetStr("mode", ""))
		if err != nil {
			return nil, err
		}

		fx := DefaultReverbParams()
		fx.DecaySeconds = p.GetNum("decaySeconds", fx.DecaySeconds)
		fx.WetPercent = p.GetNum("wetPercent", fx.WetPercent)
		fx.PredelayMs = p.GetNum("predelayMs", fx.PredelayMs)
		fx.Mode = mode
		fx.Seed = int64(p.GetInt("seed", 0))

		return fx, nil
	})
	r.MustRegister("widener", func(p Params) (Effect, error) {
		if err := p.checkKeys("width", "centerGain", "bassMonoHz"); err != nil {
			return nil, err
		}

		fx := DefaultWidenerParams()
		fx.Width = p.GetNum("width", fx.Width)
		fx.CenterGain = p.GetNum("centerGain", fx.CenterGain)
		fx.BassMonoHz = p.GetNum("bassMonoHz", fx.BassMonoHz)

		return fx, nil
	})
	r.MustRegister("deesser", func(p Params) (Effect, error) {
		if err := p.checkKeys("frequencyHz", "bandwidthOctaves", "thresholdDb", "ratio", "amountPercent"); err != nil {
			return nil, err
		}

		fx := DefaultDeEsserParams()
		fx.FrequencyHz = p.GetNum("frequencyHz", fx.FrequencyHz)
		fx.BandwidthOctaves = p.GetNum("bandwidthOctaves", fx.BandwidthOctaves)
		fx.ThresholdDB = p.GetNum("thresholdDb", fx.ThresholdDB)
		fx.Ratio = p.GetNum("ratio", fx.Ratio)
		fx.AmountPercent = p.GetNum("amountPercent", fx.AmountPercent)

		return fx, nil
	})
	r.MustRegister("lowpass", func(p Params) (Effect, error) {
		if err := p.checkKeys("cutoffHz", "q", "stages"); err != nil {
			return nil, err
		}

		fx := DefaultLowpassParams()
		fx.CutoffHz = p.GetNum("cutoffHz", fx.CutoffHz)
		fx.Q = p.GetNum("q", fx.Q)
		fx.Stages = p.GetInt("stages", fx.Stages)

		return fx, nil
	})
	r.MustRegister("highpass", func(p Params) (Effect, error) {
		if err := p.checkKeys("cutoffHz", "q", "stages"); err != nil {
			return nil, err
		}

		fx := DefaultHighpassParams()
		fx.CutoffHz = p.GetNum("cutoffHz", fx.CutoffHz)
		fx.Q = p.GetNum("q", fx.Q)
		fx.Stages = p.GetInt("stages", fx.Stages)

		return fx, nil
	})
	r.MustRegister("bandpass", func(p Params) (Effect, error) {
		if err := p.checkKeys("centerHz", "q", "bandwidthOctaves", "stages"); err != nil {
			return nil, err
		}

		fx := DefaultBandpassParams()
		fx.CenterHz = p.GetNum("centerHz", fx.CenterHz)
		fx.Q, fx.BandwidthOctaves = qOrBandwidth(p, fx.Q, fx.BandwidthOctaves)
		fx.Stages = p.GetInt("stages", fx.Stages)

		return fx, nil
	})
	r.MustRegister("notch", func(p Params) (Effect, error) {
		if err := p.checkKeys("centerHz", "q", "bandwidthOctaves", "stages"); err != nil {
			return nil, err
		}

		fx := DefaultNotchParams()
		fx.CenterHz = p.GetNum("centerHz", fx.CenterHz)
		fx.Q, fx.BandwidthOctaves = qOrBandwidth(p, fx.Q, fx.BandwidthOctaves)
		fx.Stages = p.GetInt("stages", fx.Stages)

		return fx, nil
	})
	r.MustRegister("normalize", func(p Params) (Effect, error) {
		if err := p.checkKeys("mode", "targetDb"); err != nil {
			return nil, err
		}

		mode, err := dynamics.ParseNormalizeMode(p.GetStr("mode", ""))
		if err != nil {
			return nil, err
		}

		fx := DefaultNormalizeParams()
		fx.Mode = mode
		fx.TargetDB = p.GetNum("targetDb", fx.TargetDB)

		return fx, nil
	})
	r.MustRegister("bassenhance", func(p Params) (Effect, error) {
		if err := p.checkKeys("cutoffHz", "gainDb", "harmonicsPercent"); err != nil {
			return nil, err
		}

		fx := DefaultBassEnhanceParams()
		fx.CutoffHz = p.GetNum("cutoffHz", fx.CutoffHz)
		fx.GainDB = p.GetNum("gainDb", fx.GainDB)
		fx.HarmonicsPercent = p.GetNum("harmonicsPercent", fx.HarmonicsPercent)

		return fx, nil
	})
	r.MustRegister("bitcrush", func(p Params) (Effect, error) {
		if err := p.checkKeys("bitDepth", "downsample", "mixPercent"); err != nil {
			return nil, err
		}

		fx := DefaultBitCrushParams()
		fx.BitDepth = p.GetNum("bitDepth", fx.BitDepth)
		fx.Downsample = p.GetInt("downsample", fx.Downsample)
		fx.MixPercent = p.GetNum("mixPercent", fx.MixPercent)

		return fx, nil
	})
	r.MustRegister("ringmod", func(p Params) (Effect, error) {
		if err := p.checkKeys("carrierHz", "waveform", "depthPercent", "mixPercent"); err != nil {
			return nil, err
		}

		wave, err := modulation.ParseWaveform(p.GetStr("waveform", "sine"))
		if err != nil {
			return nil, err
		}

		fx := DefaultRingModParams()
		fx.CarrierHz = p.GetNum("carrierHz", fx.CarrierHz)
		fx.Waveform = wave
		fx.DepthPercent = p.GetNum("depthPercent", fx.DepthPercent)
		fx.MixPercent = p.GetNum("mixPercent", fx.MixPercent)

		return fx, nil
	})
	r.MustRegister("vocalremove", func(p Params) (Effect, error) {
		if err := p.checkKeys("lowCutHz", "highCutHz", "strengthPercent"); err != nil {
			return nil, err
		}

		fx := DefaultVocalRemoveParams()
		fx.LowCutHz = p.GetNum("lowCutHz", fx.LowCutHz)
		fx.HighCutHz = p.GetNum("highCutHz", fx.HighCutHz)
		fx.StrengthPercent = p.GetNum("strengthPercent", fx.StrengthPercent)

		return fx, nil
	})
	r.MustRegister("karaoke", func(p Params) (Effect, error) {
		if err := p.checkKeys("reductionPercent", "bassProtectHz", "roomPercent"); err != nil {
			return nil, err
		}

		fx := DefaultKaraokeParams()
		fx.ReductionPercent = p.GetNum("reductionPercent", fx.ReductionPercent)
		fx.BassProtectHz = p.GetNum("bassProtectHz", fx.BassProtectHz)
		fx.RoomPercent = p.GetNum("roomPercent", fx.RoomPercent)

		return fx, nil
	})
	r.MustRegister("denoise", func(p Params) (Effect, error) {
		if err := p.checkKeys("strength", "highpassHz", "lowpassHz", "ratio", "humHz", "makeupGain"); err != nil {
			return nil, err
		}

		fx, err := DenoisePreset(p.GetStr("strength", "medium"))
		if err != nil {
			return nil, err
		}

		fx.HighpassHz = p.GetNum("highpassHz", fx.HighpassHz)
		fx.LowpassHz = p.GetNum("lowpassHz", fx.LowpassHz)
		fx.Ratio = p.GetNum("ratio", fx.Ratio)
		fx.HumHz = p.GetNum("humHz", fx.HumHz)
		fx.MakeupGain = p.GetNum("makeupGain", fx.MakeupGain)

		return fx, nil
	})

	return r
}

// qOrBandwidth lets an explicit q or bandwidthOctaves replace whichever
// selectivity the defaults use.
func qOrBandwidth(p Params, defQ, defBW float64) (q, bw float64) {
	_, hasQ := p.Num["q"]
	_, hasBW := p.Num["bandwidthOctaves"]

	switch {
	case hasQ && !hasBW:
		return p.GetNum("q", defQ), 0
	case hasBW && !hasQ:
		return 0, p.GetNum("bandwidthOctaves", defBW)
	default:
		return p.GetNum("q", defQ), p.GetNum("bandwidthOctaves", defBW)
	}
}
