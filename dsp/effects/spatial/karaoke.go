package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const (
	defaultKaraokeReduction   = 0.8
	defaultKaraokeBassProtect = 150.0

	minKaraokeBassProtect = 20.0
	maxKaraokeBassProtect = 1000.0

	karaokeFilterQ = 1.0

	karaokeRoomLeftSeconds  = 0.03
	karaokeRoomRightSeconds = 0.05
	karaokeRoomFeed         = 0.3
)

// KaraokeOption mutates karaoke maker construction parameters.
type KaraokeOption func(*karaokeConfig) error

type karaokeConfig struct {
	reduction   float64
	bassProtect float64
	room        float64
}

func defaultKaraokeConfig() karaokeConfig {
	return karaokeConfig{
		reduction:   defaultKaraokeReduction,
		bassProtect: defaultKaraokeBassProtect,
	}
}

// WithKaraokeReduction sets how much of the high-passed center is removed,
// [0, 1].
func WithKaraokeReduction(amount float64) KaraokeOption {
	return func(cfg *karaokeConfig) error {
		if amount < 0 || amount > 1 || !core.IsFinite(amount) {
			return fmt.Errorf("%w: karaoke reduction must be in [0, 1]: %f", core.ErrInvalidParameter, amount)
		}

		cfg.reduction = amount

		return nil
	}
}

// WithKaraokeBassProtect sets the center highpass cutoff, [20, 1000] Hz.
// Center content below it is kept.
func WithKaraokeBassProtect(hz float64) KaraokeOption {
	return func(cfg *karaokeConfig) error {
		if hz < minKaraokeBassProtect || hz > maxKaraokeBassProtect || !core.IsFinite(hz) {
			return fmt.Errorf("%w: karaoke bass protect must be in [%g, %g] Hz: %f",
				core.ErrInvalidParameter, minKaraokeBassProtect, maxKaraokeBassProtect, hz)
		}

		cfg.bassProtect = hz

		return nil
	}
}

// WithKaraokeRoom sets the level of the short room delay, [0, 1].
// 0 disables it.
func WithKaraokeRoom(amount float64) KaraokeOption {
	return func(cfg *karaokeConfig) error {
		if amount < 0 || amount > 1 || !core.IsFinite(amount) {
			return fmt.Errorf("%w: karaoke room must be in [0, 1]: %f", core.ErrInvalidParameter, amount)
		}

		cfg.room = amount

		return nil
	}
}

// KaraokeMaker attenuates the vocal range of the center channel:
//
//	reducedMid = mid - highpass(mid)*reduction
//	L = reducedMid + side, R = reducedMid - side
//
// With room > 0, each channel also receives its own output from 30 ms (left)
// or 50 ms (right) earlier, scaled by 0.3*room.
type KaraokeMaker struct {
	cfg karaokeConfig
	hp  *biquad.Section

	roomL, roomR ring
}

type ring struct {
	buf []float64
	pos int
}

// swap returns the oldest value and stores v in its place.
func (r *ring) swap(v float64) float64 {
	old := r.buf[r.pos]
	r.buf[r.pos] = v

	r.pos++
	if r.pos == len(r.buf) {
		r.pos = 0
	}

	return old
}

func (r *ring) reset() {
	clear(r.buf)
	r.pos = 0
}

// NewKaraokeMaker creates a karaoke maker for the given sample rate.
func NewKaraokeMaker(sampleRate float64, opts ...KaraokeOption) (*KaraokeMaker, error) {
	cfg := defaultKaraokeConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	hp, err := design.Highpass(cfg.bassProtect, karaokeFilterQ, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("karaoke bass protect: %w", err)
	}

	return &KaraokeMaker{
		cfg:   cfg,
		hp:    biquad.NewSection(hp),
		roomL: ring{buf: make([]float64, max(1, int(math.Floor(sampleRate*karaokeRoomLeftSeconds))))},
		roomR: ring{buf: make([]float64, max(1, int(math.Floor(sampleRate*karaokeRoomRightSeconds))))},
	}, nil
}

// ProcessStereo processes one stereo sample pair.
func (k *KaraokeMaker) ProcessStereo(left, right float64) (float64, float64, error) {
	mid, side := Encode(left, right)

	hpMid, err := k.hp.ProcessSample(mid)
	if err != nil {
		return 0, 0, err
	}

	l, r := Decode(mid-hpMid*k.cfg.reduction, side)

	if k.cfg.room > 0 {
		echoL := k.roomL.swap(l * karaokeRoomFeed)
		echoR := k.roomR.swap(r * karaokeRoomFeed)
		l += echoL * k.cfg.room
		r += echoR * k.cfg.room
	}

	return l, r, nil
}

// ProcessStereoInPlace processes paired left/right buffers in place.
func (k *KaraokeMaker) ProcessStereoInPlace(left, right []float64) error {
	if err := checkPair("karaoke", left, right); err != nil {
		return err
	}

	for i := range left {
		l, r, err := k.ProcessStereo(left[i], right[i])
		if err != nil {
			return fmt.Errorf("karaoke sample %d: %w", i, err)
		}

		left[i], right[i] = l, r
	}

	return nil
}

// Reset clears filter and room delay state.
func (k *KaraokeMaker) Reset() {
	k.hp.Reset()
	k.roomL.reset()
	k.roomR.reset()
}

// Reduction returns the center reduction amount.
func (k *KaraokeMaker) Reduction() float64 { return k.cfg.reduction }

// BassProtect returns the center highpass cutoff in Hz.
func (k *KaraokeMaker) BassProtect() float64 { return k.cfg.bassProtect }

// Room returns the room delay level.
func (k *KaraokeMaker) Room() float64 { return k.cfg.room }
