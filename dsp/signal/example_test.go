package signal_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))

	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}

	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])
	// Output:
	// 0 1 0 -1 0
}

func ExampleSynthesize() {
	buf, err := signal.Synthesize(signal.Pink, 2, 0.5, 44100, rand.New(rand.NewSource(1)))
	if err != nil {
		panic(err)
	}

	fmt.Println(buf.ChannelCount(), buf.FrameCount(), buf.Peak() <= 1)
	// Output:
	// 1 88200 true
}
