package effects_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/effects"
)

func ExampleEcho_Apply() {
	echo, err := effects.NewEcho(1000,
		effects.WithEchoDelay(0.002),
		effects.WithEchoFeedback(0.5),
		effects.WithEchoMix(0.5),
		effects.WithEchoRepeats(2),
	)
	if err != nil {
		panic(err)
	}

	in, _ := buffer.FromChannels([][]float64{{1, 0}}, 1000)

	out, err := echo.Apply(context.Background(), in, 4096)
	if err != nil {
		panic(err)
	}

	fmt.Println(out.Channel(0))
	// Output:
	// [0.5 0 0.5 0 0.25 0]
}

func ExampleBitCrusher() {
	bc, err := effects.NewBitCrusher(
		effects.WithBitCrusherBitDepth(3),
		effects.WithBitCrusherDownsample(2),
	)
	if err != nil {
		panic(err)
	}

	buf := []float64{0.3, 0.9, -0.6, 0.1}
	bc.ProcessInPlace(buf)

	fmt.Println(buf)
	// Output:
	// [0.25 0.25 -0.5 -0.5]
}
