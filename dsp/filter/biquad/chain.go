package biquad

// Chain is a series cascade of biquad sections. Stacking identical
// sections steepens the slope by 12 dB/octave per section.
type Chain struct {
	sections []Section
}

// NewChain creates one Section per coefficient set.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades x through all sections in order.
func (c *Chain) ProcessSample(x float64) (float64, error) {
	for i := range c.sections {
		y, err := c.sections[i].ProcessSample(x)
		if err != nil {
			return 0, err
		}

		x = y
	}

	return x, nil
}

// ProcessBlock filters buf in place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) error {
	for i := range c.sections {
		if err := c.sections[i].ProcessBlock(buf); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears all section histories.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}
