package midi

import "fmt"

const (
	MinVolumeDB = -60
	MaxVolumeDB = 6

	// Amplitude doubles roughly every 6 dB.
	dbPerDoubling = 6.0
)

// Clip is a rendered stereo buffer. It implements beep.StreamSeeker.
type Clip struct {
	pos   int
	left  []float32
	right []float32
}

func NewClip(samples int) *Clip {
	return &Clip{
		left:  make([]float32, samples),
		right: make([]float32, samples),
	}
}

// Stream implements beep.Streamer. It reports false once the clip is drained.
func (c *Clip) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= len(c.left) {
		return 0, false
	}
	for i := range samples {
		if c.pos >= len(c.left) {
			break
		}
		samples[i][0] = float64(c.left[c.pos])
		samples[i][1] = float64(c.right[c.pos])
		c.pos++
		n++
	}
	return n, true
}

// Len returns the total number of samples of the clip.
func (c *Clip) Len() int {
	return len(c.left)
}

// Position returns the current position of the clip.
func (c *Clip) Position() int {
	return c.pos
}

// Seek sets the position of the clip.
func (c *Clip) Seek(p int) error {
	if p < 0 || p > len(c.left) {
		return fmt.Errorf("seek: %d is out of range [0, %d]", p, len(c.left))
	}
	c.pos = p
	return nil
}

func (c *Clip) Err() error {
	return nil
}

// Peak returns the largest absolute sample value.
func (c *Clip) Peak() float32 {
	var peak float32
	for i := range c.left {
		for _, v := range []float32{c.left[i], c.right[i]} {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}
