package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelSeed_Deterministic(t *testing.T) {
	assert.Equal(t, PixelSeed(10, 20, 3, 1), PixelSeed(10, 20, 3, 1))
}

func TestPixelSeed_DistinctPerRay(t *testing.T) {
	seen := make(map[uint32][4]int)
	for frame := 0; frame < 2; frame++ {
		for sample := 0; sample < 8; sample++ {
			for y := 0; y < 32; y++ {
				for x := 0; x < 32; x++ {
					seed := PixelSeed(x, y, sample, frame)
					if prev, ok := seen[seed]; ok {
						t.Fatalf("seed collision between %v and %v", prev, [4]int{x, y, sample, frame})
					}
					seen[seed] = [4]int{x, y, sample, frame}
				}
			}
		}
	}
}

func TestPixelSeed_NotAdditive(t *testing.T) {
	// swapping coordinates must not give the same seed
	assert.NotEqual(t, PixelSeed(1, 2, 0, 0), PixelSeed(2, 1, 0, 0))
	assert.NotEqual(t, PixelSeed(0, 0, 1, 0), PixelSeed(0, 0, 0, 1))

	// neighbouring pixels should not be a fixed distance apart
	d1 := PixelSeed(1, 0, 0, 0) - PixelSeed(0, 0, 0, 0)
	d2 := PixelSeed(2, 0, 0, 0) - PixelSeed(1, 0, 0, 0)
	assert.NotEqual(t, d1, d2)
}
