// Package payload holds the per-ray state threaded through the shading stages
// of the path tracer: the ray's own random generator and its color accumulator.
package payload

import (
	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/random"
)

// Payload is carried by a single ray from generation to image accumulation.
// Both fields are held by value, so copying a Payload copies the generator
// state; no two rays ever share a stream.
type Payload struct {
	Random random.LCG
	Color  core.Vec3
}

// New creates a payload with a freshly seeded generator and a black color
func New(seed uint32) Payload {
	return Payload{Random: random.New(seed)}
}

// ForPixel creates a payload seeded for one sample of one pixel in one frame
func ForPixel(x, y, sample, frame int) Payload {
	return New(random.PixelSeed(x, y, sample, frame))
}

// ForPixelPair creates a payload whose generator is seeded from a pixel index
// and a sample index with the generator's two-word mixing
func ForPixelPair(pixel, sample uint32) Payload {
	var p Payload
	p.Random.SeedPair(pixel, sample)
	return p
}

// Next draws the next value in [0, 1) from the payload's generator
func (p *Payload) Next() float32 {
	return p.Random.Next()
}

// Add accumulates a light contribution
func (p *Payload) Add(c core.Vec3) {
	p.Color = p.Color.Add(c)
}

// Attenuate scales the accumulated color component-wise
func (p *Payload) Attenuate(c core.Vec3) {
	p.Color = p.Color.MultiplyVec(c)
}

// Sampler exposes the payload's generator to sampling routines
func (p *Payload) Sampler() core.Sampler {
	return &p.Random
}
