package random

import (
	"math/rand/v2"

	"github.com/df07/go-ray-payload/pkg/core"
)

// LCG constants (Numerical Recipes). Increment is odd and multiplier-1 is a
// multiple of 4, so the generator has full period 2^32.
const (
	Multiplier uint32 = 1664525
	Increment  uint32 = 1013904223

	// WarmUpSteps is the number of mixing steps applied after seeding
	WarmUpSteps = 16
)

// floatScale maps the top 24 bits of the state onto [0, 1)
const floatScale = 1.0 / (1 << 24)

// LCG is a 32-bit linear congruential generator.
// It is a plain value: copying an LCG forks the stream, and nothing is shared
// between instances. It is not safe for concurrent use; each ray owns its own.
type LCG struct {
	state uint32
}

// Make sure *LCG can back a math/rand/v2 generator and a core.Sampler
var (
	_ rand.Source  = (*LCG)(nil)
	_ core.Sampler = (*LCG)(nil)
)

// New creates a generator seeded with seed
func New(seed uint32) LCG {
	var l LCG
	l.Seed(seed)
	return l
}

// Restore rebuilds a generator from a register previously read with State.
// No warm-up is applied, so the restored generator continues the old stream.
func Restore(state uint32) LCG {
	return LCG{state: state}
}

// Seed sets the state to seed and runs the warm-up steps
func (l *LCG) Seed(seed uint32) {
	l.state = seed
	for i := 0; i < WarmUpSteps; i++ {
		l.step()
	}
}

// SeedPair mixes two words (typically a pixel index and a sample index) with
// WarmUpSteps rounds of a TEA Feistel network and uses the result as state.
// The TEA rounds take the place of the LCG warm-up; no steps follow them.
func (l *LCG) SeedPair(v0, v1 uint32) {
	var sum uint32
	for i := 0; i < WarmUpSteps; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}
	l.state = v0
}

// State returns the current register
func (l *LCG) State() uint32 {
	return l.state
}

func (l *LCG) step() uint32 {
	l.state = l.state*Multiplier + Increment
	return l.state
}

// Next advances the generator and returns a value in [0, 1).
// Only the top 24 bits are used; the low bits of an LCG have short periods.
func (l *LCG) Next() float32 {
	return toFloat(l.step())
}

func toFloat(state uint32) float32 {
	return float32(state>>8) * floatScale
}

// Float64 returns Next widened to float64
func (l *LCG) Float64() float64 {
	return float64(l.Next())
}

// Uint32 advances the generator and returns the raw state
func (l *LCG) Uint32() uint32 {
	return l.step()
}

// Uint64 combines the states of two steps, high word first
func (l *LCG) Uint64() uint64 {
	hi := uint64(l.step())
	lo := uint64(l.step())
	return hi<<32 | lo
}

// Get1D returns a value in [0, 1)
func (l *LCG) Get1D() float64 {
	return l.Float64()
}

// Get2D returns two values in [0, 1)
func (l *LCG) Get2D() core.Vec2 {
	x := l.Float64()
	y := l.Float64()
	return core.NewVec2(x, y)
}

// Get3D returns three values in [0, 1)
func (l *LCG) Get3D() core.Vec3 {
	x := l.Float64()
	y := l.Float64()
	z := l.Float64()
	return core.NewVec3(x, y, z)
}
