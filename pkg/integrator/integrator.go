package integrator

import (
	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/payload"
	"github.com/df07/go-ray-payload/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations draw all randomness from the payload and leave the ray's
// radiance in payload.Color when they return.
type Integrator interface {
	Trace(ray core.Ray, sc *scene.Scene, p *payload.Payload) core.Vec3
}

// Config contains the path depth limits
type Config struct {
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Minimum bounces before Russian Roulette can activate
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  25,
		RussianRouletteMinBounces: 5,
	}
}
