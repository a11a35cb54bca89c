package integrator

import (
	"math"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/material"
	"github.com/df07/go-ray-payload/pkg/payload"
	"github.com/df07/go-ray-payload/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Trace follows ray through the scene. Each bounce runs the same stages:
// intersect, emit, scatter, roulette. Light reaching the camera is added to
// p.Color, which is also returned.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, sc *scene.Scene, p *payload.Payload) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		hit, isHit := sc.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			p.Add(sc.Background(ray).MultiplyVec(throughput))
			break
		}

		p.Add(pt.emitted(ray, hit).MultiplyVec(throughput))

		scattered, weight, ok := pt.scatter(ray, hit, p)
		if !ok {
			break
		}
		throughput = throughput.MultiplyVec(weight)
		if throughput.IsZero() {
			break
		}

		compensation, survive := pt.russianRoulette(bounce, throughput, p)
		if !survive {
			break
		}
		throughput = throughput.Multiply(compensation)
		ray = scattered
	}

	return p.Color
}

// emitted returns the light emitted at hit, if its material is an emitter
func (pt *PathTracingIntegrator) emitted(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}

// scatter samples the next direction and returns the throughput weight for it.
// For diffuse scattering the weight is BRDF * cos / pdf.
func (pt *PathTracingIntegrator) scatter(ray core.Ray, hit *material.HitRecord, p *payload.Payload) (core.Ray, core.Vec3, bool) {
	result, didScatter := hit.Material.Scatter(ray, *hit, p.Sampler())
	if !didScatter {
		return core.Ray{}, core.Vec3{}, false
	}

	if result.IsSpecular() {
		return result.Scattered, result.Attenuation, true
	}

	cosine := result.Scattered.Direction.Normalize().Dot(hit.Normal)
	if cosine <= 0 {
		return core.Ray{}, core.Vec3{}, false
	}
	return result.Scattered, result.Attenuation.Multiply(cosine / result.PDF), true
}

// russianRoulette decides whether the path continues past this bounce.
// Returns the compensation factor and whether the path survives.
func (pt *PathTracingIntegrator) russianRoulette(bounce int, throughput core.Vec3, p *payload.Payload) (float64, bool) {
	if bounce+1 < pt.config.RussianRouletteMinBounces {
		return 1.0, true
	}

	// Conservative bounds keep the compensation between 1.05x and 2x
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if p.Random.Float64() > survivalProb {
		return 0, false
	}
	return 1.0 / survivalProb, true
}
