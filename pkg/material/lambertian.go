package material

import (
	"math"

	"github.com/df07/go-ray-payload/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Generate cosine-weighted random direction in hemisphere around normal
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.NewRay(hit.Point, scatterDirection)

	// PDF: cos(θ) / π
	cosTheta := max(0, scatterDirection.Normalize().Dot(hit.Normal))

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi),
		PDF:         cosTheta / math.Pi,
	}, true
}
