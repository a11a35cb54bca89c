package scene

import (
	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/geometry"
	"github.com/df07/go-ray-payload/pkg/material"
	"github.com/pkg/errors"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Shapes       geometry.ShapeList
	TopColor     core.Vec3 // Sky color straight up
	BottomColor  core.Vec3 // Sky color at the horizon and below
}

// Hit returns the closest intersection in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}

// Background returns the sky gradient seen along ray
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BottomColor.Multiply(1.0 - t).Add(s.TopColor.Multiply(t))
}

// Builder creates a scene for the given image aspect ratio
type Builder func(aspectRatio float64) *Scene

var builders = map[string]Builder{
	"default":    NewDefaultScene,
	"spheregrid": NewSphereGridScene,
}

// Names lists the built-in scenes
func Names() []string {
	return []string{"default", "spheregrid"}
}

// New creates a built-in scene by name
func New(name string, aspectRatio float64) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, errors.Errorf("unknown scene %q", name)
	}
	return build(aspectRatio), nil
}
