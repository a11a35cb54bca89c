package scene

import (
	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/geometry"
	"github.com/df07/go-ray-payload/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a lamp, and a ground plane
func NewDefaultScene(aspectRatio float64) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40.0,
		Aperture:    0.05,
	}

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	lamp := material.NewEmissive(core.NewVec3(6.0, 5.6, 5.2))

	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shapes: geometry.ShapeList{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), lambertianGreen),
			geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
			geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
			geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
			geometry.NewSphere(core.NewVec3(0, 1.6, -1.4), 0.2, lamp),
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}
