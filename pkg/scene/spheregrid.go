package scene

import (
	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/geometry"
	"github.com/df07/go-ray-payload/pkg/material"
	"github.com/df07/go-ray-payload/pkg/random"
)

// gridSeed fixes the layout so every run builds the same grid
const gridSeed = 20250101

// NewSphereGridScene creates a grid of small spheres with randomized materials
func NewSphereGridScene(aspectRatio float64) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 4, 6),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        45.0,
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := geometry.ShapeList{
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
	}

	rng := random.New(gridSeed)
	const gridSize = 7
	const spacing = 0.9
	const radius = 0.3
	offset := float64(gridSize-1) * spacing / 2

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			center := core.NewVec3(float64(col)*spacing-offset, radius, float64(row)*spacing-offset)
			albedo := rng.Get3D()

			var mat material.Material
			switch choice := rng.Next(); {
			case choice < 0.6:
				mat = material.NewLambertian(albedo.MultiplyVec(albedo))
			case choice < 0.9:
				mat = material.NewMetal(albedo.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5)), rng.Float64()*0.5)
			default:
				mat = material.NewEmissive(albedo.Multiply(4))
			}
			shapes = append(shapes, geometry.NewSphere(center, radius, mat))
		}
	}

	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shapes:       shapes,
		TopColor:     core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:  core.NewVec3(1.0, 1.0, 1.0),
	}
}
