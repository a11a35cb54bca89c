package renderer

import (
	"image"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/integrator"
	"github.com/df07/go-ray-payload/pkg/payload"
	"github.com/df07/go-ray-payload/pkg/scene"
)

// TileRenderer renders the pixels of individual tiles using an integrator
type TileRenderer struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
	seedMode      SeedMode
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(sc *scene.Scene, integratorInst integrator.Integrator, width, height int, seedMode SeedMode) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integratorInst,
		width:      width,
		height:     height,
		seedMode:   seedMode,
	}
}

// RenderTileBounds takes samples per pixel samples of frame for every pixel
// within bounds and adds them to pixelStats.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame, samples int, pixelStats [][]PixelStats) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MinSamples:  samples,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for sample := 0; sample < samples; sample++ {
				p := tr.newPayload(x, y, sample, frame, samples)
				ps.AddSample(tr.renderSample(x, y, &p))
			}
			stats.TotalSamples += samples
			stats.MaxSamplesUsed = samples
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// newPayload seeds the payload for one sample of pixel (x, y) in frame.
// In pair mode the second word numbers samples across frames, which stays
// unique as long as every frame takes the same number of samples.
func (tr *TileRenderer) newPayload(x, y, sample, frame, samples int) payload.Payload {
	if tr.seedMode == SeedModePair {
		return payload.ForPixelPair(uint32(y*tr.width+x), uint32(frame*samples+sample))
	}
	return payload.ForPixel(x, y, sample, frame)
}

// renderSample traces one ray through pixel (x, y) carrying p, which is
// dropped once its color is read.
func (tr *TileRenderer) renderSample(x, y int, p *payload.Payload) core.Vec3 {
	ray := tr.scene.Camera.GetRay(x, y, tr.width, tr.height, p.Sampler())
	tr.integrator.Trace(ray, tr.scene, p)
	return p.Color
}
