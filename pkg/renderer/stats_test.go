package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722, black 0: average 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, CalculateAverageLuminance(img), 1e-4)
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, CalculateAverageLuminance(img), 1e-4)
}

func TestPixelStats_AddSample(t *testing.T) {
	var ps PixelStats
	assert.True(t, ps.GetColor().IsZero(), "empty pixel should be black")

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	require.Equal(t, 2, ps.SampleCount)
	assert.Equal(t, core.NewVec3(0.5, 0.5, 0), ps.GetColor())
	assert.Positive(t, ps.Variance(), "differing samples have variance")
}

func TestPixelStats_Merge(t *testing.T) {
	samples := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.2, 0.2, 0.9),
	}

	var all, first, rest PixelStats
	for i, s := range samples {
		all.AddSample(s)
		if i == 0 {
			first.AddSample(s)
		} else {
			rest.AddSample(s)
		}
	}

	first.merge(rest)
	assert.Equal(t, all.SampleCount, first.SampleCount)
	assert.InDelta(t, all.GetColor().X, first.GetColor().X, 1e-12)
	assert.InDelta(t, all.GetColor().Y, first.GetColor().Y, 1e-12)
	assert.InDelta(t, all.GetColor().Z, first.GetColor().Z, 1e-12)
	assert.InDelta(t, all.Variance(), first.Variance(), 1e-12)

	var empty PixelStats
	before := first
	first.merge(empty)
	assert.Equal(t, before, first)
}

func TestRenderStats_Merge(t *testing.T) {
	var total RenderStats
	total.merge(RenderStats{TotalPixels: 4, TotalSamples: 8, MinSamples: 2, MaxSamplesUsed: 2})
	total.merge(RenderStats{TotalPixels: 4, TotalSamples: 16, MinSamples: 4, MaxSamplesUsed: 4})

	assert.Equal(t, 8, total.TotalPixels)
	assert.Equal(t, 24, total.TotalSamples)
	assert.Equal(t, 2, total.MinSamples)
	assert.Equal(t, 4, total.MaxSamplesUsed)
	assert.InDelta(t, 3.0, total.AverageSamples, 1e-12)
}
