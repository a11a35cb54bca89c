package renderer

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/integrator"
	"github.com/df07/go-ray-payload/pkg/payload"
	"github.com/df07/go-ray-payload/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(workers int) Config {
	return Config{
		Width:           24,
		Height:          16,
		SamplesPerPixel: 2,
		Frames:          2,
		TileSize:        8,
		NumWorkers:      workers,
		Integrator:      integrator.Config{MaxDepth: 6, RussianRouletteMinBounces: 3},
	}
}

func render(t *testing.T, config Config) (*image.RGBA, RenderStats) {
	t.Helper()
	sc := scene.NewDefaultScene(float64(config.Width) / float64(config.Height))
	pr, err := NewProgressiveRaytracer(sc, config, nil)
	require.NoError(t, err)

	img, stats, err := pr.Render(context.Background(), nil)
	require.NoError(t, err)
	return img, stats
}

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	width, height := 70, 45
	tiles := NewTileGrid(width, height, 16)
	assert.Len(t, tiles, 5*3)

	covered := make([][]int, height)
	for y := range covered {
		covered[y] = make([]int, width)
	}
	for i, tile := range tiles {
		assert.Equal(t, i, tile.ID)
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y][x]++
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			require.Equal(t, 1, covered[y][x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"no frames", func(c *Config) { c.Frames = 0 }},
		{"negative first frame", func(c *Config) { c.FirstFrame = -2 }},
		{"no tile size", func(c *Config) { c.TileSize = 0 }},
		{"no depth", func(c *Config) { c.Integrator.MaxDepth = 0 }},
		{"unknown seed mode", func(c *Config) { c.SeedMode = "sequential" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestRender_SampleCounts(t *testing.T) {
	config := smallConfig(2)
	img, stats := render(t, config)

	assert.Equal(t, image.Rect(0, 0, config.Width, config.Height), img.Bounds())
	want := config.SamplesPerPixel * config.Frames
	assert.Equal(t, config.Width*config.Height, stats.TotalPixels)
	assert.Equal(t, want, stats.MinSamples)
	assert.Equal(t, want, stats.MaxSamplesUsed)
	assert.InDelta(t, float64(want), stats.AverageSamples, 1e-9)
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	single, _ := render(t, smallConfig(1))
	many, _ := render(t, smallConfig(8))
	again, _ := render(t, smallConfig(8))

	assert.Equal(t, single.Pix, many.Pix, "worker count must not change the image")
	assert.Equal(t, many.Pix, again.Pix, "repeated renders must match")
}

func TestRender_FrameIndexChangesNoise(t *testing.T) {
	base := smallConfig(4)
	shifted := smallConfig(4)
	shifted.FirstFrame = 10

	a, _ := render(t, base)
	b, _ := render(t, shifted)
	assert.NotEqual(t, a.Pix, b.Pix, "different frames must draw different random streams")
}

func TestRender_FrameCallback(t *testing.T) {
	config := smallConfig(2)
	config.FirstFrame = 3
	sc := scene.NewDefaultScene(1.5)
	pr, err := NewProgressiveRaytracer(sc, config, nil)
	require.NoError(t, err)

	var frames []FrameResult
	_, _, err = pr.Render(context.Background(), func(r FrameResult) {
		frames = append(frames, r)
	})
	require.NoError(t, err)

	require.Len(t, frames, 2)
	assert.Equal(t, 3, frames[0].Frame)
	assert.Equal(t, 4, frames[1].Frame)
	assert.False(t, frames[0].IsLast)
	assert.True(t, frames[1].IsLast)
	assert.Equal(t, config.SamplesPerPixel, frames[0].Stats.MinSamples)
	assert.Equal(t, 2*config.SamplesPerPixel, frames[1].Stats.MinSamples)
	assert.Equal(t, 2, pr.FramesDone())
}

func TestRender_Cancelled(t *testing.T) {
	sc := scene.NewDefaultScene(1.5)
	pr, err := NewProgressiveRaytracer(sc, smallConfig(2), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = pr.Render(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// cancelOnFirstTrace cancels a context the first time a ray is traced, so a
// frame is interrupted while its first tile is still rendering
type cancelOnFirstTrace struct {
	inner  integrator.Integrator
	cancel context.CancelFunc
	once   sync.Once
}

func (c *cancelOnFirstTrace) Trace(ray core.Ray, sc *scene.Scene, p *payload.Payload) core.Vec3 {
	c.once.Do(c.cancel)
	return c.inner.Trace(ray, sc, p)
}

func TestRenderFrame_CancelledFrameLeavesNoSamples(t *testing.T) {
	config := smallConfig(1)
	sc := scene.NewDefaultScene(float64(config.Width) / float64(config.Height))
	pr, err := NewProgressiveRaytracer(sc, config, nil)
	require.NoError(t, err)

	normal := pr.tileRenderer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pr.tileRenderer = NewTileRenderer(sc, &cancelOnFirstTrace{
		inner:  integrator.NewPathTracingIntegrator(config.Integrator),
		cancel: cancel,
	}, config.Width, config.Height, config.SeedMode)

	_, _, err = pr.RenderFrame(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, pr.FramesDone())
	for y := range pr.pixelStats {
		for x := range pr.pixelStats[y] {
			require.Zero(t, pr.pixelStats[y][x].SampleCount, "pixel (%d,%d)", x, y)
		}
	}

	// The same raytracer resumes cleanly and matches an uninterrupted frame
	pr.tileRenderer = normal
	img, stats, err := pr.RenderFrame(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, config.SamplesPerPixel, stats.MinSamples)
	assert.Equal(t, config.SamplesPerPixel, stats.MaxSamplesUsed)
	assert.Equal(t, 1, pr.FramesDone())

	fresh, err := NewProgressiveRaytracer(sc, config, nil)
	require.NoError(t, err)
	want, _, err := fresh.RenderFrame(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, img.Pix)
}

func TestRender_SeedModePair(t *testing.T) {
	single := smallConfig(1)
	single.SeedMode = SeedModePair
	many := smallConfig(8)
	many.SeedMode = SeedModePair

	a, stats := render(t, single)
	b, _ := render(t, many)
	hashed, _ := render(t, smallConfig(8))

	assert.Equal(t, a.Pix, b.Pix, "worker count must not change the image")
	assert.NotEqual(t, hashed.Pix, a.Pix, "seed modes draw different streams")
	assert.Equal(t, single.SamplesPerPixel*single.Frames, stats.MinSamples)
}

func TestRender_MeanVariance(t *testing.T) {
	_, stats := render(t, smallConfig(2))
	assert.Positive(t, stats.MeanVariance, "a path traced diffuse scene is noisy")
}

func TestNewProgressiveRaytracer_RejectsBadInput(t *testing.T) {
	config := smallConfig(1)
	config.Width = 0
	_, err := NewProgressiveRaytracer(scene.NewDefaultScene(1), config, nil)
	assert.Error(t, err)

	_, err = NewProgressiveRaytracer(&scene.Scene{}, smallConfig(1), nil)
	assert.Error(t, err)
}

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3)
	assert.Equal(t, 3, pool.GetNumWorkers())

	tasks := make([]TileTask, 20)
	for i := range tasks {
		tasks[i] = TileTask{TaskID: i, Samples: i}
	}

	var calls atomic.Int32
	results, err := pool.Run(context.Background(), tasks, func(task TileTask) RenderStats {
		calls.Add(1)
		return RenderStats{TotalSamples: task.Samples}
	})
	require.NoError(t, err)
	assert.Equal(t, int32(len(tasks)), calls.Load())
	for i, r := range results {
		assert.Equal(t, i, r.TaskID)
		assert.Equal(t, i, r.Stats.TotalSamples)
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	assert.Positive(t, NewWorkerPool(0).GetNumWorkers())
}
