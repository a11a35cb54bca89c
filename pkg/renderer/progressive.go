package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/integrator"
	"github.com/df07/go-ray-payload/pkg/scene"
	"github.com/pkg/errors"
)

// ProgressiveRaytracer renders a sequence of frames into shared pixel
// statistics, so each frame refines the image left by the previous ones
type ProgressiveRaytracer struct {
	scene        *scene.Scene
	config       Config
	tiles        []*Tile
	pixelStats   [][]PixelStats // Shared pixel statistics array (global image coordinates)
	tileRenderer *TileRenderer
	workerPool   *WorkerPool
	logger       core.Logger
	framesDone   int
}

// FrameResult contains the result of a single frame
type FrameResult struct {
	Frame    int // Frame index used for seeding
	Image    *image.RGBA
	Stats    RenderStats
	Duration time.Duration
	IsLast   bool
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(sc *scene.Scene, config Config, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid render config")
	}
	if sc == nil || sc.Camera == nil {
		return nil, errors.New("scene has no camera")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	pt := integrator.NewPathTracingIntegrator(config.Integrator)

	return &ProgressiveRaytracer{
		scene:        sc,
		config:       config,
		tiles:        NewTileGrid(config.Width, config.Height, config.TileSize),
		pixelStats:   newPixelGrid(config.Width, config.Height),
		tileRenderer: NewTileRenderer(sc, pt, config.Width, config.Height, config.SeedMode),
		workerPool:   NewWorkerPool(config.NumWorkers),
		logger:       logger,
	}, nil
}

// RenderFrame renders one frame of SamplesPerPixel samples per pixel and
// returns the image accumulated so far
func (pr *ProgressiveRaytracer) RenderFrame(ctx context.Context, frame int) (*image.RGBA, RenderStats, error) {
	tasks := make([]TileTask, len(pr.tiles))
	for i, tile := range pr.tiles {
		tasks[i] = TileTask{
			Tile:    tile,
			Frame:   frame,
			Samples: pr.config.SamplesPerPixel,
			TaskID:  i,
		}
	}

	// Samples land in frame-local stats and are folded in only once every tile
	// has finished, so a cancelled frame leaves the accumulated image untouched.
	// Tiles have non-overlapping bounds, so workers never share a PixelStats.
	framePixels := newPixelGrid(pr.config.Width, pr.config.Height)
	results, err := pr.workerPool.Run(ctx, tasks, func(task TileTask) RenderStats {
		return pr.tileRenderer.RenderTileBounds(task.Tile.Bounds, task.Frame, task.Samples, framePixels)
	})
	if err != nil {
		return nil, RenderStats{}, errors.Wrapf(err, "frame %d", frame)
	}

	for y := range framePixels {
		for x := range framePixels[y] {
			pr.pixelStats[y][x].merge(framePixels[y][x])
		}
	}

	var frameStats RenderStats
	for _, result := range results {
		frameStats.merge(result.Stats)
	}
	pr.framesDone++

	img, stats := pr.assembleCurrentImage()
	pr.logger.Printf("Frame %d: %d samples (%.1f per pixel total)\n", frame, frameStats.TotalSamples, stats.AverageSamples)
	return img, stats, nil
}

// Render renders all configured frames, calling onFrame after each one.
// Cancellation is checked before each tile. A cancelled frame contributes no
// samples and returns ctx's error; frames completed earlier are kept, so the
// raytracer can resume with further RenderFrame calls.
func (pr *ProgressiveRaytracer) Render(ctx context.Context, onFrame func(FrameResult)) (*image.RGBA, RenderStats, error) {
	pr.logger.Printf("Starting progressive rendering: %d frames x %d samples, %d tiles, %d workers\n",
		pr.config.Frames, pr.config.SamplesPerPixel, len(pr.tiles), pr.workerPool.GetNumWorkers())

	var img *image.RGBA
	var stats RenderStats
	for i := 0; i < pr.config.Frames; i++ {
		frame := pr.config.FirstFrame + i
		start := time.Now()

		var err error
		img, stats, err = pr.RenderFrame(ctx, frame)
		if err != nil {
			return nil, RenderStats{}, err
		}

		if onFrame != nil {
			onFrame(FrameResult{
				Frame:    frame,
				Image:    img,
				Stats:    stats,
				Duration: time.Since(start),
				IsLast:   i == pr.config.Frames-1,
			})
		}
	}

	return img, stats, nil
}

// FramesDone returns the number of frames accumulated so far
func (pr *ProgressiveRaytracer) FramesDone() int {
	return pr.framesDone
}

// assembleCurrentImage creates an image from the current pixel statistics
// and totals the per-pixel sample counts
func (pr *ProgressiveRaytracer) assembleCurrentImage() (*image.RGBA, RenderStats) {
	stats := RenderStats{
		TotalPixels: pr.config.Width * pr.config.Height,
		MinSamples:  pr.pixelStats[0][0].SampleCount,
	}

	var varianceSum float64
	for y := range pr.pixelStats {
		for x := range pr.pixelStats[y] {
			count := pr.pixelStats[y][x].SampleCount
			stats.TotalSamples += count
			stats.MinSamples = min(stats.MinSamples, count)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
			varianceSum += pr.pixelStats[y][x].Variance()
		}
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.MeanVariance = varianceSum / float64(stats.TotalPixels)

	return assembleImage(pr.pixelStats), stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}
