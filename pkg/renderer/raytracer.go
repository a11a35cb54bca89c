package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/df07/go-ray-payload/pkg/integrator"
	"github.com/pkg/errors"
)

// SeedMode selects how each ray's payload is seeded
type SeedMode string

const (
	// SeedModeHash seeds from a murmur3 hash of (x, y, sample, frame)
	SeedModeHash SeedMode = "hash"
	// SeedModePair mixes the pixel index and the frame-wide sample index
	// with the generator's two-word TEA seeding
	SeedModePair SeedMode = "pair"
)

// Config contains rendering configuration
type Config struct {
	Width           int      // Image width in pixels
	Height          int      // Image height in pixels
	SamplesPerPixel int      // Samples per pixel in each frame
	Frames          int      // Number of progressive frames
	FirstFrame      int      // Frame index of the first frame, feeds seed derivation
	TileSize        int      // Size of each square tile
	NumWorkers      int      // Number of parallel workers (0 = use CPU count)
	SeedMode        SeedMode // Payload seeding, empty means SeedModeHash
	Integrator      integrator.Config
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 8,
		Frames:          4,
		TileSize:        32,
		SeedMode:        SeedModeHash,
		Integrator:      integrator.DefaultConfig(),
	}
}

// Validate checks that the configuration can produce an image
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return errors.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.Frames <= 0:
		return errors.Errorf("frame count must be positive, got %d", c.Frames)
	case c.FirstFrame < 0:
		return errors.Errorf("first frame must not be negative, got %d", c.FirstFrame)
	case c.TileSize <= 0:
		return errors.Errorf("tile size must be positive, got %d", c.TileSize)
	case c.Integrator.MaxDepth <= 0:
		return errors.Errorf("max depth must be positive, got %d", c.Integrator.MaxDepth)
	case c.SeedMode != "" && c.SeedMode != SeedModeHash && c.SeedMode != SeedModePair:
		return errors.Errorf("unknown seed mode %q", c.SeedMode)
	}
	return nil
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// assembleImage creates an image from the averaged pixel statistics
func assembleImage(pixelStats [][]PixelStats) *image.RGBA {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range pixelStats {
		for x := range pixelStats[y] {
			img.SetRGBA(x, y, vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}
