package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/df07/go-ray-payload/pkg/config"
	"github.com/df07/go-ray-payload/pkg/log"
	"github.com/df07/go-ray-payload/pkg/random"
	"github.com/df07/go-ray-payload/pkg/renderer"
	"github.com/df07/go-ray-payload/pkg/scene"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "raytracer",
		Usage: "progressive path tracer with per-ray random payloads",
		Commands: []*cli.Command{
			renderCommand(),
			sequenceCommand(),
			scenesCommand(),
		},
		DefaultCommand: "render",
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a built-in scene to output/<scene>/render_<timestamp>.png",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
			&cli.StringFlag{Name: "scene", Usage: "scene name: " + strings.Join(scene.Names(), ", ")},
			&cli.IntFlag{Name: "width", Usage: "image width"},
			&cli.IntFlag{Name: "height", Usage: "image height"},
			&cli.IntFlag{Name: "samples", Usage: "samples per pixel per frame"},
			&cli.IntFlag{Name: "frames", Usage: "number of progressive frames"},
			&cli.IntFlag{Name: "first-frame", Usage: "index of the first frame, used for seeding"},
			&cli.IntFlag{Name: "max-depth", Usage: "maximum bounces per path"},
			&cli.IntFlag{Name: "workers", Usage: "parallel workers (0 = CPU count)"},
			&cli.StringFlag{Name: "seed-mode", Usage: "payload seeding: hash or pair"},
			&cli.StringFlag{Name: "output", Usage: "output directory"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: renderCmd,
	}
}

func sequenceCommand() *cli.Command {
	return &cli.Command{
		Name:  "sequence",
		Usage: "print the first values a payload generator produces for a seed",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "seed", Value: 12345, Usage: "generator seed"},
			&cli.IntFlag{Name: "count", Value: 3, Usage: "number of values to print"},
			&cli.BoolFlag{Name: "raw", Usage: "print raw 32-bit states instead of floats"},
		},
		Action: func(c *cli.Context) error {
			if c.Int("count") < 0 {
				return errors.Errorf("count must not be negative, got %d", c.Int("count"))
			}
			writeSequence(c.App.Writer, uint32(c.Uint("seed")), c.Int("count"), c.Bool("raw"))
			return nil
		},
	}
}

func scenesCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenes",
		Usage: "list the built-in scenes",
		Action: func(c *cli.Context) error {
			for _, name := range scene.Names() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

// writeSequence prints count generator values for seed, one per line
func writeSequence(w io.Writer, seed uint32, count int, raw bool) {
	gen := random.New(seed)
	for i := 0; i < count; i++ {
		if raw {
			fmt.Fprintf(w, "0x%08x\n", gen.Uint32())
		} else {
			fmt.Fprintf(w, "%.9f\n", gen.Next())
		}
	}
}

// applyFlags overrides config values with flags the user actually set
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("scene") {
		cfg.Scene = c.String("scene")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("samples") {
		cfg.SamplesPerPixel = c.Int("samples")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("first-frame") {
		cfg.FirstFrame = c.Int("first-frame")
	}
	if c.IsSet("max-depth") {
		cfg.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("seed-mode") {
		cfg.SeedMode = c.String("seed-mode")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func renderCmd(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)

	if err := log.Init(os.Stderr, cfg.LogLevel, true); err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		log.Info().Str("file", cfg.ConfigFile).Msg("using config file")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	filename, err := render(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		log.Warn().Msg("render cancelled, no image written")
	}
	if err != nil {
		return err
	}
	log.Info().Str("file", filename).Msg("render saved")
	return nil
}

// render renders cfg's scene and writes the final image, returning its path
func render(ctx context.Context, cfg *config.Config) (string, error) {
	rc, err := cfg.RenderConfig()
	if err != nil {
		return "", err
	}

	sc, err := scene.New(cfg.Scene, float64(rc.Width)/float64(rc.Height))
	if err != nil {
		return "", err
	}

	pr, err := renderer.NewProgressiveRaytracer(sc, rc, log.ForComponent("renderer"))
	if err != nil {
		return "", err
	}

	start := time.Now()
	img, stats, err := pr.Render(ctx, func(r renderer.FrameResult) {
		log.Debug().
			Int("frame", r.Frame).
			Dur("duration", r.Duration).
			Float64("luminance", renderer.CalculateAverageLuminance(r.Image)).
			Float64("variance", r.Stats.MeanVariance).
			Msg("frame complete")
	})
	if err != nil {
		return "", errors.Wrap(err, "rendering")
	}

	log.Info().
		Int("frames", pr.FramesDone()).
		Dur("elapsed", time.Since(start)).
		Float64("samples_per_pixel", stats.AverageSamples).
		Int("total_samples", stats.TotalSamples).
		Msg("render completed")

	outputDir := filepath.Join(cfg.OutputDir, cfg.Scene)
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	if err := savePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return errors.Wrapf(err, "encoding %s", filename)
	}
	return file.Close()
}
