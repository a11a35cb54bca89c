package config

import (
	"strings"

	"github.com/df07/go-ray-payload/pkg/integrator"
	"github.com/df07/go-ray-payload/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds everything the render command needs
type Config struct {
	Scene                     string `mapstructure:"scene"`
	Width                     int    `mapstructure:"width"`
	Height                    int    `mapstructure:"height"`
	SamplesPerPixel           int    `mapstructure:"samples_per_pixel"`
	Frames                    int    `mapstructure:"frames"`
	FirstFrame                int    `mapstructure:"first_frame"`
	MaxDepth                  int    `mapstructure:"max_depth"`
	RussianRouletteMinBounces int    `mapstructure:"russian_roulette_min_bounces"`
	TileSize                  int    `mapstructure:"tile_size"`
	Workers                   int    `mapstructure:"workers"`
	SeedMode                  string `mapstructure:"seed_mode"`
	OutputDir                 string `mapstructure:"output_dir"`
	LogLevel                  string `mapstructure:"log_level"`
	ConfigFile                string `mapstructure:"config_file"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	rc := renderer.DefaultConfig()
	return &Config{
		Scene:                     "default",
		Width:                     rc.Width,
		Height:                    rc.Height,
		SamplesPerPixel:           rc.SamplesPerPixel,
		Frames:                    rc.Frames,
		MaxDepth:                  rc.Integrator.MaxDepth,
		RussianRouletteMinBounces: rc.Integrator.RussianRouletteMinBounces,
		TileSize:                  rc.TileSize,
		SeedMode:                  string(rc.SeedMode),
		OutputDir:                 "output",
		LogLevel:                  "info",
	}
}

// Load reads configuration from defaults, an optional YAML file and
// RAYTRACER_* environment variables, in increasing order of precedence.
// An empty path searches for raytracer.yaml in the working directory and
// $HOME/.raytracer; a missing file is not an error unless path was given.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix("RAYTRACER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("raytracer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.raytracer")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("scene", cfg.Scene)
	v.SetDefault("width", cfg.Width)
	v.SetDefault("height", cfg.Height)
	v.SetDefault("samples_per_pixel", cfg.SamplesPerPixel)
	v.SetDefault("frames", cfg.Frames)
	v.SetDefault("first_frame", cfg.FirstFrame)
	v.SetDefault("max_depth", cfg.MaxDepth)
	v.SetDefault("russian_roulette_min_bounces", cfg.RussianRouletteMinBounces)
	v.SetDefault("tile_size", cfg.TileSize)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("seed_mode", cfg.SeedMode)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("log_level", cfg.LogLevel)
}

// RenderConfig converts to the renderer's configuration and validates it
func (c *Config) RenderConfig() (renderer.Config, error) {
	rc := renderer.Config{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		Frames:          c.Frames,
		FirstFrame:      c.FirstFrame,
		TileSize:        c.TileSize,
		NumWorkers:      c.Workers,
		SeedMode:        renderer.SeedMode(c.SeedMode),
		Integrator: integrator.Config{
			MaxDepth:                  c.MaxDepth,
			RussianRouletteMinBounces: c.RussianRouletteMinBounces,
		},
	}
	if err := rc.Validate(); err != nil {
		return renderer.Config{}, err
	}
	return rc, nil
}
