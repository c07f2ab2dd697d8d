package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"objdemo/emu/log"
)

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Emulation EmulationConfig `toml:"emulation"`
	Animation AnimationConfig `toml:"animation"`
}

type VideoConfig struct {
	Scale        int   `toml:"scale"`
	DisableVSync bool  `toml:"disable_vsync"`
	Monitor      int32 `toml:"monitor"`
}

type EmulationConfig struct {
	// Unthrottled runs frames as fast as possible instead of at the
	// console refresh rate.
	Unthrottled bool `toml:"unthrottled"`
}

type AnimationConfig struct {
	StartX int `toml:"start_x"`
	StartY int `toml:"start_y"`

	// ExclusiveBounds stops the moving object at the screen size rather
	// than one pixel past it.
	ExclusiveBounds bool `toml:"exclusive_bounds"`
}

const maxScale = 8

// DefaultConfig returns the configuration used when there's no config file.
func DefaultConfig() Config {
	return Config{
		Video: VideoConfig{Scale: 3},
	}
}

// Check fixes invalid values.
func (cfg *Config) Check() {
	if cfg.Video.Scale < 1 || cfg.Video.Scale > maxScale {
		log.ModEmu.WarnZ("invalid video scale, using default").
			Int("scale", cfg.Video.Scale).
			End()
		cfg.Video.Scale = DefaultConfig().Video.Scale
	}
}

var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to locate user config directory: %v", err)
	}
	dir = filepath.Join(dir, "objdemo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfig loads the configuration at path. Missing keys keep their
// default value, a missing file gives the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown config key").Stringer("key", key).End()
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the objdemo config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil {
		log.ModEmu.WarnZ("failed to load config, using default").
			String("path", path).
			Error("err", err).
			End()
	}
	return cfg
}

// SaveConfig into path.
func SaveConfig(cfg Config, path string) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
