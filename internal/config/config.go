// Package config loads runtime settings with viper: built-in defaults, an
// optional firesim.{json,yaml,toml} file and FIRESIM_* environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FileName  = "firesim"
	EnvPrefix = "FIRESIM"
)

type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

type CameraConfig struct {
	FOV float64 `json:"fov" mapstructure:"fov"`
}

type SceneConfig struct {
	SpeedFactor    float64 `json:"speedFactor" mapstructure:"speedFactor"`
	UpdatePeriodMs int     `json:"updatePeriodMs" mapstructure:"updatePeriodMs"`
	Seed           uint64  `json:"seed" mapstructure:"seed"`
}

type AudioConfig struct {
	Enabled   bool    `json:"enabled" mapstructure:"enabled"`
	SFXVolume float64 `json:"sfxVolume" mapstructure:"sfxVolume"`
}

// RecorderConfig controls the SQLite flight log.
type RecorderConfig struct {
	Enabled          bool   `json:"enabled" mapstructure:"enabled"`
	Path             string `json:"path" mapstructure:"path"`
	SampleIntervalMs int    `json:"sampleIntervalMs" mapstructure:"sampleIntervalMs"`
}

type Config struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string         `json:"logFile" mapstructure:"logFile"`
	Window   WindowConfig   `json:"window" mapstructure:"window"`
	Camera   CameraConfig   `json:"camera" mapstructure:"camera"`
	Scene    SceneConfig    `json:"scene" mapstructure:"scene"`
	Audio    AudioConfig    `json:"audio" mapstructure:"audio"`
	Recorder RecorderConfig `json:"recorder" mapstructure:"recorder"`
}

// UpdatePeriod is the fixed simulation tick.
func (c Config) UpdatePeriod() time.Duration {
	return time.Duration(c.Scene.UpdatePeriodMs) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Fire Station")

	v.SetDefault("camera.fov", 75.0)

	v.SetDefault("scene.speedFactor", 1.0)
	v.SetDefault("scene.updatePeriodMs", 50)
	v.SetDefault("scene.seed", 1)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sfxVolume", 0.58)

	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.path", "firesim.db")
	v.SetDefault("recorder.sampleIntervalMs", 500)
}

// Load reads configuration from configDir. A missing file is not an
// error; a malformed one is.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the scene cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Scene.UpdatePeriodMs <= 0:
		return fmt.Errorf("scene.updatePeriodMs must be positive, got %d", c.Scene.UpdatePeriodMs)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov out of range: %v", c.Camera.FOV)
	case c.Recorder.SampleIntervalMs < 0:
		return fmt.Errorf("recorder.sampleIntervalMs must not be negative")
	}
	return nil
}
