package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/racecast/network"
	"github.com/lixenwraith/racecast/parameter"
	"github.com/lixenwraith/racecast/system"
)

// ErrInvalid is returned by Validate for out-of-range settings
var ErrInvalid = errors.New("invalid configuration")

// Viper keys
const (
	KeyWidth            = "width"
	KeyHeight           = "height"
	KeyLanes            = "lanes"
	KeyFPS              = "fps"
	KeyCaptureFPS       = "capture_fps"
	KeyCaptureQuality   = "capture_quality"
	KeySpeedMin         = "speed_min"
	KeySpeedMax         = "speed_max"
	KeyBoostMin         = "boost_min"
	KeyBoostMax         = "boost_max"
	KeyMaxFrameDelta    = "max_frame_delta"
	KeySeed             = "seed"
	KeyOutputDir        = "output_dir"
	KeySpoolDir         = "spool_dir"
	KeyListen           = "listen"
	KeyLogLevel         = "log_level"
	KeyDebug            = "debug"
	KeyFSMConfig        = "fsm_config"
	KeyCaptureFSMConfig = "capture_fsm_config"
	KeyAudio            = "audio"
	KeyVolume           = "volume"
	KeyHUD              = "hud"
)

// Config is the resolved runtime configuration
type Config struct {
	Width  int
	Height int
	Lanes  int

	FPS            int
	CaptureFPS     int
	CaptureQuality int

	SpeedMin float64
	SpeedMax float64
	BoostMin float64
	BoostMax float64

	MaxFrameDelta time.Duration
	Seed          uint64 // 0 = random

	OutputDir string
	SpoolDir  string
	Listen    string

	LogLevel string
	Debug    bool

	FSMConfig        string
	CaptureFSMConfig string

	Audio  bool
	Volume float64
	HUD    bool
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Width:          960,
		Height:         420,
		Lanes:          parameter.DefaultLaneCount,
		FPS:            60,
		CaptureFPS:     parameter.CaptureFPS,
		CaptureQuality: parameter.CaptureJPEGQuality,
		SpeedMin:       parameter.SpeedMin,
		SpeedMax:       parameter.SpeedMax,
		BoostMin:       parameter.BoostMin,
		BoostMax:       parameter.BoostMax,
		MaxFrameDelta:  parameter.MaxFrameDelta,
		OutputDir:      ".",
		SpoolDir:       "",
		Listen:         network.DefaultConfig().Address,
		LogLevel:       "info",
		Audio:          true,
		Volume:         0.8,
		HUD:            true,
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyHeight, d.Height)
	v.SetDefault(KeyLanes, d.Lanes)
	v.SetDefault(KeyFPS, d.FPS)
	v.SetDefault(KeyCaptureFPS, d.CaptureFPS)
	v.SetDefault(KeyCaptureQuality, d.CaptureQuality)
	v.SetDefault(KeySpeedMin, d.SpeedMin)
	v.SetDefault(KeySpeedMax, d.SpeedMax)
	v.SetDefault(KeyBoostMin, d.BoostMin)
	v.SetDefault(KeyBoostMax, d.BoostMax)
	v.SetDefault(KeyMaxFrameDelta, d.MaxFrameDelta)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeySpoolDir, d.SpoolDir)
	v.SetDefault(KeyListen, d.Listen)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyFSMConfig, d.FSMConfig)
	v.SetDefault(KeyCaptureFSMConfig, d.CaptureFSMConfig)
	v.SetDefault(KeyAudio, d.Audio)
	v.SetDefault(KeyVolume, d.Volume)
	v.SetDefault(KeyHUD, d.HUD)
}

// Load resolves a Config from v and validates it
// Keys absent from v keep their defaults
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	c := &Config{
		Width:            v.GetInt(KeyWidth),
		Height:           v.GetInt(KeyHeight),
		Lanes:            v.GetInt(KeyLanes),
		FPS:              v.GetInt(KeyFPS),
		CaptureFPS:       v.GetInt(KeyCaptureFPS),
		CaptureQuality:   v.GetInt(KeyCaptureQuality),
		SpeedMin:         v.GetFloat64(KeySpeedMin),
		SpeedMax:         v.GetFloat64(KeySpeedMax),
		BoostMin:         v.GetFloat64(KeyBoostMin),
		BoostMax:         v.GetFloat64(KeyBoostMax),
		MaxFrameDelta:    v.GetDuration(KeyMaxFrameDelta),
		Seed:             v.GetUint64(KeySeed),
		OutputDir:        v.GetString(KeyOutputDir),
		SpoolDir:         v.GetString(KeySpoolDir),
		Listen:           v.GetString(KeyListen),
		LogLevel:         v.GetString(KeyLogLevel),
		Debug:            v.GetBool(KeyDebug),
		FSMConfig:        v.GetString(KeyFSMConfig),
		CaptureFSMConfig: v.GetString(KeyCaptureFSMConfig),
		Audio:            v.GetBool(KeyAudio),
		Volume:           v.GetFloat64(KeyVolume),
		HUD:              v.GetBool(KeyHUD),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges; the error wraps ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "surface %dx%d must be positive", c.Width, c.Height)
	check(c.Lanes >= 1, "lanes %d must be at least 1", c.Lanes)
	check(c.FPS > 0, "fps %d must be positive", c.FPS)
	check(c.CaptureFPS > 0, "capture_fps %d must be positive", c.CaptureFPS)
	check(c.CaptureQuality >= 1 && c.CaptureQuality <= 100, "capture_quality %d out of [1,100]", c.CaptureQuality)
	check(c.SpeedMin > 0 && c.SpeedMin <= c.SpeedMax, "speed range [%g,%g] invalid", c.SpeedMin, c.SpeedMax)
	check(c.BoostMin > 0 && c.BoostMin <= c.BoostMax, "boost range [%g,%g] invalid", c.BoostMin, c.BoostMax)
	check(c.MaxFrameDelta > 0, "max_frame_delta %s must be positive", c.MaxFrameDelta)
	check(c.Volume >= 0, "volume %g must not be negative", c.Volume)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// FrameInterval is the scheduler cadence for FPS
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Ranges returns the field sampling bands
func (c *Config) Ranges() system.FieldRanges {
	return system.FieldRanges{
		SpeedMin: c.SpeedMin,
		SpeedMax: c.SpeedMax,
		BoostMin: c.BoostMin,
		BoostMax: c.BoostMax,
	}
}

// Network returns the HTTP listener configuration
func (c *Config) Network() *network.Config {
	n := network.DefaultConfig()
	n.Address = c.Listen
	return n
}
