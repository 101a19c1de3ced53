// Package config loads explorer parameter files with viper and validates
// the host-level fields.
//
// Files may be TOML, YAML or JSON. Every key can be overridden from the
// environment with the SIGEXPLORE_ prefix, dots replaced by underscores
// (SIGEXPLORE_SIGNAL_AMPLITUDE=2).
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-sigexplore/dsp/core"
	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
	"github.com/cwbudde/algo-sigexplore/dsp/noise"
	"github.com/cwbudde/algo-sigexplore/dsp/signal"
	"github.com/cwbudde/algo-sigexplore/dsp/window"
	"github.com/cwbudde/algo-sigexplore/explorer"
	"github.com/cwbudde/algo-sigexplore/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SIGEXPLORE"

// Config is the full parameter file.
type Config struct {
	Grid     GridConfig     `mapstructure:"grid"`
	Signal   SignalConfig   `mapstructure:"signal"`
	Noise    NoiseConfig    `mapstructure:"noise"`
	Toggles  TogglesConfig  `mapstructure:"toggles"`
	Tuning   TuningConfig   `mapstructure:"tuning"`
	Spectrum SpectrumConfig `mapstructure:"spectrum"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Seed     uint64         `mapstructure:"seed"`
}

// GridConfig describes the evenly spaced sample grid.
type GridConfig struct {
	Start      float64 `mapstructure:"start"`
	Stop       float64 `mapstructure:"stop"        validate:"gtfield=Start"`
	Points     int     `mapstructure:"points"      validate:"min=2"`
	Convention string  `mapstructure:"convention"  validate:"oneof=angular cyclic"`
}

// SignalConfig holds the harmonic parameters.
type SignalConfig struct {
	Amplitude float64 `mapstructure:"amplitude"`
	Frequency float64 `mapstructure:"frequency"`
	Phase     float64 `mapstructure:"phase"`
}

// NoiseConfig holds the noise parameters. The variance is checked by the
// core when noise is shown.
type NoiseConfig struct {
	Mean     float64 `mapstructure:"mean"`
	Variance float64 `mapstructure:"variance"`
}

// TogglesConfig holds the display toggles.
type TogglesConfig struct {
	Noise  bool `mapstructure:"noise"`
	Filter bool `mapstructure:"filter"`
	Custom bool `mapstructure:"custom"`
}

// TuningConfig holds the filter tuning. Values are checked by the core for
// the strategy that runs.
type TuningConfig struct {
	Window         int     `mapstructure:"window"`
	Order          int     `mapstructure:"order"`
	CutoffMult     float64 `mapstructure:"cutoff_mult"`
	SampleRateMult float64 `mapstructure:"sample_rate_mult"`
	CutoffHz       float64 `mapstructure:"cutoff_hz"`
	Placeholder    string  `mapstructure:"placeholder" validate:"oneof=nan zero"`
}

// SpectrumConfig selects the spectrum taper.
type SpectrumConfig struct {
	Window string `mapstructure:"window" validate:"oneof=rectangular hann hamming blackman"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// MetricsConfig configures the Prometheus endpoint. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	st := explorer.DefaultState()
	g := core.DefaultGrid()

	v.SetDefault("grid.start", g.Start())
	v.SetDefault("grid.stop", g.Stop())
	v.SetDefault("grid.points", g.Len())
	v.SetDefault("grid.convention", signal.ConventionAngular.String())

	v.SetDefault("signal.amplitude", st.Signal.Amplitude)
	v.SetDefault("signal.frequency", st.Signal.Frequency)
	v.SetDefault("signal.phase", st.Signal.Phase)

	v.SetDefault("noise.mean", st.Noise.Mean)
	v.SetDefault("noise.variance", st.Noise.Variance)

	v.SetDefault("toggles.noise", st.Selection.NoiseEnabled)
	v.SetDefault("toggles.filter", st.Selection.FilterEnabled)
	v.SetDefault("toggles.custom", st.Selection.UseCustomFilter)

	v.SetDefault("tuning.window", st.Tuning.Window)
	v.SetDefault("tuning.order", st.Tuning.Order)
	v.SetDefault("tuning.cutoff_mult", st.Tuning.CutoffMult)
	v.SetDefault("tuning.sample_rate_mult", st.Tuning.SampleRateMult)
	v.SetDefault("tuning.cutoff_hz", st.Tuning.CutoffHz)
	v.SetDefault("tuning.placeholder", "nan")

	v.SetDefault("spectrum.window", window.TypeHann.String())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("seed", noise.DefaultSeed)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Grid.Convention = strings.ToLower(strings.TrimSpace(c.Grid.Convention))
	c.Tuning.Placeholder = strings.ToLower(strings.TrimSpace(c.Tuning.Placeholder))
	c.Spectrum.Window = strings.ToLower(strings.TrimSpace(c.Spectrum.Window))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// State returns the explorer inputs described by the file.
func (c *Config) State() explorer.State {
	return explorer.State{
		Signal: explorer.SignalParams{
			Amplitude: c.Signal.Amplitude,
			Frequency: c.Signal.Frequency,
			Phase:     c.Signal.Phase,
		},
		Noise: explorer.NoiseParams{
			Mean:     c.Noise.Mean,
			Variance: c.Noise.Variance,
		},
		Selection: bank.Selection{
			NoiseEnabled:    c.Toggles.Noise,
			FilterEnabled:   c.Toggles.Filter,
			UseCustomFilter: c.Toggles.Custom,
		},
		Tuning: explorer.FilterTuning{
			Window:         c.Tuning.Window,
			Order:          c.Tuning.Order,
			CutoffMult:     c.Tuning.CutoffMult,
			SampleRateMult: c.Tuning.SampleRateMult,
			CutoffHz:       c.Tuning.CutoffHz,
		},
	}
}

// SampleGrid builds the grid described by the file.
func (c *Config) SampleGrid() (core.Grid, error) {
	return core.Linspace(c.Grid.Start, c.Grid.Stop, c.Grid.Points)
}

// ControllerOptions returns the explorer options implied by the file.
func (c *Config) ControllerOptions() ([]explorer.Option, error) {
	conv, err := signal.ParseConvention(c.Grid.Convention)
	if err != nil {
		return nil, err
	}
	win, err := window.ParseType(c.Spectrum.Window)
	if err != nil {
		return nil, err
	}

	placeholder := math.NaN()
	if c.Tuning.Placeholder == "zero" {
		placeholder = 0
	}

	return []explorer.Option{
		explorer.WithSeed(c.Seed),
		explorer.WithConvention(conv),
		explorer.WithPlaceholder(placeholder),
		explorer.WithSpectrumWindow(win),
	}, nil
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
