package internal

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tuannm99/memsim/internal/mmu"
	"github.com/tuannm99/memsim/internal/tracefile"
)

var ErrInvalidConfig = errors.New("config: invalid")

const (
	TraceQuiet = "quiet"
	TraceDebug = "debug"
)

type MemSimConfig struct {
	AppName string `mapstructure:"app_name"`

	Simulation struct {
		Policy   string `mapstructure:"policy"`
		Frames   int    `mapstructure:"frames"`
		PageSize int    `mapstructure:"page_size"`
		Seed     uint64 `mapstructure:"seed"`
		Trace    string `mapstructure:"trace"`
	} `mapstructure:"simulation"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "memsim")
	v.SetDefault("simulation.policy", string(mmu.PolicyClock))
	v.SetDefault("simulation.frames", 64)
	v.SetDefault("simulation.page_size", tracefile.DefaultPageSize)
	v.SetDefault("simulation.seed", mmu.DefaultSeed)
	v.SetDefault("simulation.trace", TraceQuiet)
	v.SetDefault("log.level", "info")
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *MemSimConfig {
	v := viper.New()
	setDefaults(v)

	var cfg MemSimConfig
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (*MemSimConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg MemSimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the simulation settings.
func (c *MemSimConfig) Validate() error {
	if _, err := mmu.ParsePolicy(c.Simulation.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Simulation.Frames < 1 {
		return fmt.Errorf("%w: frames must be at least 1, got %d", ErrInvalidConfig, c.Simulation.Frames)
	}
	if ps := c.Simulation.PageSize; ps <= 0 || ps&(ps-1) != 0 {
		return fmt.Errorf("%w: page_size must be a power of two, got %d", ErrInvalidConfig, ps)
	}
	switch c.Simulation.Trace {
	case TraceQuiet, TraceDebug:
	default:
		return fmt.Errorf("%w: trace must be %q or %q, got %q", ErrInvalidConfig, TraceQuiet, TraceDebug, c.Simulation.Trace)
	}
	return nil
}

// Policy returns the parsed policy. Call Validate first.
func (c *MemSimConfig) Policy() mmu.Policy {
	p, _ := mmu.ParsePolicy(c.Simulation.Policy)
	return p
}
