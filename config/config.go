// Package config holds the tunables of the lattice engine.
package config

import "fmt"

// Config holds grid, scheme and extension parameters.
type Config struct {
	// Quality is the grid quality. The node spacing of a diffusion grid is
	// 1/Quality and the grid covers 3+ln(1+Quality) standard deviations.
	Quality float64 `yaml:"quality"`

	// PathQuality drives the node count of the approximation schemes that
	// carry auxiliary path-dependent states.
	PathQuality float64 `yaml:"path_quality"`

	// Eps is the variance used for a rollback between two event times with
	// no accumulated variance, and the padding added to grid intervals.
	Eps float64 `yaml:"eps"`

	// WarmupSteps is the number of uniform explicit steps the improved
	// scheme runs first to smooth discontinuities.
	WarmupSteps int `yaml:"warmup_steps"`

	// CooldownSteps is the number of fully implicit steps the improved
	// scheme runs last.
	CooldownSteps int `yaml:"cooldown_steps"`

	// CrankNicolsonStep scales the variance of one Crank-Nicolson step:
	// step variance = CrankNicolsonStep * h.
	CrankNicolsonStep float64 `yaml:"crank_nicolson_step"`

	// ImplicitStep scales the variance of one implicit step:
	// step variance = ImplicitStep * h^2.
	ImplicitStep float64 `yaml:"implicit_step"`

	// Workers bounds the goroutines used by an extension rollback.
	// 1 keeps everything on the calling goroutine.
	Workers int `yaml:"workers"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	Quality:           200,
	PathQuality:       200,
	Eps:               1e-7,
	WarmupSteps:       30,
	CooldownSteps:     10,
	CrankNicolsonStep: 0.1,
	ImplicitStep:      10,
	Workers:           1,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Quality <= 0:
		return fmt.Errorf("config: quality must be positive, got %v", c.Quality)
	case c.PathQuality <= 0:
		return fmt.Errorf("config: path_quality must be positive, got %v", c.PathQuality)
	case c.Eps <= 0:
		return fmt.Errorf("config: eps must be positive, got %v", c.Eps)
	case c.WarmupSteps < 1 || c.CooldownSteps < 1:
		return fmt.Errorf("config: warmup_steps and cooldown_steps must be at least 1")
	case c.CrankNicolsonStep <= 0 || c.ImplicitStep <= 0:
		return fmt.Errorf("config: step scales must be positive")
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
