package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables read by FromEnv.
const EnvPrefix = "LATTICE_"

// Load reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	c := DefaultConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config.Load: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	return c, c.Validate()
}

// FromEnv returns c with LATTICE_* environment overrides applied, e.g.
// LATTICE_QUALITY=400 or LATTICE_WORKERS=4.
func FromEnv(c Config) (Config, error) {
	floats := map[string]*float64{
		"QUALITY":             &c.Quality,
		"PATH_QUALITY":        &c.PathQuality,
		"EPS":                 &c.Eps,
		"CRANK_NICOLSON_STEP": &c.CrankNicolsonStep,
		"IMPLICIT_STEP":       &c.ImplicitStep,
	}
	ints := map[string]*int{
		"WARMUP_STEPS":   &c.WarmupSteps,
		"COOLDOWN_STEPS": &c.CooldownSteps,
		"WORKERS":        &c.Workers,
	}

	for key, dst := range floats {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return c, fmt.Errorf("config.FromEnv: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = v
	}
	for key, dst := range ints {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		v, err := cast.ToIntE(raw)
		if err != nil {
			return c, fmt.Errorf("config.FromEnv: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = v
	}
	return c, c.Validate()
}

func lookup(key string) (string, bool) {
	raw, ok := os.LookupEnv(EnvPrefix + key)
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}
