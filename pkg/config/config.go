package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/anrid/commune-stats/pkg/stats"
)

// Environment variables read by Load.
const (
	EnvDocument        = "COMMUNE_STATS_DOCUMENT"
	EnvConfig          = "COMMUNE_STATS_CONFIG"
	EnvHealthWeight    = "COMMUNE_STATS_HEALTH_WEIGHT"
	EnvEducationWeight = "COMMUNE_STATS_EDUCATION_WEIGHT"
	EnvHighThreshold   = "COMMUNE_STATS_HIGH_THRESHOLD"
	EnvMediumThreshold = "COMMUNE_STATS_MEDIUM_THRESHOLD"
)

const (
	DefaultDocument = "/tmp/commune-stats.json"
	DefaultConfig   = "commune-stats.yaml"
)

type Config struct {
	Document string        `yaml:"document"`
	Scoring  stats.Scoring `yaml:"scoring"`
}

func Default() *Config {
	return &Config{
		Document: DefaultDocument,
		Scoring:  stats.DefaultScoring(),
	}
}

// LoadEnv loads variables from the given .env files, if present.
// Variables already set in the environment win.
func LoadEnv(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Path returns the configuration file to use: COMMUNE_STATS_CONFIG when
// set, the default file name otherwise.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultConfig
}

// Load reads the YAML configuration at path. A missing file gives the
// defaults. Environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvDocument); v != "" {
		c.Document = v
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvHealthWeight, &c.Scoring.HealthWeight},
		{EnvEducationWeight, &c.Scoring.EducationWeight},
		{EnvHighThreshold, &c.Scoring.HighThreshold},
		{EnvMediumThreshold, &c.Scoring.MediumThreshold},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", f.env, v, err)
		}
		*f.dst = n
	}

	return nil
}
