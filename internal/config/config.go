package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Ranker/internal/enrich"
	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
)

type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Database   DatabaseConfig    `yaml:"database"`
	Hermes     HermesConfig      `yaml:"hermes"`
	Simulation simulation.Params `yaml:"simulation"`
	Input      InputConfig       `yaml:"input"`
	Enrichment EnrichmentConfig  `yaml:"enrichment"`
	Logging    LoggingConfig     `yaml:"logging"`
	Retention  RetentionConfig   `yaml:"retention"`
}

type ServerConfig struct {
	Port           int    `yaml:"port"`
	MetricsPort    int    `yaml:"metrics_port"`
	AdminToken     string `yaml:"admin_token"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	// MaxReplicates caps the replicate count a single analysis may request.
	// Zero disables the cap.
	MaxReplicates  int    `yaml:"max_replicates"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type InputConfig struct {
	IDColumn string `yaml:"id_column"`
	Sheet    string `yaml:"sheet"`
}

type EnrichmentConfig struct {
	Profiles       []enrich.Profile       `yaml:"profiles"`
	DerivedMetrics []enrich.DerivedMetric `yaml:"derived_metrics"`
	Categories     map[string][]string    `yaml:"categories"`
}

// RetentionConfig controls the background sweep of old analyses. A zero
// MaxAgeHours keeps analyses forever.
type RetentionConfig struct {
	MaxAgeHours      int `yaml:"max_age_hours"`
	SweepIntervalSec int `yaml:"sweep_interval_sec"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) RetentionMaxAge() time.Duration {
	return time.Duration(c.Retention.MaxAgeHours) * time.Hour
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Retention.SweepIntervalSec) * time.Second
}

// Enricher builds the enricher described by the enrichment section.
func (c *Config) Enricher() *enrich.Enricher {
	return enrich.New(c.Enrichment.Profiles, c.Enrichment.DerivedMetrics, c.Enrichment.Categories)
}

// NewLogger builds the process logger from the logging section.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Logging.Level)}
	if strings.EqualFold(c.Logging.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           8700,
			MetricsPort:    8701,
			MaxUploadBytes: 10 << 20,
			MaxReplicates:  100000,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Simulation: simulation.DefaultParams(),
		Input: InputConfig{
			IDColumn: "Intervention",
			Sheet:    "Scoring",
		},
		Enrichment: EnrichmentConfig{
			Profiles:       enrich.DefaultProfiles(),
			DerivedMetrics: enrich.DefaultDerivedMetrics(),
			Categories:     enrich.DefaultCategories(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Retention: RetentionConfig{
			MaxAgeHours:      720,
			SweepIntervalSec: 3600,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	if err := cfg.Simulation.CheckReplicateLimit(cfg.Server.MaxReplicates); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RANKER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("RANKER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("RANKER_MAX_REPLICATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MaxReplicates = n
		}
	}
	if v := os.Getenv("RANKER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("RANKER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RANKER_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("RANKER_REPLICATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Replicates = n
		}
	}
	if v := os.Getenv("RANKER_SCORE_NOISE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.ScoreNoise = f
		}
	}
	if v := os.Getenv("RANKER_WEIGHT_PERTURBATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.WeightPerturbation = f
		}
	}
	if v := os.Getenv("RANKER_SCORE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.ScoreSeed = n
		}
	}
	if v := os.Getenv("RANKER_WEIGHT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.WeightSeed = n
		}
	}
	if v := os.Getenv("RANKER_ID_COLUMN"); v != "" {
		cfg.Input.IDColumn = v
	}
	if v := os.Getenv("RANKER_SHEET"); v != "" {
		cfg.Input.Sheet = v
	}
	if v := os.Getenv("RANKER_RETENTION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retention.MaxAgeHours = n
		}
	}
	if v := os.Getenv("RANKER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RANKER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
