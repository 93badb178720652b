// Package config loads the application configuration from file and
// environment and initialises the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is built once per
// process from declared defaults plus overrides and treated as immutable.
type Config struct {
	Run    RunConfig    `yaml:"run" mapstructure:"run"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// RunConfig configures a single impact run.
type RunConfig struct {
	Mode            string    `yaml:"mode" mapstructure:"mode"`
	IDField         string    `yaml:"id_field" mapstructure:"id_field"`
	PopulationField string    `yaml:"population_field" mapstructure:"population_field"`
	HazardField     string    `yaml:"hazard_field" mapstructure:"hazard_field"`
	AreaField       string    `yaml:"area_field" mapstructure:"area_field"`
	Threshold       float64   `yaml:"threshold" mapstructure:"threshold"`
	Thresholds      []float64 `yaml:"thresholds" mapstructure:"thresholds"`
	Interpolation   string    `yaml:"interpolation" mapstructure:"interpolation"`
	MapTitle        string    `yaml:"map_title" mapstructure:"map_title"`
}

// BatchConfig configures parallel batch processing of hazard events.
type BatchConfig struct {
	MaxConcurrentEvents int `yaml:"max_concurrent_events" mapstructure:"max_concurrent_events"`
}

// ExportConfig configures report output.
type ExportConfig struct {
	XLSX bool `yaml:"xlsx" mapstructure:"xlsx"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("IMPACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("run.mode", "categorised")
	v.SetDefault("run.id_field", "id")
	v.SetDefault("run.population_field", "pop")
	v.SetDefault("run.hazard_field", "haz_level")
	v.SetDefault("run.area_field", "area")
	v.SetDefault("run.threshold", 1.0)
	v.SetDefault("run.thresholds", []float64{0.2, 1.0, 1.5, 2.0})
	v.SetDefault("run.interpolation", "nearest")
	v.SetDefault("run.map_title", "Impacted people by category")
	v.SetDefault("batch.max_concurrent_events", 4)
	v.SetDefault("export.xlsx", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
