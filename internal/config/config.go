// Package config loads templatesense settings from defaults, a config file,
// a .env file and TEMPLATE_SENSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/pkg/templatesense"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/mapping"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/payload"
)

// EnvPrefix prefixes every environment override, e.g. TEMPLATE_SENSE_HEADER_MIN_SCORE.
const EnvPrefix = "TEMPLATE_SENSE"

// Config holds every tunable setting.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`

	HeaderMinScore      float64 `mapstructure:"header_min_score" yaml:"header_min_score" json:"header_min_score"`
	HeaderMaxGap        int     `mapstructure:"header_max_gap" yaml:"header_max_gap" json:"header_max_gap"`
	TableMinScore       float64 `mapstructure:"table_min_score" yaml:"table_min_score" json:"table_min_score"`
	TableMinConsecutive int     `mapstructure:"table_min_consecutive" yaml:"table_min_consecutive" json:"table_min_consecutive"`
	TableHeaderMinScore float64 `mapstructure:"table_header_min_score" yaml:"table_header_min_score" json:"table_header_min_score"`

	MaxSampleRows        int     `mapstructure:"max_sample_rows" yaml:"max_sample_rows" json:"max_sample_rows"`
	AutoMappingThreshold float64 `mapstructure:"auto_mapping_threshold" yaml:"auto_mapping_threshold" json:"auto_mapping_threshold"`
	Workers              int     `mapstructure:"workers" yaml:"workers" json:"workers"`

	// Dictionary is the default field dictionary path.
	Dictionary string `mapstructure:"dictionary" yaml:"dictionary" json:"dictionary"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	h := detect.DefaultHeaderParams()
	t := detect.DefaultTableParams()
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		HeaderMinScore:       h.MinScore,
		HeaderMaxGap:         h.MaxGap,
		TableMinScore:        t.MinScore,
		TableMinConsecutive:  t.MinConsecutive,
		TableHeaderMinScore:  t.HeaderMinScore,
		MaxSampleRows:        payload.DefaultMaxSampleRows,
		AutoMappingThreshold: mapping.DefaultThreshold,
		Workers:              0,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("header_min_score", d.HeaderMinScore)
	v.SetDefault("header_max_gap", d.HeaderMaxGap)
	v.SetDefault("table_min_score", d.TableMinScore)
	v.SetDefault("table_min_consecutive", d.TableMinConsecutive)
	v.SetDefault("table_header_min_score", d.TableHeaderMinScore)
	v.SetDefault("max_sample_rows", d.MaxSampleRows)
	v.SetDefault("auto_mapping_threshold", d.AutoMappingThreshold)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("dictionary", d.Dictionary)
}

// Load builds a Config. cfgFile, when set, must exist; otherwise
// templatesense.yaml is looked up in . and $HOME/.templatesense. A .env file
// in the working directory is loaded first and never overrides variables
// already set.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("templatesense")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.templatesense")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		logger.For("config").Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects out-of-range settings.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format: must be text or json, got %q", c.LogFormat)
	}
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.MaxSampleRows < 1 {
		return &detect.ValidationError{Param: "max_sample_rows", Value: c.MaxSampleRows, Reason: ">= 1"}
	}
	if math.IsNaN(c.AutoMappingThreshold) || c.AutoMappingThreshold < 0 || c.AutoMappingThreshold > 100 {
		return &detect.ValidationError{Param: "auto_mapping_threshold", Value: c.AutoMappingThreshold, Reason: "in range 0-100"}
	}
	return nil
}

// Options converts the detection settings to summarization options.
func (c *Config) Options() templatesense.Options {
	return templatesense.Options{
		Header: detect.HeaderParams{
			MinScore: c.HeaderMinScore,
			MaxGap:   c.HeaderMaxGap,
		},
		Table: detect.TableParams{
			MinScore:       c.TableMinScore,
			MinConsecutive: c.TableMinConsecutive,
			HeaderMinScore: c.TableHeaderMinScore,
		},
		Workers: c.Workers,
	}
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# templatesense configuration
# Every key can be overridden with a TEMPLATE_SENSE_<KEY> environment variable,
# e.g. TEMPLATE_SENSE_TABLE_MIN_SCORE=0.6

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
