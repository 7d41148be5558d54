// Package config defines the reviewprep configuration and its defaults.
package config

import (
	"github.com/gaurav-prasanna/reviewprep/core/normalize"
	"github.com/gaurav-prasanna/reviewprep/discover"
)

// DefaultBaseDir is where the review exports were originally kept.
const DefaultBaseDir = `N:\SQL\FoodPandaReviews\reviews`

// DefaultRegions are the provinces processed when none are given.
var DefaultRegions = []string{
	"bangkok", "buriram", "chachoengsao", "chai_nat", "chanthaburi",
	"chiang_mai", "chiang_rai", "chon_buri", "kamphaeng_phet",
	"kanchanaburi", "khon_kaen",
}

// Config is the complete run configuration.
type Config struct {
	Regions             []string  `koanf:"regions" validate:"required,min=1,dive,required"`
	Discover            bool      `koanf:"discover"`
	BaseDir             string    `koanf:"base_dir" validate:"required"`
	FilePrefix          string    `koanf:"file_prefix"`
	FileSuffix          string    `koanf:"file_suffix" validate:"required"`
	MaxReviewerIDLength int       `koanf:"max_reviewer_id_length" validate:"min=1"`
	StrictBool          bool      `koanf:"strict_bool"`
	AtomicWrite         bool      `koanf:"atomic_write"`
	DryRun              bool      `koanf:"dry_run"`
	FailOnError         bool      `koanf:"fail_on_error"`
	MetricsFile         string    `koanf:"metrics_file"`
	Log                 LogConfig `koanf:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Regions:             append([]string(nil), DefaultRegions...),
		BaseDir:             DefaultBaseDir,
		FilePrefix:          discover.DefaultPrefix,
		FileSuffix:          discover.DefaultSuffix,
		MaxReviewerIDLength: normalize.DefaultMaxReviewerLen,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Template returns the filename template for the configured layout.
func (c *Config) Template() discover.Template {
	return discover.Template{
		BaseDir: c.BaseDir,
		Prefix:  c.FilePrefix,
		Suffix:  c.FileSuffix,
	}
}

// NormalizerOptions returns the options for the review normalizer.
func (c *Config) NormalizerOptions() normalize.Options {
	return normalize.Options{
		MaxReviewerLen: c.MaxReviewerIDLength,
		StrictBool:     c.StrictBool,
	}
}
