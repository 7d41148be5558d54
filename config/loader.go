package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/reviewprep/discover"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the loader reads,
// e.g. REVIEWPREP_BASE_DIR or REVIEWPREP_LOG_LEVEL.
const EnvPrefix = "REVIEWPREP_"

// LoadOptions selects the sources merged on top of the defaults.
// Later sources win: file, then environment, then Overrides.
type LoadOptions struct {
	Fs        afero.Fs
	File      string          // optional YAML file
	Environ   func() []string // defaults to os.Environ
	Overrides map[string]any  // dotted keys, typically from CLI flags
}

// Load builds and validates a Config.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if opts.File != "" {
		data, err := loadFile(opts.Fs, opts.File)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", opts.File, err)
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
		EnvironFunc:   environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks struct tags and the region identifiers.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	for _, region := range cfg.Regions {
		if err := discover.ValidateRegion(region); err != nil {
			return err
		}
	}
	if strings.ContainsAny(cfg.FilePrefix+cfg.FileSuffix, `/\`) {
		return fmt.Errorf("file_prefix and file_suffix must not contain path separators")
	}
	return nil
}

func loadFile(fs afero.Fs, path string) (map[string]any, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return data, nil
}

// transformEnvKey maps REVIEWPREP_BASE_DIR to base_dir and
// REVIEWPREP_LOG_LEVEL to log.level.
func transformEnvKey(key, value string) (string, any) {
	k := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(k, "log_"); ok {
		k = "log." + rest
	}
	return k, value
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
