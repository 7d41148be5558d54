package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv() []string { return nil }

func TestLoad(t *testing.T) {
	t.Run("Should return the defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load(LoadOptions{Environ: noEnv})
		require.NoError(t, err)

		assert.Equal(t, DefaultRegions, cfg.Regions)
		assert.Equal(t, DefaultBaseDir, cfg.BaseDir)
		assert.Equal(t, "th_", cfg.FilePrefix)
		assert.Equal(t, "_reviews.csv", cfg.FileSuffix)
		assert.Equal(t, 8, cfg.MaxReviewerIDLength)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.StrictBool)
		assert.False(t, cfg.AtomicWrite)
	})

	t.Run("Should merge a YAML file over the defaults", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/etc/reviewprep.yaml", []byte(`
base_dir: /data/reviews
regions: [bangkok, khon_kaen]
strict_bool: true
log:
  level: debug
`), 0644))

		cfg, err := Load(LoadOptions{Fs: fs, File: "/etc/reviewprep.yaml", Environ: noEnv})
		require.NoError(t, err)
		assert.Equal(t, "/data/reviews", cfg.BaseDir)
		assert.Equal(t, []string{"bangkok", "khon_kaen"}, cfg.Regions)
		assert.True(t, cfg.StrictBool)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "_reviews.csv", cfg.FileSuffix)
	})

	t.Run("Should read prefixed environment variables", func(t *testing.T) {
		cfg, err := Load(LoadOptions{Environ: func() []string {
			return []string{
				"REVIEWPREP_BASE_DIR=/env/reviews",
				"REVIEWPREP_REGIONS=chiang_mai,chiang_rai",
				"REVIEWPREP_LOG_LEVEL=warn",
				"REVIEWPREP_ATOMIC_WRITE=true",
				"BASE_DIR=/ignored",
			}
		}})
		require.NoError(t, err)
		assert.Equal(t, "/env/reviews", cfg.BaseDir)
		assert.Equal(t, []string{"chiang_mai", "chiang_rai"}, cfg.Regions)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.True(t, cfg.AtomicWrite)
	})

	t.Run("Should let overrides win over the environment", func(t *testing.T) {
		cfg, err := Load(LoadOptions{
			Environ:   func() []string { return []string{"REVIEWPREP_BASE_DIR=/env"} },
			Overrides: map[string]any{"base_dir": "/flag", "dry_run": true},
		})
		require.NoError(t, err)
		assert.Equal(t, "/flag", cfg.BaseDir)
		assert.True(t, cfg.DryRun)
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		for name, overrides := range map[string]map[string]any{
			"unknown log level":   {"log.level": "loud"},
			"escaping region":     {"regions": []string{"../etc"}},
			"empty region list":   {"regions": []string{}},
			"zero reviewer limit": {"max_reviewer_id_length": 0},
			"separator in suffix": {"file_suffix": "/x.csv"},
		} {
			_, err := Load(LoadOptions{Environ: noEnv, Overrides: overrides})
			assert.Error(t, err, name)
		}
	})

	t.Run("Should fail on a missing config file", func(t *testing.T) {
		_, err := Load(LoadOptions{Fs: afero.NewMemMapFs(), File: "/nope.yaml", Environ: noEnv})
		assert.ErrorContains(t, err, "reading config file")
	})
}

func TestConfig_Template(t *testing.T) {
	t.Run("Should expose the filename template and normalizer options", func(t *testing.T) {
		cfg := Default()
		cfg.BaseDir = "/r"
		cfg.StrictBool = true

		assert.Equal(t, "th_bangkok_reviews.csv", cfg.Template().Filename("bangkok"))
		assert.Equal(t, "/r", cfg.Template().BaseDir)
		assert.True(t, cfg.NormalizerOptions().StrictBool)
		assert.Equal(t, 8, cfg.NormalizerOptions().MaxReviewerLen)
	})
}
