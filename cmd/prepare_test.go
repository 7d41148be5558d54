package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsCSV = "isAnonymous,likeCount,isLiked,reviewerId\n" +
	"False,3,True,abc12345\n" +
	"True,7,False,toolongid123\n"

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(fs)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func seed(t *testing.T, regions ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/reviews", 0755))
	for _, r := range regions {
		require.NoError(t, afero.WriteFile(fs, "/reviews/th_"+r+"_reviews.csv", []byte(reviewsCSV), 0644))
	}
	return fs
}

func TestPrepareCmd(t *testing.T) {
	t.Run("Should process explicit regions in input order, repeats included", func(t *testing.T) {
		fs := seed(t, "bangkok", "buriram")

		out, err := execute(t, fs, "prepare", "bangkok", "buriram", "bangkok", "--base_dir", "/reviews")
		require.NoError(t, err)
		assert.Equal(t, "Data preparation completed for bangkok.\n"+
			"Data preparation completed for buriram.\n"+
			"Data preparation completed for bangkok.\n"+
			"Data preparation is completed for all files.\n", out)

		data, err := afero.ReadFile(fs, "/reviews/th_bangkok_reviews.csv")
		require.NoError(t, err)
		assert.Equal(t, "isAnonymous,likeCount,isLiked,reviewerId\n0,3,1,abc12345\n", string(data))
	})

	t.Run("Should exit cleanly when regions fail by default", func(t *testing.T) {
		fs := seed(t, "bangkok")

		out, err := execute(t, fs, "prepare", "bangkok", "buriram", "--base_dir", "/reviews")
		require.NoError(t, err)
		assert.Contains(t, out, "An error occurred while processing buriram: ")
		assert.Contains(t, out, "Data preparation is completed for all files.\n")
	})

	t.Run("Should return an error for failures with --fail_on_error", func(t *testing.T) {
		fs := seed(t, "bangkok")

		_, err := execute(t, fs, "prepare", "bangkok", "buriram", "--base_dir", "/reviews", "--fail_on_error")
		assert.EqualError(t, err, "1/2 regions failed")
	})

	t.Run("Should discover regions from the base directory", func(t *testing.T) {
		fs := seed(t, "khon_kaen", "chai_nat")

		out, err := execute(t, fs, "prepare", "--discover", "--base_dir", "/reviews", "--atomic")
		require.NoError(t, err)
		assert.Equal(t, "Data preparation completed for chai_nat.\n"+
			"Data preparation completed for khon_kaen.\n"+
			"Data preparation is completed for all files.\n", out)
	})

	t.Run("Should refuse --discover together with explicit regions", func(t *testing.T) {
		_, err := execute(t, seed(t), "prepare", "bangkok", "--discover", "--base_dir", "/reviews")
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("Should leave files untouched with --dry_run", func(t *testing.T) {
		fs := seed(t, "bangkok")

		_, err := execute(t, fs, "prepare", "bangkok", "--base_dir", "/reviews", "--dry_run")
		require.NoError(t, err)
		data, err := afero.ReadFile(fs, "/reviews/th_bangkok_reviews.csv")
		require.NoError(t, err)
		assert.Equal(t, reviewsCSV, string(data))
	})

	t.Run("Should read regions and base directory from a config file", func(t *testing.T) {
		fs := seed(t, "chiang_mai")
		require.NoError(t, afero.WriteFile(fs, "/etc/reviewprep.yaml",
			[]byte("base_dir: /reviews\nregions: [chiang_mai]\n"), 0644))

		out, err := execute(t, fs, "prepare", "--config", "/etc/reviewprep.yaml", "--log_level", "error")
		require.NoError(t, err)
		assert.Equal(t, "Data preparation completed for chiang_mai.\n"+
			"Data preparation is completed for all files.\n", out)
	})

	t.Run("Should write metrics when asked to", func(t *testing.T) {
		fs := seed(t, "bangkok")
		metricsFile := filepath.Join(t.TempDir(), "reviewprep.prom")

		_, err := execute(t, fs, "prepare", "bangkok", "--base_dir", "/reviews", "--metrics_file", metricsFile)
		require.NoError(t, err)

		data, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `reviewprep_regions_total{outcome="success"} 1`)
	})

	t.Run("Should reject an invalid log level", func(t *testing.T) {
		_, err := execute(t, seed(t), "prepare", "--log_level", "loud")
		assert.ErrorContains(t, err, "configuration validation failed")
	})
}
