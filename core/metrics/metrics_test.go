package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Run("Should count regions and rows", func(t *testing.T) {
		r := New()
		r.RegionSucceeded(10, 7)
		r.RegionSucceeded(5, 5)
		r.RegionFailed("LoadError")

		assert.Equal(t, 2.0, testutil.ToFloat64(r.regions.WithLabelValues(OutcomeSuccess)))
		assert.Equal(t, 1.0, testutil.ToFloat64(r.regions.WithLabelValues(OutcomeFailure)))
		assert.Equal(t, 15.0, testutil.ToFloat64(r.rows.WithLabelValues("read")))
		assert.Equal(t, 12.0, testutil.ToFloat64(r.rows.WithLabelValues("written")))
		assert.Equal(t, 3.0, testutil.ToFloat64(r.rows.WithLabelValues("dropped")))
		assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("LoadError")))
	})

	t.Run("Should count only rows read for a dry run", func(t *testing.T) {
		r := New()
		r.RegionChecked(4)

		assert.Equal(t, 1.0, testutil.ToFloat64(r.regions.WithLabelValues(OutcomeSuccess)))
		assert.Equal(t, 4.0, testutil.ToFloat64(r.rows.WithLabelValues("read")))
		assert.Equal(t, 1, testutil.CollectAndCount(r.rows))
	})

	t.Run("Should stamp the batch end", func(t *testing.T) {
		r := New()
		started := time.Unix(1000, 0)
		r.BatchFinished(started, started.Add(1500*time.Millisecond))

		assert.Equal(t, 1001.0, testutil.ToFloat64(r.lastRun))
		assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	})

	t.Run("Should write the textfile format", func(t *testing.T) {
		r := New()
		r.RegionSucceeded(2, 1)
		path := filepath.Join(t.TempDir(), "reviewprep.prom")

		require.NoError(t, r.WriteTextfile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `reviewprep_regions_total{outcome="success"} 1`)
		assert.Contains(t, string(data), `reviewprep_rows_total{stage="dropped"} 1`)
	})

	t.Run("Should fail on an unwritable path", func(t *testing.T) {
		err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
		assert.ErrorContains(t, err, "writing metrics")
	})
}
