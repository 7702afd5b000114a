package trainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmooth(t *testing.T) {
	got := smooth([]float64{1, 2, 3, 4}, 2)
	require.Equal(t, []float64{1.5, 2.5, 3.5}, got)

	// a window larger than the trace collapses to a single mean
	got = smooth([]float64{2, 4}, 5)
	require.Equal(t, []float64{3}, got)

	got = smooth([]float64{7}, 1)
	require.Equal(t, []float64{7}, got)
}

func TestRenderCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.html")
	rewards := make([]float64, 300)
	for i := range rewards {
		rewards[i] = float64(i % 50)
	}
	require.NoError(t, RenderCurve(path, rewards))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
