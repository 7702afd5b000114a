package trainer

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// RenderCurve writes a smoothed reward-over-time line chart to path. The
// moving-average window grows with the trace length so long runs stay
// readable.
func RenderCurve(path string, rewards []float64) error {
	window := len(rewards) / 100
	if window < 1 {
		window = 1
	}
	smoothed := smooth(rewards, window)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Smoothed reward per episode",
			Subtitle: fmt.Sprintf("moving average, window %d", window),
		}),
	)

	xs := make([]string, len(smoothed))
	items := make([]opts.LineData, len(smoothed))
	for i, v := range smoothed {
		xs[i] = strconv.Itoa(i)
		items[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(xs)
	line.AddSeries("reward", items)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create curve file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render curve: %w", err)
	}
	return nil
}

// smooth returns the moving average of xs over the given window, matching
// numpy's "valid" convolution length.
func smooth(xs []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	if window > len(xs) {
		window = len(xs)
	}
	out := make([]float64, 0, len(xs)-window+1)
	for i := 0; i+window <= len(xs); i++ {
		out = append(out, stat.Mean(xs[i:i+window], nil))
	}
	return out
}
