package visualization

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/spikenav/spikenav/internal/store"
)

// reportTemplate renders the training curves as a standalone HTML page
// with inline SVG, no external assets.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>spikenav training report — run {{.RunID}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #222; }
  h1 { font-size: 1.3em; }
  .meta { color: #666; font-size: 0.9em; margin-bottom: 1.5em; }
  .chart { margin-bottom: 2em; }
  .chart h2 { font-size: 1.0em; }
  svg { border: 1px solid #ddd; background: #fafafa; }
</style>
</head>
<body>
<h1>spikenav training report</h1>
<div class="meta">run {{.RunID}} &middot; seed {{.Seed}} &middot; {{.Epochs}} epochs &middot; {{.Samples}} samples</div>

<div class="chart">
<h2>Average reward per epoch</h2>
<svg width="640" height="240" viewBox="0 0 640 240">
  <polyline fill="none" stroke="steelblue" stroke-width="2" points="{{.RewardPoints}}"/>
</svg>
</div>

<div class="chart">
<h2>Held-out accuracy per epoch</h2>
<svg width="640" height="240" viewBox="0 0 640 240">
  <polyline fill="none" stroke="tomato" stroke-width="2" points="{{.AccuracyPoints}}"/>
</svg>
</div>
</body>
</html>
`

type reportData struct {
	RunID          int64
	Seed           int64
	Epochs         int
	Samples        int
	RewardPoints   string
	AccuracyPoints string
}

// WriteReport renders the HTML training report for run with its metric
// series to w.
func WriteReport(w io.Writer, run store.Run, metrics []store.EpochMetric) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	rewards := make([]float64, len(metrics))
	accuracies := make([]float64, len(metrics))
	for i, m := range metrics {
		rewards[i] = m.AvgReward
		accuracies[i] = m.Accuracy
	}

	data := reportData{
		RunID:          run.ID,
		Seed:           run.Seed,
		Epochs:         run.Epochs,
		Samples:        run.Samples,
		RewardPoints:   polylinePoints(rewards, 640, 240),
		AccuracyPoints: polylinePoints(accuracies, 640, 240),
	}
	return tmpl.Execute(w, data)
}

// polylinePoints maps a [0,1] series onto SVG coordinates with a small
// margin. A single point renders as a flat two-point line.
func polylinePoints(series []float64, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	if len(series) == 1 {
		series = []float64{series[0], series[0]}
	}

	const margin = 10.0
	w := float64(width) - 2*margin
	h := float64(height) - 2*margin

	var b strings.Builder
	for i, v := range series {
		x := margin + w*float64(i)/float64(len(series)-1)
		y := margin + h*(1-clampUnit(v))
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
