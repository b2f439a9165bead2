package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/yyyoichi/pointlearn"
)

func scatterData(points []pointlearn.Point, size int) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{
			Value:      []any{p.X, p.Y},
			Symbol:     "circle",
			SymbolSize: size,
		}
	}
	return data
}

func newScatter(title, subtitle string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", Type: "value", Scale: opts.Bool(true)}),
	)
	return scatter
}

// ClustersHTML writes a page with one scatter series per cluster and a
// series holding the centroids.
func ClustersHTML(w io.Writer, samples []pointlearn.Point, snap pointlearn.ClusterSnapshot) error {
	members, err := groups(samples, snap)
	if err != nil {
		return err
	}
	scatter := newScatter("Clusters", clusterTitle(snap))

	centers := make([]pointlearn.Point, len(snap.Centroids))
	for i, c := range snap.Centroids {
		centers[i] = c.Position
		scatter.AddSeries(fmt.Sprintf("cluster %d", c.Label), scatterData(members[i], 6))
	}
	scatter.AddSeries("centroids", scatterData(centers, 16),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000", Opacity: opts.Float(0.6)}))
	return scatter.Render(w)
}

// BoundaryHTML writes a page with both classes as scatter series and the
// decision line clipped to [-span, span] laid over them.
func BoundaryHTML(w io.Writer, samples []pointlearn.Sample, snap pointlearn.BoundarySnapshot, span float64) error {
	from, to, err := snap.Boundary.Segment(span)
	if err != nil {
		return err
	}
	scatter := newScatter("Perceptron", boundaryTitle(snap))
	scatter.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "X", Type: "value", Min: -span, Max: span}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", Type: "value", Min: -span, Max: span}),
	)

	a, b := byClass(samples)
	scatter.AddSeries("class A", scatterData(a, 8), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#dc0000"}))
	scatter.AddSeries("class B", scatterData(b, 8), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#0000dc"}))

	line := charts.NewLine()
	line.AddSeries(snap.Equation, []opts.LineData{
		{Value: []any{from.X, from.Y}},
		{Value: []any{to.X, to.Y}},
	}, charts.WithLineStyleOpts(opts.LineStyle{Color: "#000000", Width: 2}))
	scatter.Overlap(line)
	return scatter.Render(w)
}
