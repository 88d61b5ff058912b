package rarefaction

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotRetention renders the samples-retained curve over the candidate depths.
func PlotRetention(path, name string, thresholds, retained []int) {
	var (
		line   = charts.NewLine()
		output = osUtil.Create(path)
	)
	defer simpleUtil.DeferClose(output)
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Samples retained by rarefaction depth",
			Subtitle: name,
		}))

	line.SetXAxis(thresholds).
		AddSeries("retained", generateLineItems(retained))
	simpleUtil.CheckErr(line.Render(output))
}

func generateLineItems(vs []int) []opts.LineData {
	var items = make([]opts.LineData, 0)
	for _, v := range vs {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

// PlotDepthHist saves a PNG histogram of per sample read depths.
func PlotDepthHist(path, name string, freqs []float64) {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "reads per sample"
	p.Y.Label.Text = "samples"

	h, err := plotter.NewHist(plotter.Values(freqs), 20)
	if err != nil {
		panic(err)
	}
	p.Add(h)

	if err := p.Save(16*vg.Inch, 9*vg.Inch, path); err != nil {
		panic(err)
	}
}
