package rarefaction

import (
	"os"
	"sort"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/montanaflynn/stats"
)

// Percentiles reported for the depth decision.
var Percentiles = []float64{10, 25, 50, 75, 90, 95, 99}

// DefaultThresholds are the candidate rarefaction depths.
var DefaultThresholds = []int{1000, 5000, 10000, 15000, 20000, 25000, 30000, 40000, 50000}

// Retention counts the samples whose depth reaches each threshold.
func Retention(freqs []float64, thresholds []int) []int {
	var retained = make([]int, len(thresholds))
	for i, threshold := range thresholds {
		for _, f := range freqs {
			if f >= float64(threshold) {
				retained[i]++
			}
		}
	}
	return retained
}

// Percentile interpolates like stats.Percentile, falling back to the nearest
// rank when the requested percent lands below the first interpolation step,
// as low percentiles of small datasets do.
func Percentile(freqs []float64, p float64) float64 {
	v, err := stats.Percentile(freqs, p)
	if err != nil {
		v = simpleUtil.HandleError(stats.PercentileNearestRank(freqs, p))
	}
	return v
}

// Report prints the rarefaction depth analysis of one dataset: descriptive
// statistics, percentiles, suggested depths and sample retention per
// candidate threshold.
func Report(out *os.File, name string, freqs []float64, thresholds []int) {
	fmtUtil.Fprintf(out, "\n=== %s RAREFACTION ANALYSIS ===\n", name)
	fmtUtil.Fprintf(out, "Total samples: %d\n", len(freqs))
	if len(freqs) == 0 {
		return
	}

	fmtUtil.Fprintf(out, "Min reads per sample: %.0f\n", simpleUtil.HandleError(stats.Min(freqs)))
	fmtUtil.Fprintf(out, "Max reads per sample: %.0f\n", simpleUtil.HandleError(stats.Max(freqs)))
	fmtUtil.Fprintf(out, "Mean reads per sample: %.0f\n", simpleUtil.HandleError(stats.Mean(freqs)))
	fmtUtil.Fprintf(out, "Median reads per sample: %.0f\n", simpleUtil.HandleError(stats.Median(freqs)))

	fmtUtil.Fprintf(out, "\nPercentiles:\n")
	for _, p := range Percentiles {
		fmtUtil.Fprintf(out, "  %.0fth percentile: %.0f\n", p, Percentile(freqs, p))
	}

	fmtUtil.Fprintf(out, "\nSuggested rarefaction depths:\n")
	fmtUtil.Fprintf(out, "  Conservative (retain 90%% samples): %.0f\n", Percentile(freqs, 10))
	fmtUtil.Fprintf(out, "  Moderate (retain 75%% samples): %.0f\n", Percentile(freqs, 25))
	fmtUtil.Fprintf(out, "  Aggressive (retain 50%% samples): %.0f\n", Percentile(freqs, 50))

	fmtUtil.Fprintf(out, "\nSamples retained at different thresholds:\n")
	var retained = Retention(freqs, thresholds)
	for i, threshold := range thresholds {
		var percent = float64(retained[i]) / float64(len(freqs)) * 100
		fmtUtil.Fprintf(out, "  %d reads: %d samples (%.1f%%)\n", threshold, retained[i], percent)
	}
}

// WriteDepthHistogram bins sample depths by width and writes the sorted
// histogram to path with title [depth samples].
func WriteDepthHistogram(path string, freqs []float64, width int) {
	var hist = make(map[int]int)
	for _, f := range freqs {
		hist[int(f)/width*width]++
	}

	out := osUtil.Create(path)
	fmtUtil.Fprintln(out, "depth\tsamples")
	var bins []int
	for k := range hist {
		bins = append(bins, k)
	}
	sort.Ints(bins)
	for _, k := range bins {
		fmtUtil.Fprintf(out, "%d\t%d\n", k, hist[k])
	}
	simpleUtil.CheckErr(out.Close())
}
