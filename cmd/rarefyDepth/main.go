package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"MicrobiomePrep/pkg/rarefaction"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/stringsUtil"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"feature table summaries (.qzv/.zip or .csv[.gz]), comma separated",
	)
	thresholds = flag.String(
		"t",
		"",
		"candidate depths, comma separated, default 1000..50000",
	)
	binWidth = flag.Int(
		"bin",
		5000,
		"depth histogram bin width",
	)
	plot = flag.Bool(
		"plot",
		false,
		"write retention curve html, depth histogram png and txt per input",
	)
)

// regexp
var (
	isZip = regexp.MustCompile(`\.(qzv|zip)$`)
)

func main() {
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i required!")
	}

	var depths = rarefaction.DefaultThresholds
	if *thresholds != "" {
		depths = nil
		for _, s := range strings.Split(*thresholds, ",") {
			depths = append(depths, stringsUtil.Atoi(s))
		}
	}

	for _, path := range strings.Split(*input, ",") {
		if !osUtil.FileExists(path) {
			slog.Error("summary file not found", "path", path)
			continue
		}

		var (
			name  = DatasetName(path)
			freqs []float64
			err   error
		)
		if isZip.MatchString(path) {
			freqs, err = rarefaction.LoadQZV(path)
		} else {
			freqs, err = rarefaction.LoadCSV(path)
		}
		if err != nil {
			slog.Error("load summary", "path", path, "err", err)
			continue
		}

		rarefaction.Report(os.Stdout, name, freqs, depths)

		if *plot {
			rarefaction.PlotRetention(name+".retention.html", name, depths, rarefaction.Retention(freqs, depths))
			rarefaction.PlotDepthHist(name+".depth.png", name, freqs)
			rarefaction.WriteDepthHistogram(name+".depth.txt", freqs, *binWidth)
		}
	}
}

// DatasetName strips the directory and extension from a summary path, the
// .gz layer first for compressed tables.
func DatasetName(path string) string {
	var base = strings.TrimSuffix(filepath.Base(path), ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
