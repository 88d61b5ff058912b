package rarefaction

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	// "compress/gzip"
	gzip "github.com/klauspost/pgzip"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// FrequencyCSV is the member of a feature table summary visualization that
// carries the per sample read counts.
const FrequencyCSV = "sample-frequency-detail.csv"

// regexp
var (
	gz = regexp.MustCompile(`\.gz$`)
)

// LoadQZV extracts per sample read frequencies from a QIIME2 visualization
// artifact, a zip archive holding sample-frequency-detail.csv under the
// artifact data directory.
func LoadQZV(path string) ([]float64, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer simpleUtil.DeferClose(rc)

	for _, v := range rc.File {
		if !strings.HasSuffix(v.Name, FrequencyCSV) {
			continue
		}
		f, err := v.Open()
		if err != nil {
			return nil, err
		}
		defer simpleUtil.DeferClose(f)
		return ParseFrequencyCSV(f)
	}
	return nil, fmt.Errorf("no %s in %s", FrequencyCSV, path)
}

// LoadCSV reads a bare frequency table, gunzipped first when the name ends
// in .gz.
func LoadCSV(path string) ([]float64, error) {
	var file = osUtil.Open(path)
	defer simpleUtil.DeferClose(file)
	if gz.MatchString(path) {
		var gr = simpleUtil.HandleError(gzip.NewReader(file))
		defer simpleUtil.DeferClose(gr)
		return ParseFrequencyCSV(gr)
	}
	return ParseFrequencyCSV(file)
}

// ParseFrequencyCSV reads the frequency column, located by header name, the
// last column when no column is named frequency. Unparsable values are
// skipped with a warning.
func ParseFrequencyCSV(f io.Reader) ([]float64, error) {
	csvReader := csv.NewReader(f)
	entries, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty frequency table")
	}

	var col = len(entries[0]) - 1
	for i, name := range entries[0] {
		if name == "frequency" {
			col = i
			break
		}
	}

	var freqs []float64
	for i, row := range entries {
		if i == 0 {
			continue
		}
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			slog.Warn("skip frequency", "line", i+1, "value", row[col])
			continue
		}
		freqs = append(freqs, v)
	}
	return freqs, nil
}
