package rarefaction

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseFrequencyCSV(t *testing.T) {
	var r = strings.NewReader("sample-id,frequency\nsampleA,100\nsampleB,250.0\nsampleC,50\n")
	freqs, err := ParseFrequencyCSV(r)
	if err != nil {
		t.Fatalf("ParseFrequencyCSV returned error: %v", err)
	}
	var expected = []float64{100, 250, 50}
	if !reflect.DeepEqual(freqs, expected) {
		t.Errorf("ParseFrequencyCSV = %v; want %v", freqs, expected)
	}
}

func TestParseFrequencyCSVLastColumn(t *testing.T) {
	// no column named frequency, the last one is used
	var r = strings.NewReader("id,reads\na,10\nb,20\n")
	freqs, err := ParseFrequencyCSV(r)
	if err != nil {
		t.Fatalf("ParseFrequencyCSV returned error: %v", err)
	}
	var expected = []float64{10, 20}
	if !reflect.DeepEqual(freqs, expected) {
		t.Errorf("ParseFrequencyCSV = %v; want %v", freqs, expected)
	}
}

func writeQZV(t *testing.T, dir, member, content string) string {
	t.Helper()
	var path = filepath.Join(dir, "summary.qzv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	var zw = zip.NewWriter(f)
	w, err := zw.Create(member)
	if err != nil {
		t.Fatalf("Failed to create zip member: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write zip member: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

func TestLoadQZV(t *testing.T) {
	var path = writeQZV(
		t,
		t.TempDir(),
		"0a1b2c3d/data/sample-frequency-detail.csv",
		"sample-id,frequency\nsampleA,12000\nsampleB,3000.0\n",
	)

	freqs, err := LoadQZV(path)
	if err != nil {
		t.Fatalf("LoadQZV returned error: %v", err)
	}
	var expected = []float64{12000, 3000}
	if !reflect.DeepEqual(freqs, expected) {
		t.Errorf("LoadQZV = %v; want %v", freqs, expected)
	}
}

func TestLoadQZVNoMember(t *testing.T) {
	var path = writeQZV(t, t.TempDir(), "0a1b2c3d/data/index.html", "<html></html>")
	if _, err := LoadQZV(path); err == nil {
		t.Error("Expected an error, but got nil")
	}
}

func TestRetention(t *testing.T) {
	var freqs = []float64{100, 250, 50}
	var got = Retention(freqs, []int{50, 100, 200, 300})
	var expected = []int{3, 2, 1, 0}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Retention = %v; want %v", got, expected)
	}
}

func TestPercentile(t *testing.T) {
	// low percentiles of small datasets fall outside the interpolation
	// range and use the nearest rank instead
	var freqs = []float64{100, 250, 50}
	if got := Percentile(freqs, 10); got != 50 {
		t.Errorf("Percentile(10) = %v; want 50", got)
	}
	if got := Percentile(freqs, 50); got != 75 {
		t.Errorf("Percentile(50) = %v; want 75", got)
	}
	if got := Percentile([]float64{10, 20}, 10); got != 10 {
		t.Errorf("Percentile(10) = %v; want 10", got)
	}
}

func TestReport(t *testing.T) {
	tempFile, err := os.CreateTemp("", "report.txt")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	Report(tempFile, "16S", []float64{100, 250, 50}, []int{100, 300})
	if err := tempFile.Close(); err != nil {
		t.Fatalf("Failed to close temporary file: %v", err)
	}

	content, err := os.ReadFile(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to read temporary file: %v", err)
	}
	var report = string(content)

	for _, expected := range []string{
		"=== 16S RAREFACTION ANALYSIS ===",
		"Total samples: 3",
		"Min reads per sample: 50",
		"Max reads per sample: 250",
		"Mean reads per sample: 133",
		"Median reads per sample: 100",
		"  10th percentile: 50",
		"  50th percentile: 75",
		"Suggested rarefaction depths:",
		"  Conservative (retain 90% samples): 50",
		"  100 reads: 2 samples (66.7%)",
		"  300 reads: 0 samples (0.0%)",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("Report output missing %q.\nActual: %s", expected, report)
		}
	}
}

func TestReportSingleSample(t *testing.T) {
	tempFile, err := os.CreateTemp("", "report.txt")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	Report(tempFile, "ITS1", []float64{500}, []int{100, 1000})
	if err := tempFile.Close(); err != nil {
		t.Fatalf("Failed to close temporary file: %v", err)
	}

	content, err := os.ReadFile(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to read temporary file: %v", err)
	}
	var report = string(content)

	for _, expected := range []string{
		"Total samples: 1",
		"  99th percentile: 500",
		"  100 reads: 1 samples (100.0%)",
		"  1000 reads: 0 samples (0.0%)",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("Report output missing %q.\nActual: %s", expected, report)
		}
	}
}

func TestWriteDepthHistogram(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "depth.txt")
	WriteDepthHistogram(path, []float64{100, 2600, 5200}, 1000)

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read histogram: %v", err)
	}
	var expected = "depth\tsamples\n0\t1\n2000\t1\n5000\t1\n"
	if string(content) != expected {
		t.Errorf("Unexpected histogram.\nExpected: %q\nActual: %q", expected, string(content))
	}
}
