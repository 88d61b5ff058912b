package tagmap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/goUtil/textUtil"
)

// Column positions in the sample mapping table:
// 0=sample-id, 1=sublibrary_id, 2=16s_forward_primer, 3=16s_forward_primer_tag,
// 4=16s_reverse_primer, 5=16s_reverse_primer_tag, 6=its1_forward_primer,
// 7=its1_forward_primer_tag, 8=its1_reverse_primer, 9=its1_reverse_primer_tag
const (
	ColSampleID     = 0
	ColSublibraryID = 1
)

// MinFields is the column count a data row must reach to be usable.
const MinFields = 10

// regexp
var (
	isXlsx = regexp.MustCompile(`\.xlsx$`)
)

// Assay maps one pair of tag columns onto a sample name suffix.
type Assay struct {
	Suffix     string
	ForwardCol int
	ReverseCol int
}

// DefaultAssays covers the paired 16S/ITS1 amplicon panel, in the order the
// records are written for every sample.
var DefaultAssays = []Assay{
	{Suffix: "_16S", ForwardCol: 3, ReverseCol: 5},
	{Suffix: "_ITS1", ForwardCol: 7, ReverseCol: 9},
}

// TagRecord is one demultiplexing entry of a sublibrary mapping file.
type TagRecord struct {
	ForwardTag string
	ReverseTag string
	SampleName string
}

func (r *TagRecord) String() string {
	return fmt.Sprintf("%s\t%s\t%s", r.ForwardTag, r.ReverseTag, r.SampleName)
}

// Config carries the transform options so no path is hard coded.
type Config struct {
	Input     string
	OutputDir string
	Assays    []Assay
	// Lenient skips the header column check
	Lenient bool
}

// Transform splits one sample mapping table into per-sublibrary tag mapping
// files for process_radtags.
type Transform struct {
	Config

	Header       []string
	Sublibraries map[string][]*TagRecord
	Stats        map[string]int

	rows [][]string
}

func NewTransform(cfg Config) *Transform {
	if len(cfg.Assays) == 0 {
		cfg.Assays = DefaultAssays
	}
	return &Transform{
		Config:       cfg,
		Sublibraries: make(map[string][]*TagRecord),
		Stats:        make(map[string]int),
	}
}

type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return "input file not found: " + e.Path
}

type SchemaMismatchError struct {
	Path   string
	Expect int
	Found  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: header has %d columns, expect %d", e.Path, e.Found, e.Expect)
}

type MalformedRowError struct {
	Line   int
	Fields int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d has %d fields, expect %d", e.Line, e.Fields, MinFields)
}

// LoadTable reads the whole mapping table and splits off the header.
// Tab separated text by default, a .xlsx workbook when the name matches.
func (t *Transform) LoadTable() error {
	if !osUtil.FileExists(t.Input) {
		return &MissingInputError{Path: t.Input}
	}

	var rows [][]string
	if isXlsx.MatchString(t.Input) {
		for _, row := range Xlsx2Slice(t.Input) {
			if len(row) == 0 {
				continue
			}
			rows = append(rows, row)
		}
	} else {
		for _, line := range textUtil.File2Array(t.Input) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			rows = append(rows, strings.Split(line, "\t"))
		}
	}
	if len(rows) == 0 {
		slog.Warn("empty table", "input", t.Input)
		return nil
	}

	t.Header = rows[0]
	t.rows = rows[1:]
	slog.Info("load table", "input", t.Input, "columns", len(t.Header), "rows", len(t.rows))

	if len(t.Header) < MinFields && !t.Lenient {
		return &SchemaMismatchError{Path: t.Input, Expect: MinFields, Found: len(t.Header)}
	}
	return nil
}

// Group assigns every valid data row to its sublibrary, deriving one
// TagRecord per assay in assay order.
func (t *Transform) Group() {
	for i, row := range t.rows {
		if len(row) < MinFields {
			slog.Warn("skip row", "err", &MalformedRowError{Line: i + 2, Fields: len(row)})
			t.Stats["skippedRowNum"]++
			continue
		}

		var (
			sampleID     = row[ColSampleID]
			sublibraryID = row[ColSublibraryID]
		)
		if sampleID == "" || sublibraryID == "" {
			t.Stats["emptyKeyRowNum"]++
			continue
		}

		for _, assay := range t.Assays {
			t.Sublibraries[sublibraryID] = append(
				t.Sublibraries[sublibraryID],
				&TagRecord{
					ForwardTag: row[assay.ForwardCol],
					ReverseTag: row[assay.ReverseCol],
					SampleName: sampleID + assay.Suffix,
				},
			)
		}
		t.Stats["validRowNum"]++
	}
	t.Stats["sublibraryNum"] = len(t.Sublibraries)
}

// Prepare creates the output directory, no error when it already exists.
func (t *Transform) Prepare() {
	simpleUtil.CheckErr(os.MkdirAll(t.OutputDir, 0755))
}

// SortedKeys returns the sublibrary IDs in ascending order so the file
// creation order is deterministic.
func (t *Transform) SortedKeys() []string {
	var keys = make([]string, 0, len(t.Sublibraries))
	for key := range t.Sublibraries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// WriteFiles writes one <sublibrary>_tags.tsv per sublibrary, records in
// append order, and returns the number of files created.
func (t *Transform) WriteFiles() int {
	var filesCreated = 0
	for _, key := range t.SortedKeys() {
		var records = t.Sublibraries[key]
		var path = filepath.Join(t.OutputDir, key+"_tags.tsv")
		var out = osUtil.Create(path)
		for _, record := range records {
			fmtUtil.Fprintf(out, "%s\t%s\t%s\n", record.ForwardTag, record.ReverseTag, record.SampleName)
		}
		simpleUtil.CheckErr(out.Close())
		slog.Info("write mapping file", "path", path, "samples", len(records)/len(t.Assays), "records", len(records))
		filesCreated++
	}
	t.Stats["fileNum"] = filesCreated
	return filesCreated
}

func (t *Transform) Summary() {
	slog.Info(
		"done",
		"rows", t.Stats["validRowNum"],
		"skipped", t.Stats["skippedRowNum"]+t.Stats["emptyKeyRowNum"],
		"sublibraries", t.Stats["sublibraryNum"],
		"files", t.Stats["fileNum"],
	)
}

// Run performs the whole transform. The returned error is reported by the
// caller, nothing is fatal to the process.
func (t *Transform) Run() error {
	if err := t.LoadTable(); err != nil {
		return err
	}
	t.Group()
	t.Prepare()
	t.WriteFiles()
	t.Summary()
	return nil
}
