// Package star runs the STAR aligner over the samples listed in a sequencing
// core's Sample_Report.csv, one sample at a time.
package star

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/ontomisc"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// ReportRow is one line of a sample report: a single FASTQ file belonging to
// one read of one sample. Other columns in the report are ignored.
type ReportRow struct {
	SampleName string `csv:"SampleName"`
	Read       string `csv:"Read"`
	Output     string `csv:"Output"`
}

var requiredColumns = []string{"SampleName", "Read", "Output"}

// Sample collects the FASTQ files of one sample. Reads maps each read label
// (typically "1" and "2") to a comma-separated list of files, which is the
// form STAR's --readFilesIn expects for multiple lanes.
type Sample struct {
	Name  string
	Reads map[string]string
}

// ReadKeys returns the read labels of s in sorted order.
func (s Sample) ReadKeys() []string {
	keys := make([]string, 0, len(s.Reads))
	for k := range s.Reads {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// ReadSampleReport parses a sample report and groups its FASTQ files by
// sample and read. Each Output value is taken relative to seqdir. Files of
// the same read keep their report order. Samples are returned sorted by
// name.
func ReadSampleReport(r io.Reader, seqdir string) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pfx.Err(fmt.Errorf("sample report is empty"))
	}

	delim := ontomisc.DetermineDelimiter(bytes.NewReader(data), ',')

	header, err := newCSVReader(data, delim).Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("reading sample report header: %w", err))
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, pfx.Err(fmt.Errorf("sample report is missing column(s) %s", strings.Join(missing, ", ")))
	}

	rows := []*ReportRow{}
	if err := gocsv.UnmarshalCSV(newCSVReader(data, delim), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	files := make(map[string]map[string][]string)
	for i, row := range rows {
		if row.SampleName == "" || row.Read == "" || row.Output == "" {
			return nil, pfx.Err(fmt.Errorf("sample report row %d has an empty SampleName, Read or Output", i+2))
		}

		reads, exists := files[row.SampleName]
		if !exists {
			reads = make(map[string][]string)
			files[row.SampleName] = reads
		}
		reads[row.Read] = append(reads[row.Read], filepath.Join(seqdir, row.Output))
	}

	samples := make([]Sample, 0, len(files))
	for name, reads := range files {
		s := Sample{Name: name, Reads: make(map[string]string, len(reads))}
		for read, paths := range reads {
			s.Reads[read] = strings.Join(paths, ",")
		}
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })

	return samples, nil
}

func newCSVReader(data []byte, delim rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
