package star

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

const (
	DefaultBinary  = "STAR"
	DefaultThreads = 16
)

// Files STAR writes for each sample, named <sample>.<suffix> under the
// output prefix. These are the ones kept after a run.
var OutputSuffixes = []string{
	"ReadsPerGene.out.tab",
	"Log.final.out",
	"Aligned.sortedByCoord.out.bam",
}

type Options struct {
	Binary    string // path to the STAR executable
	GenomeDir string // STAR genome index (--genomeDir)
	TmpDir    string // parent of the per-batch scratch directory
	OutDir    string // where outputs are copied after each sample
	GTF       string // optional annotation (--sjdbGTFfile)
	Threads   int
	Paired    bool
}

// Command returns the STAR arguments (without the executable) that align s,
// writing outputs under prefixDir. Single-end runs use the first read label;
// paired runs use the first two.
func Command(opts Options, s Sample, prefixDir string) ([]string, error) {
	if opts.GenomeDir == "" {
		return nil, pfx.Err(fmt.Errorf("no genome directory set"))
	}

	keys := s.ReadKeys()
	want := 1
	if opts.Paired {
		want = 2
	}
	if len(keys) < want {
		return nil, pfx.Err(fmt.Errorf("sample %s has %d read group(s) (%s), needs %d", s.Name, len(keys), strings.Join(keys, ", "), want))
	}

	threads := opts.Threads
	if threads < 1 {
		threads = DefaultThreads
	}

	args := []string{
		"--runThreadN", strconv.Itoa(threads),
		"--genomeDir", opts.GenomeDir,
		"--readFilesIn",
	}
	for _, k := range keys[:want] {
		args = append(args, s.Reads[k])
	}
	args = append(args,
		"--readFilesCommand", "pigz", "-dcp", "4",
		"--quantMode", "GeneCounts",
		"--outFileNamePrefix", OutputPrefix(prefixDir, s.Name),
		"--outSAMtype", "BAM", "SortedByCoordinate",
	)
	if opts.GTF != "" {
		args = append(args, "--sjdbGTFfile", opts.GTF)
	}

	return args, nil
}

// OutputPrefix is the --outFileNamePrefix for sample in dir. STAR appends
// file names directly, so the prefix ends in a dot.
func OutputPrefix(dir, sample string) string {
	return filepath.Join(dir, sample) + "."
}
