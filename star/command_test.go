package star

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairedSample() Sample {
	return Sample{
		Name: "liver_1",
		Reads: map[string]string{
			"2": "/seq/a_R2.fastq.gz,/seq/b_R2.fastq.gz",
			"1": "/seq/a_R1.fastq.gz,/seq/b_R1.fastq.gz",
		},
	}
}

func TestCommandSingleEnd(t *testing.T) {
	args, err := Command(Options{GenomeDir: "/db/mm10", Threads: 8}, pairedSample(), "/scratch/x")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--runThreadN", "8",
		"--genomeDir", "/db/mm10",
		"--readFilesIn", "/seq/a_R1.fastq.gz,/seq/b_R1.fastq.gz",
		"--readFilesCommand", "pigz", "-dcp", "4",
		"--quantMode", "GeneCounts",
		"--outFileNamePrefix", "/scratch/x/liver_1.",
		"--outSAMtype", "BAM", "SortedByCoordinate",
	}, args)
}

func TestCommandPairedWithGTF(t *testing.T) {
	opts := Options{GenomeDir: "/db/mm10", Paired: true, GTF: "/db/mm10.gtf"}

	args, err := Command(opts, pairedSample(), "/scratch/x")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--runThreadN", "16",
		"--genomeDir", "/db/mm10",
		"--readFilesIn", "/seq/a_R1.fastq.gz,/seq/b_R1.fastq.gz", "/seq/a_R2.fastq.gz,/seq/b_R2.fastq.gz",
		"--readFilesCommand", "pigz", "-dcp", "4",
		"--quantMode", "GeneCounts",
		"--outFileNamePrefix", "/scratch/x/liver_1.",
		"--outSAMtype", "BAM", "SortedByCoordinate",
		"--sjdbGTFfile", "/db/mm10.gtf",
	}, args)
}

func TestCommandPairedNeedsTwoReads(t *testing.T) {
	s := Sample{Name: "s1", Reads: map[string]string{"1": "/seq/a.fastq.gz"}}

	_, err := Command(Options{GenomeDir: "/db", Paired: true}, s, "/scratch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s1")
}

func TestCommandNeedsGenome(t *testing.T) {
	_, err := Command(Options{}, pairedSample(), "/scratch")
	assert.Error(t, err)
}
