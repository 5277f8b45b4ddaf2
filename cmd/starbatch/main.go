// starbatch runs the STAR aligner for every sample in a Sample_Report.csv.
// The sequence directory is given separately from the report so that an
// edited report (with samples removed or combined) can be used.
//
// STAR reference: Dobin A, et al. STAR: ultrafast universal RNA-seq aligner.
// Bioinformatics. 2013;29(1):15-21. doi:10.1093/bioinformatics/bts635
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/carbocation/ontomisc"
	"github.com/carbocation/ontomisc/compileinfo"
	"github.com/carbocation/ontomisc/star"
	"github.com/charmbracelet/log"
)

func main() {
	var (
		reportPath string
		seqdir     string
		verbose    bool
	)
	opts := star.Options{}

	flag.StringVar(&reportPath, "sample_report", "", "Full path to Sample_Report.csv")
	flag.StringVar(&opts.GenomeDir, "db", "", "STAR genome directory")
	flag.StringVar(&seqdir, "seqdir", "", "Directory containing the FASTQ files named in the report")
	flag.StringVar(&opts.TmpDir, "tmpdir", os.TempDir(), "Temporary directory location (must exist)")
	flag.StringVar(&opts.Binary, "STAR", star.DefaultBinary, "Location of the STAR command")
	flag.BoolVar(&opts.Paired, "paired", false, "Set this if the reads are paired")
	flag.IntVar(&opts.Threads, "threads", star.DefaultThreads, "Number of threads to use for STAR")
	flag.StringVar(&opts.OutDir, "outdir", ".", "Where to copy STAR output files (must exist)")
	flag.StringVar(&opts.GTF, "gtf", "", "Optional GTF annotation passed to STAR as --sjdbGTFfile")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	compileinfo.Fprint(os.Stderr)

	if reportPath == "" || opts.GenomeDir == "" {
		fmt.Fprintln(os.Stderr, "Both -sample_report and -db are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	for _, p := range []*string{&reportPath, &seqdir, &opts.TmpDir, &opts.OutDir, &opts.GenomeDir, &opts.GTF, &opts.Binary} {
		expanded, err := ontomisc.ExpandHome(*p)
		if err != nil {
			logger.Fatal("could not expand path", "path", *p, "err", err)
		}
		*p = expanded
	}

	if err := checkDirs([]flagPath{{"tmpdir", opts.TmpDir}, {"outdir", opts.OutDir}}); err != nil {
		logger.Fatal(err)
	}

	f, err := os.Open(reportPath)
	if err != nil {
		logger.Fatal("could not open sample report", "err", err)
	}
	samples, err := star.ReadSampleReport(f, seqdir)
	f.Close()
	if err != nil {
		logger.Fatal("could not parse sample report", "path", reportPath, "err", err)
	}
	logger.Info("parsed sample report", "path", reportPath, "samples", len(samples), "paired", opts.Paired)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := star.NewRunner(opts, logger).Run(ctx, samples); err != nil {
		logger.Fatal("batch stopped", "err", err)
	}
	logger.Info("all samples aligned", "outdir", opts.OutDir)
}

type flagPath struct {
	Flag string
	Path string
}

// checkDirs reports the first entry, in order, whose path is not an existing
// directory.
func checkDirs(dirs []flagPath) error {
	for _, d := range dirs {
		if fi, err := os.Stat(d.Path); err != nil || !fi.IsDir() {
			return fmt.Errorf("-%s %q is not a valid directory", d.Flag, d.Path)
		}
	}
	return nil
}
