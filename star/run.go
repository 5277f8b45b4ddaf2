package star

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/charmbracelet/log"
)

// Runner aligns samples one after another.
type Runner struct {
	Opts Options

	// Exec builds the aligner process; tests replace it. Defaults to
	// exec.CommandContext.
	Exec func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Aligner output is streamed here.
	Stdout io.Writer
	Stderr io.Writer

	Log *log.Logger
}

func NewRunner(opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		Opts:   opts,
		Exec:   exec.CommandContext,
		Stdout: os.Stderr,
		Stderr: os.Stderr,
		Log:    logger,
	}
}

// Run aligns each sample into a scratch directory under Opts.TmpDir and
// copies its outputs to Opts.OutDir before moving on. The first failure
// stops the batch. The scratch directory is removed when Run returns.
func (r *Runner) Run(ctx context.Context, samples []Sample) error {
	binary := r.Opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	scratch, err := os.MkdirTemp(r.Opts.TmpDir, "starbatch-")
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			r.Log.Warn("could not remove scratch directory", "path", scratch, "err", err)
		}
	}()
	r.Log.Debug("scratch directory created", "path", scratch)

	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}

		args, err := Command(r.Opts, s, scratch)
		if err != nil {
			return err
		}

		r.Log.Info("aligning", "sample", s.Name, "n", i+1, "of", len(samples))
		r.Log.Debug("command", "cmd", binary+" "+strings.Join(args, " "))

		start := time.Now()
		cmd := r.Exec(ctx, binary, args...)
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		if err := cmd.Run(); err != nil {
			return pfx.Err(fmt.Errorf("STAR failed for sample %s: %w", s.Name, err))
		}

		copied, err := CopyOutputs(scratch, r.Opts.OutDir, s.Name)
		if err != nil {
			return err
		}

		r.Log.Info("alignment complete and files copied", "sample", s.Name, "files", len(copied), "duration", time.Since(start).Round(time.Second))
	}

	return nil
}

// CopyOutputs copies the kept STAR outputs for sample from srcDir into
// dstDir and returns the destination paths.
func CopyOutputs(srcDir, dstDir, sample string) ([]string, error) {
	out := make([]string, 0, len(OutputSuffixes))
	for _, suffix := range OutputSuffixes {
		name := sample + "." + suffix
		dst := filepath.Join(dstDir, name)
		if err := copyFile(filepath.Join(srcDir, name), dst); err != nil {
			return out, pfx.Err(err)
		}
		out = append(out, dst)
	}

	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
