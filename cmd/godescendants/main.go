// godescendants loads a Gene Ontology OBO file and prints every term reachable
// from a given GO term over the is_a, part_of, regulates,
// positively_regulates and negatively_regulates relations.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ontomisc"
	"github.com/carbocation/ontomisc/closure"
	"github.com/carbocation/ontomisc/compileinfo"
	"github.com/carbocation/ontomisc/obo"
	"github.com/charmbracelet/log"
)

var BufferSize = 4096 * 8

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the tool with the given command line arguments (without the
// program name) and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		relations string
		dotPath   string
		strict    bool
		verbose   bool
	)

	fs := flag.NewFlagSet("godescendants", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&relations, "relations", "", "Comma-separated relation kinds to follow. Default: all of "+kindList(obo.RelationKinds))
	fs.StringVar(&dotPath, "dot", "", "Optional path to write the reached subgraph in Graphviz DOT format")
	fs.BoolVar(&strict, "strict", false, "Fail on relationship lines with an unrecognized relation kind instead of skipping them")
	fs.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] input_go_obo_file input_go_term\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	logger := log.New(stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	compileinfo.Fprint(stderr)

	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	oboPath, err := ontomisc.ExpandHome(fs.Arg(0))
	if err != nil {
		logger.Error("could not expand path", "path", fs.Arg(0), "err", err)
		return 1
	}
	root := fs.Arg(1)

	if !ontomisc.IsGoogleStoragePath(oboPath) {
		if _, err := os.Stat(oboPath); err != nil {
			fmt.Fprintf(stderr, "%s does not exist\n", oboPath)
			fs.Usage()
			return 1
		}
	}

	kinds, err := parseRelations(relations)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 1
	}

	ctx := context.Background()

	var client *storage.Client
	if ontomisc.IsGoogleStoragePath(oboPath) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			logger.Error("could not create Google Storage client", "err", err)
			return 1
		}
		defer client.Close()
	}

	var opts []obo.Option
	if strict {
		opts = append(opts, obo.Strict())
	}

	start := time.Now()
	g, err := obo.LoadFile(ctx, oboPath, client, opts...)
	if err != nil {
		var ferr *obo.FormatError
		if errors.As(err, &ferr) {
			logger.Error("malformed ontology", "path", oboPath, "line", ferr.Line, "err", err)
			return 1
		}
		logger.Error("could not load ontology", "path", oboPath, "err", err)
		return 1
	}
	logger.Info("loaded ontology", "path", oboPath, "terms", g.Len(), "data_version", g.DataVersion, "duration", time.Since(start))
	if g.Skipped > 0 {
		logger.Warn("skipped relationship lines with unrecognized or malformed values", "count", g.Skipped)
	}

	finder := closure.New(closure.WithRelations(kinds...))
	logger.Debug("following relations", "kinds", kindList(finder.Relations()))

	out := bufio.NewWriterSize(stdout, BufferSize)
	if err := printDescendants(out, g, finder, root); err != nil {
		logger.Error("could not write results", "err", err)
		return 1
	}
	if err := out.Flush(); err != nil {
		logger.Error("could not write results", "err", err)
		return 1
	}

	if dotPath != "" {
		if err := writeDOT(dotPath, g, finder, root); err != nil {
			logger.Error("could not write DOT file", "path", dotPath, "err", err)
			return 1
		}
		logger.Info("wrote subgraph", "path", dotPath)
	}

	return 0
}

// printDescendants writes the root's record followed by one "id: name" line
// per reached term, sorted by id.
func printDescendants(w io.Writer, g *obo.Graph, finder *closure.Finder, root string) error {
	if term, ok := g.Lookup(root); ok {
		if _, err := fmt.Fprintln(w, term); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s: %s\n", root, obo.MissingName); err != nil {
			return err
		}
	}

	for _, id := range closure.Sorted(finder.Descendants(root, g)) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, g.Name(id)); err != nil {
			return err
		}
	}

	return nil
}

func writeDOT(path string, g *obo.Graph, finder *closure.Finder, root string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := finder.WriteDOT(f, root, g); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func parseRelations(s string) ([]obo.RelationKind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []obo.RelationKind
	for _, part := range strings.Split(s, ",") {
		kind, ok := obo.ParseRelationKind(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unrecognized relation kind %q; valid kinds are %s", part, kindList(obo.RelationKinds))
		}
		out = append(out, kind)
	}

	return out, nil
}

func kindList(kinds []obo.RelationKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ",")
}
