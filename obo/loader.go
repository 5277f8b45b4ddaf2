package obo

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode"

	"cloud.google.com/go/storage"
	"github.com/carbocation/ontomisc"
)

const (
	initialTermCapacity = 50000   // go-basic.obo has ~48k terms
	scannerBufferSize   = 1 << 20 // 1 MB
)

type loadConfig struct {
	strict bool
}

type Option func(*loadConfig)

// Strict makes Load fail with a *FormatError on relationship lines whose kind
// is not one of RelationKinds, and on is_a or relationship lines that do not
// name a target. By default such lines are skipped and counted in
// Graph.Skipped.
func Strict() Option {
	return func(c *loadConfig) {
		c.strict = true
	}
}

// builder carries the state of a single Load call.
type builder struct {
	cfg     loadConfig
	graph   *Graph
	current *Term
	line    int
}

// Load reads an OBO ontology from r in a single forward pass.
//
// Only the "field: value" lines listed below are interpreted; everything else
// is ignored on purpose so that newer or richer OBO files still load:
//
//   - lines without a ": " separator (blank lines, [Term] / [Typedef] stanza
//     markers, most comments);
//   - fields that are not recognized;
//   - term fields that appear before the first id line.
//
// An id line starts a new current term regardless of the stanza it is in. A
// later record with the same id replaces the earlier one.
func Load(r io.Reader, opts ...Option) (*Graph, error) {
	return load(r, "", opts...)
}

// LoadFile opens path (a local file, or gs://bucket/object when client is
// non-nil), decompresses it if needed, and loads it. Failures to open or read
// the source are returned as *FileError.
func LoadFile(ctx context.Context, path string, client *storage.Client, opts ...Option) (*Graph, error) {
	src, _, err := ontomisc.OpenSource(ctx, path, client)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer src.Close()

	r, _, err := ontomisc.MaybeDecompress(src)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer r.Close()

	return load(r, path, opts...)
}

func load(r io.Reader, path string, opts ...Option) (*Graph, error) {
	b := &builder{
		graph: &Graph{
			Terms: make(map[string]*Term, initialTermCapacity),
		},
	}
	for _, opt := range opts {
		opt(&b.cfg)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)

	for scanner.Scan() {
		b.line++
		if err := b.consume(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	return b.graph, nil
}

func (b *builder) consume(line string) error {
	// Trailing whitespace includes the \r of CRLF files.
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	field, value, ok := strings.Cut(line, ": ")
	if !ok {
		return nil
	}

	if field == "id" {
		b.current = newTerm(value)
		b.graph.Terms[value] = b.current
		return nil
	}

	if b.current == nil {
		b.header(field, value)
		return nil
	}

	switch field {
	case "name":
		b.current.Name = value
		b.current.HasName = true
	case "namespace":
		b.current.Namespace = value
	case "alt_id":
		b.current.AltIDs = append(b.current.AltIDs, value)
	case "is_obsolete":
		b.current.IsObsolete = value == "true"
	case "is_a":
		return b.isA(value)
	case "relationship":
		return b.relationship(value)
	}

	return nil
}

func (b *builder) header(field, value string) {
	switch field {
	case "format-version":
		b.graph.FormatVersion = value
	case "data-version":
		b.graph.DataVersion = value
	case "ontology":
		b.graph.Ontology = value
	}
}

// isA parses "GO:0000002 ! description", keeping only the leading id.
func (b *builder) isA(value string) error {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return b.skip(&FormatError{Line: b.line, Field: "is_a", Msg: "missing target id"})
	}

	b.current.Edges[IsA] = append(b.current.Edges[IsA], fields[0])
	return nil
}

// relationship parses "part_of GO:0000003 ! description".
func (b *builder) relationship(value string) error {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return b.skip(&FormatError{Line: b.line, Field: "relationship", Msg: "expected a relation kind and a target id"})
	}

	kind, ok := ParseRelationKind(fields[0])
	if !ok {
		return b.skip(&FormatError{Line: b.line, Field: "relationship", Kind: fields[0]})
	}

	b.current.Edges[kind] = append(b.current.Edges[kind], fields[1])
	return nil
}

func (b *builder) skip(err *FormatError) error {
	if b.cfg.strict {
		return err
	}
	b.graph.Skipped++
	return nil
}
