package obo

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalOBO = `[Term]
id: GO:0000001
name: mitochondrion inheritance
is_a: GO:0000002 ! mito distribution

[Term]
id: GO:0000002
name: mitochondrial genome maintenance
`

func TestLoadMinimal(t *testing.T) {
	g, err := Load(strings.NewReader(minimalOBO))
	require.NoError(t, err)

	require.Equal(t, 2, g.Len())

	term, ok := g.Lookup("GO:0000001")
	require.True(t, ok)
	assert.Equal(t, "mitochondrion inheritance", term.Name)
	assert.Equal(t, []string{"GO:0000002"}, term.Edges[IsA])
	for _, k := range RelationKinds[1:] {
		assert.Empty(t, term.Edges[k], k)
	}

	assert.Equal(t, "mitochondrial genome maintenance", g.Name("GO:0000002"))
	assert.Equal(t, MissingName, g.Name("GO:9999999"))
}

func TestLoadRelationshipGoesToItsKind(t *testing.T) {
	input := "id: GO:0000001\nrelationship: part_of GO:0000003 ! some description\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	term, ok := g.Lookup("GO:0000001")
	require.True(t, ok)
	assert.Equal(t, []string{"GO:0000003"}, term.Edges[PartOf])
	assert.Empty(t, term.Edges[IsA])
}

func TestLoadEveryRelationKind(t *testing.T) {
	input := strings.Join([]string{
		"id: GO:1",
		"relationship: negatively_regulates GO:6",
		"relationship: positively_regulates GO:5",
		"relationship: regulates GO:4",
		"relationship: part_of GO:3",
		"is_a: GO:2",
		"is_a: GO:7 {source=\"x\"} ! with trailing modifiers",
	}, "\n")

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	term, _ := g.Lookup("GO:1")
	assert.Equal(t, []string{"GO:2", "GO:7"}, term.Edges[IsA])
	assert.Equal(t, []string{"GO:3"}, term.Edges[PartOf])
	assert.Equal(t, []string{"GO:4"}, term.Edges[Regulates])
	assert.Equal(t, []string{"GO:5"}, term.Edges[PositivelyRegulates])
	assert.Equal(t, []string{"GO:6"}, term.Edges[NegativelyRegulates])

	// Targets follows kind order, not file order.
	assert.Equal(t, []string{"GO:2", "GO:7", "GO:3", "GO:4", "GO:5", "GO:6"}, term.Targets())
	assert.Equal(t, []string{"GO:3", "GO:2", "GO:7"}, term.Targets(PartOf, IsA))
}

func TestLoadCRLF(t *testing.T) {
	lf, err := Load(strings.NewReader(minimalOBO))
	require.NoError(t, err)

	crlf, err := Load(strings.NewReader(strings.ReplaceAll(minimalOBO, "\n", "\r\n")))
	require.NoError(t, err)

	assert.Equal(t, lf.Terms, crlf.Terms)
}

func TestLoadNameKeepsEverythingAfterFirstSeparator(t *testing.T) {
	g, err := Load(strings.NewReader("id: GO:1\nname: odd: name with colon\n"))
	require.NoError(t, err)

	assert.Equal(t, "odd: name with colon", g.Name("GO:1"))
}

func TestLoadUnknownRelationKindIsSkipped(t *testing.T) {
	input := "id: GO:1\nrelationship: has_part GO:2 ! part\nrelationship: occurs_in\nis_a: GO:3\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	term, _ := g.Lookup("GO:1")
	assert.Equal(t, []string{"GO:3"}, term.Targets())
	assert.Equal(t, 2, g.Skipped)
}

func TestLoadStrictRejectsUnknownRelationKind(t *testing.T) {
	input := "id: GO:1\nis_a: GO:3\nrelationship: has_part GO:2 ! part\n"

	_, err := Load(strings.NewReader(input), Strict())
	require.Error(t, err)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 3, ferr.Line)
	assert.Equal(t, "has_part", ferr.Kind)
	assert.Contains(t, err.Error(), "has_part")
}

func TestLoadStrictRejectsMalformedRelationship(t *testing.T) {
	_, err := Load(strings.NewReader("id: GO:1\nrelationship: part_of\n"), Strict())

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Line)
	assert.Empty(t, ferr.Kind)
}

func TestLoadRedefinitionLastWins(t *testing.T) {
	input := "id: GO:1\nname: first\nis_a: GO:2\n\nid: GO:1\nname: second\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, g.Len())
	term, _ := g.Lookup("GO:1")
	assert.Equal(t, "second", term.Name)
	assert.Empty(t, term.Targets())
}

func TestLoadIgnoresTermFieldsBeforeFirstID(t *testing.T) {
	input := "name: orphan\nis_a: GO:9\nrelationship: part_of GO:8\nid: GO:1\n"

	g, err := Load(strings.NewReader(input), Strict())
	require.NoError(t, err)

	require.Equal(t, 1, g.Len())
	term, _ := g.Lookup("GO:1")
	assert.False(t, term.HasName)
	assert.Empty(t, term.Targets())
}

func TestLoadFile(t *testing.T) {
	g, err := LoadFile(context.Background(), filepath.Join("testdata", "mini.obo"), nil)
	require.NoError(t, err)

	assert.Equal(t, "1.2", g.FormatVersion)
	assert.Equal(t, "releases/2023-01-01", g.DataVersion)
	assert.Equal(t, "go", g.Ontology)

	// Five terms plus the part_of Typedef, whose id line also starts a record.
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, 1, g.Skipped)

	dist, ok := g.Lookup("GO:0048311")
	require.True(t, ok)
	assert.Equal(t, []string{"GO:0000004"}, dist.AltIDs)
	assert.Equal(t, []string{"GO:0000002"}, dist.Edges[Regulates])

	obsolete, _ := g.Lookup("GO:0000005")
	assert.True(t, obsolete.IsObsolete)
	assert.Equal(t, "molecular_function", obsolete.Namespace)
}

func TestLoadFileGzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "mini.obo"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "mini.obo.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	plain, err := LoadFile(context.Background(), filepath.Join("testdata", "mini.obo"), nil)
	require.NoError(t, err)
	compressed, err := LoadFile(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, plain, compressed)
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.obo")

	_, err := LoadFile(context.Background(), path, nil)
	require.Error(t, err)

	var ferr *FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, path, ferr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTermString(t *testing.T) {
	g, err := LoadFile(context.Background(), filepath.Join("testdata", "mini.obo"), nil)
	require.NoError(t, err)

	term, _ := g.Lookup("GO:0048308")
	assert.Equal(t, strings.Join([]string{
		"[Term]",
		"id: GO:0048308",
		"name: organelle inheritance",
		"namespace: biological_process",
		"relationship: part_of GO:0006996",
	}, "\n"), term.String())
}

func TestParseRelationKind(t *testing.T) {
	for _, k := range RelationKinds {
		got, ok := ParseRelationKind(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := ParseRelationKind("has_part")
	assert.False(t, ok)
}
