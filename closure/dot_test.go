package closure

import (
	"bytes"
	"testing"

	"github.com/carbocation/ontomisc/obo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubgraph(t *testing.T) {
	g := hierarchy(t)

	sub := New().Subgraph("A", g)

	assert.Equal(t, 7, sub.Nodes().Len())
	// A->B, A->E, B->C, B->X, C->D, E->F
	assert.Equal(t, 6, sub.Edges().Len())
}

func TestSubgraphDropsSelfReferencesAndDuplicates(t *testing.T) {
	g := load(t, "id: A", "is_a: A", "is_a: B", "relationship: part_of B", "id: B")

	sub := New().Subgraph("A", g)

	require.Equal(t, 2, sub.Nodes().Len())
	require.Equal(t, 1, sub.Edges().Len())

	edges := sub.Edges()
	edges.Next()
	assert.Equal(t, obo.IsA, edges.Edge().(relationEdge).kind)
}

func TestWriteDOT(t *testing.T) {
	g := hierarchy(t)

	var buf bytes.Buffer
	require.NoError(t, New(WithRelations(obo.IsA)).WriteDOT(&buf, "A", g))

	out := buf.String()
	assert.Contains(t, out, "digraph descendants {")
	assert.Contains(t, out, "is_a")
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "part_of")
}
