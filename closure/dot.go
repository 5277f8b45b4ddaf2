package closure

import (
	"io"

	"github.com/carbocation/ontomisc/obo"
	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type termNode struct {
	id   int64
	term string
	name string
	root bool
}

func (n termNode) ID() int64 { return n.id }

func (n termNode) DOTID() string { return n.term }

func (n termNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "label", Value: n.term + "\n" + n.name}}
	if n.root {
		attrs = append(attrs, encoding.Attribute{Key: "shape", Value: "box"})
	}
	return attrs
}

type relationEdge struct {
	from, to termNode
	kind     obo.RelationKind
}

func (e relationEdge) From() graph.Node { return e.from }

func (e relationEdge) To() graph.Node { return e.to }

func (e relationEdge) ReversedEdge() graph.Edge {
	e.from, e.to = e.to, e.from
	return e
}

func (e relationEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: string(e.kind)}}
}

// Subgraph builds the directed graph of terms reached from root, keeping the
// edges of f's relation kinds between reached terms. When two terms are
// linked by more than one kind, the first kind in f's order labels the edge.
// Self-references are dropped.
func (f *Finder) Subgraph(root string, g *obo.Graph) *simple.DirectedGraph {
	ids := Sorted(f.Descendants(root, g))

	out := simple.NewDirectedGraph()
	nodes := make(map[string]termNode, len(ids))
	for i, id := range ids {
		n := termNode{id: int64(i), term: id, name: g.Name(id), root: id == root}
		nodes[id] = n
		out.AddNode(n)
	}

	for _, id := range ids {
		term, ok := g.Lookup(id)
		if !ok {
			continue
		}
		from := nodes[id]
		for _, kind := range f.relations {
			for _, target := range term.Edges[kind] {
				to, reached := nodes[target]
				if !reached || to.id == from.id || out.HasEdgeFromTo(from.id, to.id) {
					continue
				}
				out.SetEdge(relationEdge{from: from, to: to, kind: kind})
			}
		}
	}

	return out
}

// WriteDOT writes the subgraph reached from root to w in Graphviz DOT format.
func (f *Finder) WriteDOT(w io.Writer, root string, g *obo.Graph) error {
	b, err := dot.Marshal(f.Subgraph(root, g), "descendants", "", "\t")
	if err != nil {
		return pfx.Err(err)
	}
	b = append(b, '\n')

	if _, err := w.Write(b); err != nil {
		return pfx.Err(err)
	}
	return nil
}
