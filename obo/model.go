package obo

import (
	"strings"
)

// MissingName is reported in place of a name for ids that have no term
// record in the graph.
const MissingName = "term not found"

// RelationKind names one of the edge types followed through the hierarchy.
type RelationKind string

const (
	IsA                 RelationKind = "is_a"
	PartOf              RelationKind = "part_of"
	Regulates           RelationKind = "regulates"
	PositivelyRegulates RelationKind = "positively_regulates"
	NegativelyRegulates RelationKind = "negatively_regulates"
)

// RelationKinds lists every recognized kind in the order their edges are
// concatenated during traversal.
var RelationKinds = []RelationKind{
	IsA,
	PartOf,
	Regulates,
	PositivelyRegulates,
	NegativelyRegulates,
}

func (k RelationKind) String() string {
	return string(k)
}

// ParseRelationKind reports whether s names a recognized relation kind.
func ParseRelationKind(s string) (RelationKind, bool) {
	for _, k := range RelationKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Term is one ontology node together with its outgoing edges.
type Term struct {
	ID         string
	Name       string
	HasName    bool
	Namespace  string
	IsObsolete bool
	AltIDs     []string

	// Edges holds the targets of each relation kind in file order. Every
	// recognized kind has an entry, possibly empty.
	Edges map[RelationKind][]string
}

func newTerm(id string) *Term {
	t := &Term{
		ID:    id,
		Edges: make(map[RelationKind][]string, len(RelationKinds)),
	}
	for _, k := range RelationKinds {
		t.Edges[k] = []string{}
	}
	return t
}

// Targets concatenates the edge targets of the given kinds, in the order the
// kinds are given. With no kinds, all recognized kinds are used.
func (t *Term) Targets(kinds ...RelationKind) []string {
	if len(kinds) == 0 {
		kinds = RelationKinds
	}

	n := 0
	for _, k := range kinds {
		n += len(t.Edges[k])
	}

	out := make([]string, 0, n)
	for _, k := range kinds {
		out = append(out, t.Edges[k]...)
	}
	return out
}

// String renders the term as an OBO-style record.
func (t *Term) String() string {
	b := strings.Builder{}
	b.WriteString("[Term]\n")
	b.WriteString("id: " + t.ID + "\n")
	if t.HasName {
		b.WriteString("name: " + t.Name + "\n")
	}
	if t.Namespace != "" {
		b.WriteString("namespace: " + t.Namespace + "\n")
	}
	for _, alt := range t.AltIDs {
		b.WriteString("alt_id: " + alt + "\n")
	}
	for _, target := range t.Edges[IsA] {
		b.WriteString("is_a: " + target + "\n")
	}
	for _, k := range RelationKinds[1:] {
		for _, target := range t.Edges[k] {
			b.WriteString("relationship: " + string(k) + " " + target + "\n")
		}
	}
	if t.IsObsolete {
		b.WriteString("is_obsolete: true\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Graph maps term ids to terms. It is built once by Load and not modified
// afterwards.
type Graph struct {
	FormatVersion string
	DataVersion   string
	Ontology      string

	Terms map[string]*Term

	// Skipped counts is_a and relationship lines that were ignored because
	// the relation kind was unrecognized or the value was malformed.
	Skipped int
}

func (g *Graph) Lookup(id string) (*Term, bool) {
	t, ok := g.Terms[id]
	return t, ok
}

// Name returns the display name for id, or MissingName if id has no record.
func (g *Graph) Name(id string) string {
	t, ok := g.Terms[id]
	if !ok {
		return MissingName
	}
	return t.Name
}

func (g *Graph) Len() int {
	return len(g.Terms)
}
