// Package closure computes the set of ontology terms reachable from a root
// term over the recognized relation kinds.
//
// Every kind is treated as an equally valid descendant edge: the traversal
// trades precision for recall, so a term reached through part_of or one of
// the regulates kinds counts the same as one reached through is_a.
package closure

import (
	"sort"

	"github.com/carbocation/ontomisc/obo"
)

// Step is one term reached by Walk, with its breadth-first depth from the
// root (the root has depth 0).
type Step struct {
	ID    string
	Depth int
}

type Finder struct {
	relations []obo.RelationKind
}

type Option func(*Finder)

// WithRelations restricts the traversal to the given kinds, concatenated in
// the given order. With no kinds, every recognized kind is followed.
func WithRelations(kinds ...obo.RelationKind) Option {
	return func(f *Finder) {
		if len(kinds) > 0 {
			f.relations = append([]obo.RelationKind(nil), kinds...)
		}
	}
}

func New(opts ...Option) *Finder {
	f := &Finder{relations: obo.RelationKinds}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Relations returns the kinds followed by f.
func (f *Finder) Relations() []obo.RelationKind {
	return append([]obo.RelationKind(nil), f.relations...)
}

// Walk performs a breadth-first traversal from root and returns each reached
// term once, in the order it was first dequeued. A term is expanded only if
// it is present in g and has not been expanded before, so the walk
// terminates on cycles and visits O(terms + edges). Ids without a record in
// g, including root itself, are reported but contribute no edges.
func (f *Finder) Walk(root string, g *obo.Graph) []Step {
	queue := []Step{{ID: root}}
	visited := make(map[string]struct{})
	steps := make([]Step, 0)

	for head := 0; head < len(queue); head++ {
		node := queue[head]

		if _, seen := visited[node.ID]; seen {
			continue
		}

		if term, ok := g.Lookup(node.ID); ok {
			for _, target := range term.Targets(f.relations...) {
				queue = append(queue, Step{ID: target, Depth: node.Depth + 1})
			}
		}

		visited[node.ID] = struct{}{}
		steps = append(steps, node)
	}

	return steps
}

// Descendants returns the set of term ids reachable from root, root included.
func (f *Finder) Descendants(root string, g *obo.Graph) map[string]struct{} {
	steps := f.Walk(root, g)

	out := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		out[step.ID] = struct{}{}
	}
	return out
}

// Descendants returns every term reachable from root over all recognized
// relation kinds. The result always contains root, even when root is not a
// term in g.
func Descendants(root string, g *obo.Graph) map[string]struct{} {
	return New().Descendants(root, g)
}

// Sorted returns the ids in set in ascending order.
func Sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}
