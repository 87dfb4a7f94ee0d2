package solver

import (
	"iter"
	"slices"

	"github.com/jacksmith/kex/internal/graph"
	ggraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// compatibilityGraph returns an undirected graph with one node per path,
// node ID = index into paths. Two paths are joined when they share no
// donor and no recipient, so they can be part of the same matching.
func compatibilityGraph(g *graph.Graph, paths []graph.PathWithScore) *simple.UndirectedGraph {
	type usage struct {
		donors     map[int]bool
		recipients map[int]bool
	}
	uses := make([]usage, len(paths))
	for i, p := range paths {
		u := usage{donors: make(map[int]bool), recipients: make(map[int]bool)}
		for _, d := range p.Path.Donors() {
			u.donors[d] = true
		}
		for _, pair := range g.Pairs(p.Path) {
			u.recipients[pair.Recipient] = true
		}
		uses[i] = u
	}

	disjoint := func(a, b usage) bool {
		for d := range a.donors {
			if b.donors[d] {
				return false
			}
		}
		for r := range a.recipients {
			if b.recipients[r] {
				return false
			}
		}
		return true
	}

	cg := simple.NewUndirectedGraph()
	for i := range paths {
		cg.AddNode(simple.Node(i))
	}
	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			if disjoint(uses[i], uses[j]) {
				cg.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return cg
}

// MaximalCliques lazily enumerates the maximal cliques of g with the
// Bron-Kerbosch algorithm using Tomita pivoting. Each clique is sorted by
// node ID. A node without neighbours is returned as a clique of its own;
// an empty graph has none.
// Enumeration stops as soon as the consumer stops ranging.
func MaximalCliques(g ggraph.Undirected) iter.Seq[[]int64] {
	return func(yield func([]int64) bool) {
		p := make(nodeSet)
		nodes := g.Nodes()
		for nodes.Next() {
			p[nodes.Node().ID()] = struct{}{}
		}
		if len(p) == 0 {
			return
		}
		bk := &bronKerbosch{
			g:          g,
			yield:      yield,
			neighbours: make(map[int64]nodeSet),
		}
		bk.expand(nil, p, make(nodeSet))
	}
}

type nodeSet map[int64]struct{}

func (s nodeSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s nodeSet) intersect(other nodeSet) nodeSet {
	out := make(nodeSet)
	for id := range s {
		if other.has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

func (s nodeSet) sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type bronKerbosch struct {
	g          ggraph.Undirected
	yield      func([]int64) bool
	neighbours map[int64]nodeSet
}

func (bk *bronKerbosch) adjacent(id int64) nodeSet {
	if n, ok := bk.neighbours[id]; ok {
		return n
	}
	n := make(nodeSet)
	to := bk.g.From(id)
	for to.Next() {
		n[to.Node().ID()] = struct{}{}
	}
	bk.neighbours[id] = n
	return n
}

// expand reports false once the consumer asked to stop.
func (bk *bronKerbosch) expand(r []int64, p, x nodeSet) bool {
	if len(p) == 0 {
		if len(x) > 0 {
			return true
		}
		clique := slices.Clone(r)
		slices.Sort(clique)
		return bk.yield(clique)
	}

	pivot := bk.pivot(p, x)
	skip := bk.adjacent(pivot)
	for _, v := range p.sorted() {
		if skip.has(v) {
			continue
		}
		nv := bk.adjacent(v)
		if !bk.expand(append(r, v), p.intersect(nv), x.intersect(nv)) {
			return false
		}
		delete(p, v)
		x[v] = struct{}{}
	}
	return true
}

// pivot picks the node of p or x with the most neighbours in p.
// Ties go to the smallest ID.
func (bk *bronKerbosch) pivot(p, x nodeSet) int64 {
	best, bestCount := int64(-1), -1
	for _, set := range []nodeSet{p, x} {
		for _, u := range set.sorted() {
			count := 0
			for v := range bk.adjacent(u) {
				if p.has(v) {
					count++
				}
			}
			if count > bestCount || (count == bestCount && u < best) {
				best, bestCount = u, count
			}
		}
	}
	return best
}
