// Package pedigree represents a simulated family tree: a dense-id arena of
// Nodes with owning child links and non-owning parent back-references (by
// id, not pointer), avoiding the reference-cycle bookkeeping a pointer-based
// tree would require.
package pedigree

import "github.com/grailbio/genpriv/genome"

// Sex is the biological sex of a pedigree member, which selects the
// recombinator used when generating its gametes.
type Sex int

const (
	Female Sex = iota
	Male
)

// noParent marks an absent mother/father/twin back-reference. Ids are dense
// non-negative, so -1 is never a legitimate node id.
const noParent = -1

// Node is one member of the pedigree. Parent references are ids into the
// owning Population's Members slice; Children is the owning list of a
// node's direct children. Genome is populated by popgen.GenerateGenomes and
// cleared by popgen.CleanGenomes between simulation iterations.
type Node struct {
	ID         uint32
	Sex        Sex
	Generation uint32

	Mother, Father                   int32 // -1 if absent
	SuspectedMother, SuspectedFather int32 // -1 if absent
	Twin                             int32 // -1 if absent

	Children []uint32

	Genome *genome.Genome
}

func newNode(id uint32) Node {
	return Node{
		ID:              id,
		Mother:          noParent,
		Father:          noParent,
		SuspectedMother: noParent,
		SuspectedFather: noParent,
		Twin:            noParent,
	}
}

// HasParents reports whether n has both truth-pedigree parents recorded.
func (n *Node) HasParents() bool {
	return n.Mother != noParent && n.Father != noParent
}

// HasSuspectedParents reports whether n has both suspected-pedigree parents
// recorded; used when simulating under a mis-stated pedigree.
func (n *Node) HasSuspectedParents() bool {
	return n.SuspectedMother != noParent && n.SuspectedFather != noParent
}

// generationBucket is one generation's worth of Population members, in id order.
type generationBucket struct {
	Members []uint32
}

// Population is the whole pedigree: a dense-id arena plus a generation
// index for the top-down walk popgen.GenerateGenomes performs.
type Population struct {
	Members     []Node
	Generations []generationBucket
}

// NewPopulation builds a Population from nodes already sorted by ascending
// generation and assigned dense ids [0, len(nodes)).
func NewPopulation(nodes []Node) *Population {
	maxGen := uint32(0)
	for i := range nodes {
		if nodes[i].Generation > maxGen {
			maxGen = nodes[i].Generation
		}
	}
	p := &Population{
		Members:     nodes,
		Generations: make([]generationBucket, maxGen+1),
	}
	for i := range nodes {
		g := nodes[i].Generation
		p.Generations[g].Members = append(p.Generations[g].Members, nodes[i].ID)
	}
	for i := range nodes {
		if nodes[i].Mother != noParent {
			m := &p.Members[nodes[i].Mother]
			m.Children = append(m.Children, nodes[i].ID)
		}
		if nodes[i].Father != noParent {
			f := &p.Members[nodes[i].Father]
			f.Children = append(f.Children, nodes[i].ID)
		}
	}
	return p
}

// NodeIdPair is the hash key for per-(labeled, unlabeled) distributions.
type NodeIdPair struct {
	Labeled, Unlabeled uint32
}

// RelatedPair names one (labeled, unlabeled) pair the simulation driver
// should accumulate shared-length samples for.
type RelatedPair struct {
	Labeled, Unlabeled uint32
}
