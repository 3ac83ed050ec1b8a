// Package deanon implements the Bayesian deanonymization of an observed
// target genome against a labeled reference panel: score every pedigree
// member by summed log-probability of its IBD sharing with each labeled
// node under a fitted Distribution, and return the argmax's sibling group.
package deanon

import (
	"math"
	"sort"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/stats"
)

// BayesDeanonymize scores every pedigree member against an observed genome
// and returns the most probable individual's sibling group.
type BayesDeanonymize struct {
	population      *pedigree.Population
	distribution    *stats.Distribution
	altDistribution *stats.DistributionAlt
	cmConverter     *ibd.CmConverter
}

// NewBayesDeanonymize builds a deanonymizer over population, scoring
// against distribution's fitted pairs via cmConverter for cM lengths.
func NewBayesDeanonymize(population *pedigree.Population, distribution *stats.Distribution, cmConverter *ibd.CmConverter) *BayesDeanonymize {
	return &BayesDeanonymize{
		population:      population,
		distribution:    distribution,
		altDistribution: stats.NewDistributionAlt(distribution),
		cmConverter:     cmConverter,
	}
}

// Identify scores every pedigree member's summed log-probability of
// observing target's IBD sharing against every labeled node, and returns
// the sibling group of the argmax.
func (b *BayesDeanonymize) Identify(target *genome.Genome) []*pedigree.Node {
	labeledNodes := b.distribution.LabeledNodes
	shared := make([]float64, len(labeledNodes))
	for i, labeledID := range labeledNodes {
		labeled := &b.population.Members[labeledID]
		shared[i] = ibd.SharedSegmentLengthGenomes(target, labeled.Genome, b.cmConverter)
	}

	bestID := uint32(0)
	bestLogProb := math.Inf(-1)
	for i := range b.population.Members {
		node := &b.population.Members[i]
		var accum float64
		for j, labeledID := range labeledNodes {
			pair := pedigree.NodeIdPair{Labeled: labeledID, Unlabeled: node.ID}
			accum += b.distribution.GetLogProbability(shared[j], pair)
		}
		if accum > bestLogProb {
			bestLogProb = accum
			bestID = node.ID
		}
	}
	return siblingGroup(b.population, bestID)
}

// IdentifyAlt is Identify's O(L) per-candidate variant: it scores via
// DistributionAlt's pre-sorted per-unlabeled bucket merge instead of one
// map lookup per labeled node.
func (b *BayesDeanonymize) IdentifyAlt(target *genome.Genome) []*pedigree.Node {
	labeledNodes := b.distribution.LabeledNodes
	lengths := make([]stats.LabeledLength, len(labeledNodes))
	for i, labeledID := range labeledNodes {
		labeled := &b.population.Members[labeledID]
		shared := ibd.SharedSegmentLengthGenomes(target, labeled.Genome, b.cmConverter)
		lengths[i] = stats.LabeledLength{Labeled: labeledID, Length: shared}
	}
	sort.Slice(lengths, func(i, j int) bool { return lengths[i].Labeled < lengths[j].Labeled })

	bestID := uint32(0)
	bestLogProb := math.Inf(-1)
	for i := range b.population.Members {
		node := &b.population.Members[i]
		probs := b.altDistribution.GetLogProbabilities(node.ID, lengths)
		var accum float64
		for _, p := range probs {
			accum += p
		}
		if accum > bestLogProb {
			bestLogProb = accum
			bestID = node.ID
		}
	}
	return siblingGroup(b.population, bestID)
}

// siblingGroup returns every node sharing both parents with nodeID. If
// nodeID has no recorded parents, the node alone is returned: full
// siblings are genomically indistinguishable under this model, and a
// founder has no sibling set to resolve.
func siblingGroup(p *pedigree.Population, nodeID uint32) []*pedigree.Node {
	node := &p.Members[nodeID]
	if !node.HasParents() {
		return []*pedigree.Node{node}
	}
	mother := &p.Members[node.Mother]
	father := &p.Members[node.Father]

	inBoth := make(map[uint32]bool, len(father.Children))
	for _, id := range father.Children {
		inBoth[id] = true
	}
	var group []*pedigree.Node
	for _, id := range mother.Children {
		if inBoth[id] {
			group = append(group, &p.Members[id])
		}
	}
	return group
}
