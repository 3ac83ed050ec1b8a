// Package kinship computes pairwise kinship coefficients over a pedigree,
// pruning recursion for pairs whose founder sets are disjoint.
package kinship

import (
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/simd"
)

// KinshipKey is the order-independent hash key for a pair of node ids:
// Lower is always the smaller of the two.
type KinshipKey struct {
	Lower, Upper uint32
}

// NewKinshipKey builds a KinshipKey from two ids in either order.
func NewKinshipKey(id1, id2 uint32) KinshipKey {
	if id1 < id2 {
		return KinshipKey{Lower: id1, Upper: id2}
	}
	return KinshipKey{Lower: id2, Upper: id1}
}

// Calculator computes recursive kinship coefficients, pruned by a
// precomputed founder-id set per node so unrelated pairs short-circuit to
// zero without recursing.
type Calculator struct {
	population *pedigree.Population
	founders   [][]uint32
}

// NewCalculator precomputes every node's sorted founder-id set. Ids in p
// must be dense [0, N) and sorted by ascending generation.
func NewCalculator(p *pedigree.Population) *Calculator {
	founders := make([][]uint32, len(p.Members))
	for i := range p.Members {
		founders[i] = FoundersID(p, &p.Members[i])
	}
	return &Calculator{population: p, founders: founders}
}

// Coefficient returns the kinship coefficient phi(id1, id2).
func (c *Calculator) Coefficient(id1, id2 uint32) float64 {
	return c.pruned(&c.population.Members[id1], &c.population.Members[id2])
}

// pruned mirrors the founder-pruned recursion: it tests founder-set
// intersection at every level before descending.
func (c *Calculator) pruned(n1, n2 *pedigree.Node) float64 {
	if !simd.NonzeroIntersection(c.founders[n1.ID], c.founders[n2.ID]) {
		return 0
	}
	if n1.ID == n2.ID {
		if n1.HasParents() {
			mother := &c.population.Members[n1.Mother]
			father := &c.population.Members[n1.Father]
			return 0.5 + 0.5*c.plain(mother, father)
		}
		return 0.5
	}
	if n1.Twin != -1 && uint32(n1.Twin) == n2.ID {
		return c.pruned(n1, n1)
	}

	lower, upper := n1, n2
	if upper.ID < lower.ID {
		lower, upper = upper, lower
	}
	if !upper.HasParents() {
		// Ids ascend with generation, so a founder (no parents) can only
		// share a founder with an equal-or-higher id; reaching here with
		// a nonempty intersection means the data violates that ordering.
		panic("kinship: related pair above a founder with no recorded parents")
	}
	mother := &c.population.Members[upper.Mother]
	father := &c.population.Members[upper.Father]
	return 0.5*c.pruned(lower, mother) + 0.5*c.pruned(lower, father)
}

// plain mirrors the unpruned recursion used once relatedness is already
// established (computing a node's own inbreeding coefficient from its
// parents), where the founder-set check would be redundant overhead.
func (c *Calculator) plain(n1, n2 *pedigree.Node) float64 {
	if n1.ID == n2.ID {
		if n1.HasParents() {
			mother := &c.population.Members[n1.Mother]
			father := &c.population.Members[n1.Father]
			return 0.5 + 0.5*c.plain(mother, father)
		}
		return 0.5
	}
	lower, upper := n1, n2
	if upper.ID < lower.ID {
		lower, upper = upper, lower
	}
	if !upper.HasParents() {
		return 0
	}
	mother := &c.population.Members[upper.Mother]
	father := &c.population.Members[upper.Father]
	return 0.5*c.plain(lower, mother) + 0.5*c.plain(lower, father)
}
