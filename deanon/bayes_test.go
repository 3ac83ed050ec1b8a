package deanon

import (
	"testing"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/stats"
	"github.com/stretchr/testify/assert"
)

func flatCmConverter(t *testing.T) *ibd.CmConverter {
	rows := make(map[uint32][]ibd.RateRow, len(genome.Chromosomes))
	for _, chrom := range genome.Chromosomes {
		rows[chrom] = []ibd.RateRow{
			{Bp: 0, RateCmPerMb: 1, CumulativeCm: 0},
			{Bp: 1000, RateCmPerMb: 1, CumulativeCm: 1},
		}
	}
	return ibd.NewCmConverter(rows)
}

func founderGenome(id uint32) *genome.Genome {
	starts := []uint32{0}
	founder := []uint32{id}
	d := genome.Diploid{Starts: starts, Founder: founder, End: 1000 * uint32(len(genome.Chromosomes))}
	return &genome.Genome{Mother: d, Father: d}
}

func TestIdentifyPicksExactMatch(t *testing.T) {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1, Genome: founderGenome(0)},
		{ID: 1, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1, Genome: founderGenome(1)},
	}
	population := pedigree.NewPopulation(nodes)

	fitted := map[pedigree.NodeIdPair]stats.HurdleGammaParams{
		{Labeled: 0, Unlabeled: 0}: {ZeroProb: 0.1, Shape: 2, Scale: 3000},
		{Labeled: 0, Unlabeled: 1}: {ZeroProb: 0.99, Shape: 2, Scale: 3000},
	}
	cryptic := stats.HurdleGammaParams{ZeroProb: 0.999, Shape: 1, Scale: 1}
	dist := stats.NewDistribution(fitted, cryptic, []uint32{0})

	b := NewBayesDeanonymize(population, dist, flatCmConverter(t))
	target := founderGenome(0) // full identity match with node 0's own founder genome
	group := b.Identify(target)
	assert.Len(t, group, 1)
	assert.Equal(t, uint32(0), group[0].ID)
}

func TestSiblingGroupReturnsAllSharedChildren(t *testing.T) {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 1, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 2, Generation: 1, Mother: 0, Father: 1, Twin: -1, SuspectedMother: 0, SuspectedFather: 1},
		{ID: 3, Generation: 1, Mother: 0, Father: 1, Twin: -1, SuspectedMother: 0, SuspectedFather: 1},
	}
	population := pedigree.NewPopulation(nodes)

	group := siblingGroup(population, 2)
	ids := make([]uint32, len(group))
	for i, n := range group {
		ids[i] = n.ID
	}
	assert.ElementsMatch(t, []uint32{2, 3}, ids)
}

func TestSiblingGroupFounderReturnsItself(t *testing.T) {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
	}
	population := pedigree.NewPopulation(nodes)
	group := siblingGroup(population, 0)
	assert.Len(t, group, 1)
	assert.Equal(t, uint32(0), group[0].ID)
}
