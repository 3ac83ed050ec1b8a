package popgen

import (
	"testing"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/recomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecombinators() *recomb.RecombinatorPair {
	rows := make(map[uint32][]ibd.RateRow, len(genome.Chromosomes))
	for _, chrom := range genome.Chromosomes {
		rows[chrom] = []ibd.RateRow{
			{Bp: 0, RateCmPerMb: 0, CumulativeCm: 0},
			{Bp: 1000, RateCmPerMb: 0, CumulativeCm: 0},
		}
	}
	return &recomb.RecombinatorPair{
		Male:   recomb.NewRecombinator(rows, 1),
		Female: recomb.NewRecombinator(rows, 2),
	}
}

// recombiningPair builds recombinators over a synthetic uniform map with a
// mean of one crossover per chromosome per meiosis.
func recombiningPair(seed uint64) (*recomb.RecombinatorPair, map[uint32][]ibd.RateRow) {
	rows := make(map[uint32][]ibd.RateRow, len(genome.Chromosomes))
	for _, chrom := range genome.Chromosomes {
		rows[chrom] = []ibd.RateRow{
			{Bp: 0, RateCmPerMb: 100, CumulativeCm: 0},
			{Bp: 1000000, RateCmPerMb: 100, CumulativeCm: 100},
		}
	}
	return &recomb.RecombinatorPair{
		Male:   recomb.NewRecombinator(rows, seed),
		Female: recomb.NewRecombinator(rows, seed+1),
	}, rows
}

// A child inherits exactly one full haplotype from each parent, so across
// seeded simulation rounds the cM length shared with a parent equals the
// haploid map total, crossovers notwithstanding.
func TestParentChildSharedLengthIsHaploidTotal(t *testing.T) {
	recombinators, rows := recombiningPair(7)
	converter := ibd.NewCmConverter(rows)
	haploidTotal := 100.0 * float64(len(genome.Chromosomes))

	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 1, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 2, Generation: 1, Mother: 0, Father: 1, Twin: -1, SuspectedMother: 0, SuspectedFather: 1},
	}
	p := pedigree.NewPopulation(nodes)

	founders := genome.NewGenerator(recombinators.Male.ChromLengths())
	gen := NewGenerator(11)
	for iter := 0; iter < 50; iter++ {
		founders.Reset()
		CleanGenomes(p)
		gen.GenerateGenomes(p, founders, recombinators, true, 3)
		mother := p.Members[0].Genome
		child := p.Members[2].Genome
		shared := ibd.SharedSegmentLengthGenomes(mother, child, converter)
		assert.InDelta(t, haploidTotal, shared, 1e-6)
	}
}

func TestCleanGenomes(t *testing.T) {
	g := genome.Genome{}
	p := &pedigree.Population{Members: []pedigree.Node{{ID: 0, Genome: &g}}}
	CleanGenomes(p)
	assert.Nil(t, p.Members[0].Genome)
}

func TestGenerateGenomesFounderOnly(t *testing.T) {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
	}
	p := pedigree.NewPopulation(nodes)
	lengths := map[uint32]uint32{}
	for _, c := range genome.Chromosomes {
		lengths[c] = 1000
	}
	founders := genome.NewGenerator(lengths)
	gen := NewGenerator(1)
	gen.GenerateGenomes(p, founders, testRecombinators(), true, 3)
	require.NotNil(t, p.Members[0].Genome)
	assert.Len(t, p.Members[0].Genome.Mother.Founder, len(genome.Chromosomes))
}
