package ibd

import (
	"testing"

	"github.com/grailbio/genpriv/genome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformRateConverter builds a converter where every chromosome spans
// chromBp bases at a constant rate totaling chromCm centiMorgans.
func uniformRateConverter(chromBp uint32, chromCm float64) *CmConverter {
	rows := make(map[uint32][]RateRow, len(genome.Chromosomes))
	rate := chromCm / float64(chromBp) * 1000000.0
	for _, chrom := range genome.Chromosomes {
		rows[chrom] = []RateRow{
			{Bp: 0, RateCmPerMb: rate, CumulativeCm: 0},
			{Bp: chromBp, RateCmPerMb: rate, CumulativeCm: chromCm},
		}
	}
	return NewCmConverter(rows)
}

func TestCmLengthsFullChromosome(t *testing.T) {
	c := uniformRateConverter(1000, 2.0)
	got := c.CmLengths([]Region{{0, 1000}})
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0], 1e-9)
}

func TestCmLengthsUniformRateIsProportional(t *testing.T) {
	c := uniformRateConverter(1000, 2.0)
	got := c.CmLengths([]Region{{250, 750}})
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0], 1e-9)
}

func TestCmLengthsMonotonic(t *testing.T) {
	c := uniformRateConverter(1000, 2.0)
	// Within one chromosome, a longer bp interval is never shorter in cM.
	prev := -1.0
	for stop := uint32(100); stop <= 1000; stop += 100 {
		got := c.CmLengths([]Region{{0, stop}})
		require.Len(t, got, 1)
		assert.GreaterOrEqual(t, got[0], prev)
		prev = got[0]
	}
}

func TestCmLengthsSpansChromosomeBoundary(t *testing.T) {
	c := uniformRateConverter(1000, 2.0)
	// [500, 1500) covers the second half of chromosome 1 and the first
	// half of chromosome 2: one cM from each.
	got := c.CmLengths([]Region{{500, 1500}})
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0], 1e-9)
}

func TestSharedSegmentLengthGenomesIdenticalFounders(t *testing.T) {
	c := uniformRateConverter(1000, 2.0)
	end := uint32(1000 * len(genome.Chromosomes))
	a := genome.Genome{
		Mother: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{1}, End: end},
		Father: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{2}, End: end},
	}
	b := genome.Genome{
		Mother: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{1}, End: end},
		Father: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{3}, End: end},
	}
	// a and b share one full haplotype: the whole map's 44 cM, once.
	got := SharedSegmentLengthGenomes(&a, &b, c)
	assert.InDelta(t, 2.0*float64(len(genome.Chromosomes)), got, 1e-9)
}
