package recomb

import (
	"strings"
	"testing"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneChromData() map[uint32][]ibd.RateRow {
	data := make(map[uint32][]ibd.RateRow, len(genome.Chromosomes))
	for _, chrom := range genome.Chromosomes {
		data[chrom] = []ibd.RateRow{
			{Bp: 0, RateCmPerMb: 1, CumulativeCm: 0},
			{Bp: 1000000, RateCmPerMb: 1, CumulativeCm: 1},
		}
	}
	return data
}

func TestRecombinationNoCrossoversReturnsSameGenome(t *testing.T) {
	data := oneChromData()
	// Zero genetic length means the binomial crossover rate is exactly 0,
	// so no loci are ever drawn regardless of seed.
	for chrom := range data {
		data[chrom][1].CumulativeCm = 0
	}
	r := NewRecombinator(data, 1)
	gen := genome.NewGenerator(func() map[uint32]uint32 {
		m := make(map[uint32]uint32, len(genome.Chromosomes))
		for _, c := range genome.Chromosomes {
			m[c] = 1000000
		}
		return m
	}())
	g := gen.Generate()
	got := r.Recombination(&g)
	assert.Equal(t, g.Mother.Founder, got.Mother.Founder)
	assert.Equal(t, g.Father.Founder, got.Father.Founder)
}

func TestReadFileParsesHapMapRows(t *testing.T) {
	contents := `position COMBINED_rate(cM/Mb) Genetic_Map(cM)
72434 0.1095 0.000000
78032 0.0800 0.000613
554461 0.1000 0.038710
`
	rows, err := ReadFile(strings.NewReader(contents))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ibd.RateRow{Bp: 72434, RateCmPerMb: 0.1095, CumulativeCm: 0}, rows[0])
	assert.Equal(t, uint32(554461), rows[2].Bp)
	assert.InDelta(t, 0.038710, rows[2].CumulativeCm, 1e-12)
}

func TestReadFileRejectsMalformedRow(t *testing.T) {
	contents := "position rate cm\n123 not-a-number 0.5\n"
	_, err := ReadFile(strings.NewReader(contents))
	require.Error(t, err)
}

func TestAdjustChromosomesRescalesTotals(t *testing.T) {
	data := oneChromData()
	adjusted := adjustChromosomes(data, map[uint32]float64{1: 2.0})
	rows := adjusted[1]
	assert.InDelta(t, 2.0, rows[len(rows)-1].CumulativeCm, 1e-12)
	// bp positions are untouched by the rescale
	assert.Equal(t, data[1][1].Bp, rows[1].Bp)
}

func TestRecombinatorsFromDirectoryMissing(t *testing.T) {
	_, err := RecombinatorsFromDirectory("/nonexistent/path/xyz", 1)
	require.Error(t, err)
}
