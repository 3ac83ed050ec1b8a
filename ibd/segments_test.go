package ibd

import (
	"testing"

	"github.com/grailbio/genpriv/genome"
	"github.com/stretchr/testify/assert"
)

func TestCommonHomologSegmentsDistinctFounders(t *testing.T) {
	a := genome.Diploid{Starts: []uint32{0}, Founder: []uint32{1}, End: 10}
	b := genome.Diploid{Starts: []uint32{0}, Founder: []uint32{2}, End: 10}
	assert.Empty(t, CommonHomologSegments(&a, &b))
}

func TestCommonHomologSegmentsSelf(t *testing.T) {
	d := genome.Diploid{Starts: []uint32{0, 5}, Founder: []uint32{1, 2}, End: 10}
	got := CommonHomologSegments(&d, &d)
	assert.Equal(t, []Region{{0, 10}}, got)
}

func TestConsolidateSequence(t *testing.T) {
	in := []Region{{0, 2}, {2, 4}, {4, 8}, {8, 10}}
	assert.Equal(t, []Region{{0, 10}}, ConsolidateSequence(in))
}

func TestConsolidateSequenceIdempotent(t *testing.T) {
	in := []Region{{0, 2}, {2, 4}, {4, 8}, {8, 10}}
	once := ConsolidateSequence(in)
	twice := ConsolidateSequence(once)
	assert.Equal(t, once, twice)
	for i := 1; i < len(twice); i++ {
		assert.Less(t, twice[i-1].Stop, twice[i].Start)
	}
}

func TestCommonSegmentLengths(t *testing.T) {
	a := genome.Genome{
		Mother: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{1}, End: 10},
		Father: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{2}, End: 10},
	}
	b := genome.Genome{
		Mother: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{1}, End: 10},
		Father: genome.Diploid{Starts: []uint32{0}, Founder: []uint32{3}, End: 10},
	}
	got := CommonSegmentLengths(&a, &b)
	assert.ElementsMatch(t, []uint32{10}, got)
}
