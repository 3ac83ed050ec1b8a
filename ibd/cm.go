package ibd

import (
	"fmt"
	"sort"

	"github.com/grailbio/genpriv/genome"
)

// RateRow is one row of a HapMap-format genetic map: the cumulative
// centiMorgan distance and per-Mb rate known at base pair Bp.
type RateRow struct {
	Bp           uint32
	RateCmPerMb  float64
	CumulativeCm float64
}

// CmConverter translates global base-pair intervals into centiMorgan
// lengths via a piecewise-linear map built by concatenating each
// chromosome's (bp, cM) table, in genome.Chromosomes order, into flat
// global-coordinate arrays.
type CmConverter struct {
	bases []uint32
	cm    []float64
	rates []float64
}

// NewCmConverter builds a converter from one parsed HapMap-format table per
// chromosome, keyed by chromosome number. Each table's rows must be sorted
// by Bp ascending, matching the file layout recomb.ReadFile parses.
func NewCmConverter(data map[uint32][]RateRow) *CmConverter {
	var bases []uint32
	var cm []float64
	var rates []float64
	var basesAccum uint32
	var cmAccum float64
	for _, chrom := range genome.Chromosomes {
		rows := data[chrom]
		for _, row := range rows {
			bases = append(bases, row.Bp+basesAccum)
			cm = append(cm, row.CumulativeCm+cmAccum)
			rates = append(rates, row.RateCmPerMb/1000000.0)
		}
		last := rows[len(rows)-1]
		basesAccum += last.Bp
		cmAccum += last.CumulativeCm
	}
	return &CmConverter{bases: bases, cm: cm, rates: rates}
}

// cumulativeCm returns, for each sorted location, the cumulative cM
// distance from the start of the map, interpolating linearly within the
// rate interval the location falls in.
func (c *CmConverter) cumulativeCm(locations []uint32) []float64 {
	lastBase := c.bases[len(c.bases)-1]
	lastCm := c.cm[len(c.cm)-1]
	ret := make([]float64, len(locations))
	for i, location := range locations {
		if location > lastBase {
			panic(fmt.Sprintf("ibd: location %d past end of genetic map (%d)", location, lastBase))
		}
		index := sort.Search(len(c.bases), func(j int) bool { return c.bases[j] >= location })
		if index == len(c.bases) {
			index = len(c.bases) - 1
		}
		cmDistance := c.cm[index]
		bpDifference := c.bases[index] - location
		var cmDifference float64
		if index != 0 {
			cmDifference = float64(bpDifference) * c.rates[index-1]
		}
		adjusted := cmDistance - cmDifference
		if adjusted < 0 || adjusted > lastCm {
			panic(fmt.Sprintf("ibd: cM distance %v out of range [0, %v] at location %d", adjusted, lastCm, location))
		}
		ret[i] = adjusted
	}
	return ret
}

// CmLengths converts each region's base-pair span to a centiMorgan length.
// Regions must have sorted, in-range endpoints.
func (c *CmConverter) CmLengths(regions []Region) []float64 {
	starts := make([]uint32, len(regions))
	stops := make([]uint32, len(regions))
	for i, r := range regions {
		starts[i] = r.Start
		stops[i] = r.Stop
	}
	cmStarts := c.cumulativeCm(starts)
	cmStops := c.cumulativeCm(stops)
	out := make([]float64, len(regions))
	for i := range regions {
		out[i] = cmStops[i] - cmStarts[i]
	}
	return out
}

// SharedSegmentLengthGenomes returns the total cM length IBD between a and
// b, accounting for inbreeding in either pedigree.
func SharedSegmentLengthGenomes(a, b *genome.Genome, c *CmConverter) float64 {
	segments := CommonSegmentsInbreeding(a, b)
	var total float64
	for _, length := range c.CmLengths(segments) {
		total += length
	}
	return total
}
