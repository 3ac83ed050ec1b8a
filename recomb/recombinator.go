package recomb

import (
	"sort"

	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// chromRecombData is one chromosome's recombination-rate table, sex
// adjusted, expressed as parallel arrays so a draw's cM position can be
// binary-searched into a base-pair interval.
type chromRecombData struct {
	numBases         uint32
	numCentimorgans  float64
	endPoints        []float64 // cumulative cM reached at the end of each rate interval
	rangeStarts      []uint32  // interval [rangeStarts[i], rangeStops[i]) in bp
	rangeStops       []uint32
	chromStartOffset uint32
}

// Recombinator draws and applies crossover events for one sex's meiosis.
// It is not safe for concurrent use: popgen's GenerateGenomes runs it
// single-threaded, matching the stateful RNG it owns.
type Recombinator struct {
	chromosomes map[uint32]*chromRecombData
	src         rand.Source
}

// RecombinatorPair holds the male and female Recombinator built from a
// shared HapMap genetic map, scaled to each sex's total cM length.
type RecombinatorPair struct {
	Male   *Recombinator
	Female *Recombinator
}

// NewRecombinator builds a Recombinator from one genetic map table per
// chromosome (already sex-adjusted), seeding its crossover RNG from seed.
func NewRecombinator(recombinationData map[uint32][]ibd.RateRow, seed uint64) *Recombinator {
	chromosomes := make(map[uint32]*chromRecombData, len(genome.Chromosomes))
	var cumBases uint32
	for _, chrom := range genome.Chromosomes {
		data := recombinationData[chrom]
		last := data[len(data)-1]
		endPoints := make([]float64, 0, len(data)-1)
		rangeStarts := make([]uint32, 0, len(data)-1)
		rangeStops := make([]uint32, 0, len(data)-1)
		for i := 0; i < len(data)-1; i++ {
			endPoints = append(endPoints, data[i+1].CumulativeCm)
			rangeStarts = append(rangeStarts, data[i].Bp)
			rangeStops = append(rangeStops, data[i+1].Bp)
		}
		chromosomes[chrom] = &chromRecombData{
			numBases:         last.Bp,
			numCentimorgans:  last.CumulativeCm,
			endPoints:        endPoints,
			rangeStarts:      rangeStarts,
			rangeStops:       rangeStops,
			chromStartOffset: cumBases,
		}
		cumBases += last.Bp
	}
	return &Recombinator{chromosomes: chromosomes, src: rand.NewSource(seed)}
}

// Reseed replaces the Recombinator's crossover RNG, for deterministic tests.
func (r *Recombinator) Reseed(seed uint64) {
	r.src = rand.NewSource(seed)
}

// ChromStartOffset returns the global base-pair offset chromNum starts at.
func (r *Recombinator) ChromStartOffset(chromNum uint32) uint32 {
	return r.chromosomes[chromNum].chromStartOffset
}

// ChromLengths returns each chromosome's base-pair length, as read from
// the genetic map; callers use this to size a founder genome.Generator to
// match the recombination tables it will be crossed over against.
func (r *Recombinator) ChromLengths() map[uint32]uint32 {
	lengths := make(map[uint32]uint32, len(r.chromosomes))
	for chrom, data := range r.chromosomes {
		lengths[chrom] = data.numBases
	}
	return lengths
}

// crossoverLocations draws this meiosis's crossover base-pair positions for
// one chromosome: the event count is binomial in the chromosome's bp
// length at rate (cM/100)/num_bases, the positions are uniform in cM-space
// then mapped to bp via linear interpolation within their rate interval.
func (r *Recombinator) crossoverLocations(chromNum uint32) []uint32 {
	chrom := r.chromosomes[chromNum]
	p := (chrom.numCentimorgans * 0.01) / float64(chrom.numBases)
	binom := distuv.Binomial{N: float64(chrom.numBases), P: p, Src: r.src}
	numEvents := int(binom.Rand())
	if numEvents == 0 {
		return nil
	}
	uniform := distuv.Uniform{Min: 0, Max: chrom.numCentimorgans, Src: r.src}
	locations := make([]float64, numEvents)
	for i := range locations {
		locations[i] = uniform.Rand()
	}
	sort.Float64s(locations)

	loci := make([]uint32, 0, numEvents)
	for _, location := range locations {
		index := sort.Search(len(chrom.endPoints), func(i int) bool { return chrom.endPoints[i] >= location })
		if index == len(chrom.endPoints) {
			index = len(chrom.endPoints) - 1
		}
		start, stop := chrom.rangeStarts[index], chrom.rangeStops[index]
		var startPoint float64
		if index != 0 {
			startPoint = chrom.endPoints[index-1]
		}
		endPoint := chrom.endPoints[index]
		fractionIn := (location - startPoint) / (endPoint - startPoint)
		spot := uint32(float64(stop-start)*fractionIn) + start
		if len(loci) == 0 || loci[len(loci)-1] != spot {
			loci = append(loci, spot)
		}
	}
	return loci
}

// Recombination returns g with crossovers applied to both strands: for each
// chromosome independently, it draws crossover loci and applies them with
// genome.SwapAtLocations in global coordinates. Choosing which strand goes
// into the gamete is left to the caller.
func (r *Recombinator) Recombination(g *genome.Genome) genome.Genome {
	globalLocations := make([]uint32, 0, 30)
	for _, chromNum := range genome.Chromosomes {
		chrom := r.chromosomes[chromNum]
		locations := r.crossoverLocations(chromNum)
		if len(locations)%2 == 1 {
			locations = append(locations, chrom.numBases)
		}
		for _, location := range locations {
			globalLocations = append(globalLocations, location+chrom.chromStartOffset)
		}
	}
	return genome.SwapAtLocations(g, globalLocations)
}
