package genome

// Chromosomes lists the autosomes this simulation tracks, in the order
// genomes lay them out end to end in global base-pair coordinates.
var Chromosomes = []uint32{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22,
}

// Genome is the pair of haploid strands an individual carries. The two
// strands are not biologically ordered; Mother/Father is a naming
// convention fixed by which recombinator (male/female) produced it.
type Genome struct {
	Mother, Father Diploid
}

// Generator allocates founder genomes: a fresh Genome whose two strands
// each carry one newly-minted founder id across every chromosome interval.
// Founder ids are contiguous starting at 0 and reset by Reset, so founder
// provenance is comparable only within one simulation iteration.
type Generator struct {
	ChromosomeLengths map[uint32]uint32
	ChromStartOffset  map[uint32]uint32
	TotalLength       uint32

	nextID uint32
}

// NewGenerator builds a Generator from each chromosome's base-pair length,
// computing cumulative start offsets in Chromosomes order.
func NewGenerator(chromosomeLengths map[uint32]uint32) *Generator {
	startOffset := make(map[uint32]uint32, len(Chromosomes))
	var cum uint32
	for _, chrom := range Chromosomes {
		startOffset[chrom] = cum
		cum += chromosomeLengths[chrom]
	}
	return &Generator{
		ChromosomeLengths: chromosomeLengths,
		ChromStartOffset:  startOffset,
		TotalLength:       cum,
	}
}

// Reset restarts the founder id counter at 0. Called once per simulation
// iteration so founder provenance is comparable only within an iteration.
func (g *Generator) Reset() {
	g.nextID = 0
}

// Generate allocates a fresh founder Genome: two Diploids with one run per
// chromosome, each strand carrying one newly allocated founder id on every run.
func (g *Generator) Generate() Genome {
	starts := make([]uint32, len(Chromosomes))
	for i, chrom := range Chromosomes {
		starts[i] = g.ChromStartOffset[chrom]
	}
	motherID := g.nextID
	g.nextID++
	fatherID := g.nextID
	g.nextID++

	motherFounder := make([]uint32, len(Chromosomes))
	fatherFounder := make([]uint32, len(Chromosomes))
	for i := range Chromosomes {
		motherFounder[i] = motherID
		fatherFounder[i] = fatherID
	}
	motherStarts := make([]uint32, len(starts))
	copy(motherStarts, starts)
	return Genome{
		Mother: Diploid{Starts: motherStarts, Founder: motherFounder, End: g.TotalLength},
		Father: Diploid{Starts: starts, Founder: fatherFounder, End: g.TotalLength},
	}
}
