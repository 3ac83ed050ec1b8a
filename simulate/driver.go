package simulate

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/popgen"
	"github.com/grailbio/genpriv/recomb"
)

// Driver owns every component the per-iteration simulation loop needs: the
// pedigree, the pairs to score, the founder/recombination generators, the cM
// converter, and the serializer each iteration's samples are committed to.
type Driver struct {
	Population    *pedigree.Population
	Pairs         []pedigree.RelatedPair
	Founders      *genome.Generator
	Recombinators *recomb.RecombinatorPair
	CmConverter   *ibd.CmConverter
	Generator     *popgen.Generator
	Serializer    *Serializer

	// KeepLast bounds genome retention to this many trailing generations.
	KeepLast uint32
}

// Run executes numIterations of the state machine described by the driver:
// GeneratingGenomes, Scoring (fanned out to a work-stealing pool sized to
// the CPU count), then Serializing. An error in scoring or flushing aborts
// the run immediately; the failing iteration's block is not written, since
// Flush is the only commit point.
func (d *Driver) Run(numIterations int) error {
	shared := make([]float64, len(d.Pairs))
	for iter := 0; iter < numIterations; iter++ {
		d.Founders.Reset()
		popgen.CleanGenomes(d.Population)
		d.Generator.GenerateGenomes(d.Population, d.Founders, d.Recombinators, true, d.KeepLast)

		err := traverse.Each(len(d.Pairs), func(i int) error {
			pair := d.Pairs[i]
			labeled := &d.Population.Members[pair.Labeled]
			unlabeled := &d.Population.Members[pair.Unlabeled]
			shared[i] = ibd.SharedSegmentLengthGenomes(labeled.Genome, unlabeled.Genome, d.CmConverter)
			return nil
		})
		if err != nil {
			return errors.E(err, "simulate: scoring phase failed")
		}

		for i, pair := range d.Pairs {
			d.Serializer.Insert(pair.Labeled, pair.Unlabeled, shared[i])
		}
		if err := d.Serializer.Flush(); err != nil {
			return err
		}
	}
	return nil
}
