package cmd

import (
	"github.com/grailbio/genpriv/genome"
	"github.com/grailbio/genpriv/ibd"
	"github.com/grailbio/genpriv/recomb"
)

// genomeGenerator sizes a founder genome.Generator to the chromosome
// lengths recombinators was built from, so founder genomes and the
// recombination tables they're crossed over against always agree on
// chromosome extents.
func genomeGenerator(recombinators *recomb.RecombinatorPair) *genome.Generator {
	return genome.NewGenerator(recombinators.Male.ChromLengths())
}

// cmConverterFromRows builds a CmConverter from the unadjusted (not
// sex-scaled) genetic map rows, matching the original tool's CmConverter
// construction directly from the recombination-map directory.
func cmConverterFromRows(rows map[uint32][]ibd.RateRow) *ibd.CmConverter {
	return ibd.NewCmConverter(rows)
}
