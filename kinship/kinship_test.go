package kinship

import (
	"testing"

	"github.com/grailbio/genpriv/pedigree"
	"github.com/stretchr/testify/assert"
)

func buildTrio() *pedigree.Population {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 1, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 2, Generation: 1, Mother: 0, Father: 1, Twin: -1, SuspectedMother: 0, SuspectedFather: 1},
	}
	return pedigree.NewPopulation(nodes)
}

func TestCoefficientFounderSelf(t *testing.T) {
	p := buildTrio()
	c := NewCalculator(p)
	assert.Equal(t, 0.5, c.Coefficient(0, 0))
}

func TestCoefficientUnrelatedFounders(t *testing.T) {
	p := buildTrio()
	c := NewCalculator(p)
	assert.Equal(t, 0.0, c.Coefficient(0, 1))
}

func TestCoefficientParentChild(t *testing.T) {
	p := buildTrio()
	c := NewCalculator(p)
	assert.Equal(t, 0.25, c.Coefficient(0, 2))
	assert.Equal(t, 0.25, c.Coefficient(1, 2))
}

func TestCoefficientChildSelf(t *testing.T) {
	p := buildTrio()
	c := NewCalculator(p)
	assert.Equal(t, 0.5, c.Coefficient(2, 2))
}

func TestCoefficientTwins(t *testing.T) {
	nodes := []pedigree.Node{
		{ID: 0, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 1, Generation: 0, Mother: -1, Father: -1, Twin: -1, SuspectedMother: -1, SuspectedFather: -1},
		{ID: 2, Generation: 1, Mother: 0, Father: 1, Twin: 3, SuspectedMother: 0, SuspectedFather: 1},
		{ID: 3, Generation: 1, Mother: 0, Father: 1, Twin: 2, SuspectedMother: 0, SuspectedFather: 1},
	}
	p := pedigree.NewPopulation(nodes)
	c := NewCalculator(p)
	assert.Equal(t, c.Coefficient(2, 2), c.Coefficient(2, 3))
}
