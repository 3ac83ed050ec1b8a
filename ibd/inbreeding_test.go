package ibd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeOfOverlap(t *testing.T) {
	regions := []Region{{1, 10}}
	assert.Equal(t, uint32(0), SizeOfOverlap(regions, Region{15, 20}))
	assert.Equal(t, uint32(6), SizeOfOverlap(regions, Region{2, 8}))
}

func TestSubtractRegion(t *testing.T) {
	got := SubtractRegion([]Region{{1, 10}}, Region{2, 8})
	assert.Equal(t, []Region{{1, 2}, {8, 10}}, got)
}

func TestSubtractRegionFullyCovered(t *testing.T) {
	got := SubtractRegion([]Region{{1, 10}}, Region{0, 20})
	assert.Empty(t, got)
}

func TestSubtractRegionDisjoint(t *testing.T) {
	got := SubtractRegion([]Region{{1, 10}}, Region{20, 30})
	assert.Equal(t, []Region{{1, 10}}, got)
}

func TestMergeOverlaps(t *testing.T) {
	a := []Region{{1, 2}, {5, 8}, {10, 15}, {20, 25}}
	b := []Region{{9, 18}}
	got := MergeOverlaps(a, b)
	assert.Equal(t, []Region{{1, 2}, {5, 8}, {9, 18}, {20, 25}}, got)
}

func TestMergeOverlapsEmptyInputs(t *testing.T) {
	assert.Nil(t, MergeOverlaps(nil, nil))
	assert.Equal(t, []Region{{1, 2}}, MergeOverlaps([]Region{{1, 2}}, nil))
}
