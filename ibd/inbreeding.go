package ibd

import (
	"sort"

	"github.com/grailbio/genpriv/genome"
)

// MergeOverlaps sorts the union of a and b by start (then stop) and
// coalesces overlapping or touching regions.
func MergeOverlaps(a, b []Region) []Region {
	total := len(a) + len(b)
	if total == 0 {
		return nil
	}
	all := make([]Region, 0, total)
	all = append(all, a...)
	all = append(all, b...)
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].Stop < all[j].Stop
	})
	ret := make([]Region, 0, total)
	ret = append(ret, all[0])
	for _, cur := range all[1:] {
		top := &ret[len(ret)-1]
		if cur.Start <= top.Stop {
			if cur.Stop > top.Stop {
				top.Stop = cur.Stop
			}
		} else {
			ret = append(ret, cur)
		}
	}
	return ret
}

// SizeOfOverlap sums the overlap of query against every region in regions.
func SizeOfOverlap(regions []Region, query Region) uint32 {
	var overlap uint32
	for _, r := range regions {
		start, stop := r.Start, r.Stop
		if query.Start > start {
			start = query.Start
		}
		if query.Stop < stop {
			stop = query.Stop
		}
		if start < stop {
			overlap += stop - start
		}
	}
	return overlap
}

// SubtractRegion removes region from every interval in a (which must be
// sorted, disjoint), splitting any interval that only partially overlaps.
func SubtractRegion(a []Region, region Region) []Region {
	if len(a) == 0 {
		return a
	}
	startI := 0
	for startI < len(a) && a[startI].Stop <= region.Start {
		startI++
	}
	stopI := len(a) - 1
	for stopI >= 0 && region.Stop <= a[stopI].Start {
		stopI--
	}
	if stopI < startI {
		return a
	}
	var toInsert []Region
	if a[startI].Start < region.Start {
		toInsert = append(toInsert, Region{a[startI].Start, region.Start})
	}
	if region.Stop < a[stopI].Stop {
		toInsert = append(toInsert, Region{region.Stop, a[stopI].Stop})
	}
	out := make([]Region, 0, len(a)-(stopI-startI+1)+len(toInsert))
	out = append(out, a[:startI]...)
	out = append(out, toInsert...)
	out = append(out, a[stopI+1:]...)
	return out
}

// subtractRegions removes every region in b from a, in place logically.
func subtractRegions(a []Region, b []Region) []Region {
	for _, region := range b {
		a = SubtractRegion(a, region)
	}
	return a
}

// removeInbreeding resolves double-counted inbred regions: for each region
// both ibdMother and ibdFather were credited with, the overlap on each side
// must be equal (the same segment inherited once, counted from both
// parental paths); the side with the lesser-or-equal overlap has it
// removed so it is not counted twice.
func removeInbreeding(ibdMother, ibdFather []Region, inbreeding []Region) []Region {
	for _, region := range inbreeding {
		aOverlap := SizeOfOverlap(ibdMother, region)
		bOverlap := SizeOfOverlap(ibdFather, region)
		if aOverlap == 0 || bOverlap == 0 {
			continue
		}
		if aOverlap < bOverlap {
			ibdMother = SubtractRegion(ibdMother, region)
		} else {
			ibdFather = SubtractRegion(ibdFather, region)
		}
	}
	ret := make([]Region, 0, len(ibdMother)+len(ibdFather))
	ret = append(ret, ibdMother...)
	ret = append(ret, ibdFather...)
	return ret
}

// CommonSegmentsInbreeding computes IBD segments between a and b, correctly
// handling the case where either pedigree may be inbred: a segment that b
// inherited twice (once via each parent, from a single ancestor shared by
// b's own parents) must be counted only once.
func CommonSegmentsInbreeding(a, b *genome.Genome) []Region {
	ibdAMotherBMother := CommonHomologSegments(&a.Mother, &b.Mother)
	ibdAFatherBMother := CommonHomologSegments(&a.Father, &b.Mother)
	ibdBMother := MergeOverlaps(ibdAMotherBMother, ibdAFatherBMother)

	ibdAMotherBFather := CommonHomologSegments(&a.Mother, &b.Father)
	ibdAFatherBFather := CommonHomologSegments(&a.Father, &b.Father)
	ibdBFather := MergeOverlaps(ibdAMotherBFather, ibdAFatherBFather)

	bInbreed := CommonHomologSegments(&b.Mother, &b.Father)
	if len(bInbreed) == 0 {
		ret := make([]Region, 0, len(ibdBMother)+len(ibdBFather))
		ret = append(ret, ibdBMother...)
		ret = append(ret, ibdBFather...)
		return ret
	}
	aInbreed := CommonHomologSegments(&a.Mother, &a.Father)
	bInbreed = subtractRegions(bInbreed, aInbreed)
	return removeInbreeding(ibdBMother, ibdBFather, bInbreed)
}
