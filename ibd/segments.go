// Package ibd computes identical-by-descent segments shared between
// genomes: the intervals co-inherited from a common founder, with an
// inbreeding-aware variant, and the centiMorgan lengths of those intervals.
package ibd

import "github.com/grailbio/genpriv/genome"

// Region is a half-open base-pair interval [Start, Stop).
type Region struct {
	Start, Stop uint32
}

// CommonHomologSegments merge-walks two run-length diploid strands and
// emits the overlap interval wherever both strands cover a position with
// the same founder id. Adjacent emitted intervals that touch are fused by
// ConsolidateSequence, since the founder-equality test is per-run and
// consecutive runs may both match.
func CommonHomologSegments(a, b *genome.Diploid) []Region {
	var shared []Region
	indexA, indexB := 0, 0
	startsA, startsB := a.Starts, b.Starts
	founderA, founderB := a.Founder, b.Founder

	for indexA < len(startsA) && indexB < len(startsB) {
		aStart := startsA[indexA]
		aStop := a.End
		if indexA+1 < len(startsA) {
			aStop = startsA[indexA+1]
		}
		aID := founderA[indexA]

		bStart := startsB[indexB]
		bStop := b.End
		if indexB+1 < len(startsB) {
			bStop = startsB[indexB+1]
		}
		bID := founderB[indexB]

		if aID == bID {
			start := aStart
			if bStart > start {
				start = bStart
			}
			stop := aStop
			if bStop < stop {
				stop = bStop
			}
			shared = append(shared, Region{start, stop})
		}
		switch {
		case aStop == bStop:
			indexA++
			indexB++
		case aStop > bStop:
			indexB++
		default:
			indexA++
		}
	}
	if len(shared) <= 1 {
		return shared
	}
	return ConsolidateSequence(shared)
}

// ConsolidateSequence fuses adjacent regions whose endpoints touch
// (prev.Stop == next.Start). It is idempotent and its output always
// satisfies prev.Stop < next.Start.
func ConsolidateSequence(sequence []Region) []Region {
	consolidated := make([]Region, 0, len(sequence))
	i, j := 0, 1
	for j < len(sequence) {
		if sequence[j-1].Stop != sequence[j].Start {
			consolidated = append(consolidated, Region{sequence[i].Start, sequence[j-1].Stop})
			i = j
		}
		j++
	}
	consolidated = append(consolidated, Region{sequence[i].Start, sequence[j-1].Stop})
	return consolidated
}

func lengths(segments []Region) []uint32 {
	out := make([]uint32, len(segments))
	for i, s := range segments {
		out[i] = s.Stop - s.Start
	}
	return out
}

// CommonSegmentLengths returns the bp lengths of IBD segments from all four
// cross-pairings of a and b's strands. Appropriate only for the non-inbred
// case; CommonSegmentsInbreeding is authoritative when either pedigree may
// be inbred.
func CommonSegmentLengths(a, b *genome.Genome) []uint32 {
	var ret []uint32
	ret = append(ret, lengths(CommonHomologSegments(&a.Mother, &b.Mother))...)
	ret = append(ret, lengths(CommonHomologSegments(&a.Father, &b.Mother))...)
	ret = append(ret, lengths(CommonHomologSegments(&a.Mother, &b.Father))...)
	ret = append(ret, lengths(CommonHomologSegments(&a.Father, &b.Father))...)
	return ret
}
