// Package genome implements the segmented-diploid genome representation
// described in the simulation design: each haploid strand is a run-length
// sequence over founder ids, preserving founder provenance across meiosis.
package genome

// Diploid is one haploid chromosome set, stored as a run-length partition
// of [Starts[0], End) keyed by founder id. Starts is strictly increasing;
// Founder[i] covers [Starts[i], Starts[i+1]), or [Starts[i], End) for the
// last run. Consecutive equal founders are allowed (NewSequence does not
// merge them); ibd.ConsolidateSequence is the only place that fuses runs.
type Diploid struct {
	Starts  []uint32
	Founder []uint32
	End     uint32
}

// Clone returns a deep copy of d.
func (d *Diploid) Clone() Diploid {
	starts := make([]uint32, len(d.Starts))
	copy(starts, d.Starts)
	founder := make([]uint32, len(d.Founder))
	copy(founder, d.Founder)
	return Diploid{Starts: starts, Founder: founder, End: d.End}
}

// searchLeft returns the leftmost index i such that toSearch[i] == find,
// or the insertion point if find is absent. toSearch must be sorted.
func searchLeft(toSearch []uint32, find uint32) int {
	lo, hi := 0, len(toSearch)
	for lo < hi {
		mid := (lo + hi) / 2
		if toSearch[mid] < find {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// NewSequence inserts a new breakpoint at every position in locations
// (sorted, ascending) into d, producing a Diploid whose Starts is the
// merge of d.Starts with locations. A location covered by an existing run
// inherits that run's founder. A trailing location equal to d.End is
// dropped, since it would add a zero-length terminal run.
func NewSequence(d *Diploid, locations []uint32) Diploid {
	if len(locations) == 0 {
		return d.Clone()
	}
	truncLocations := locations
	if locations[len(locations)-1] == d.End {
		truncLocations = locations[:len(locations)-1]
	}
	maxLen := len(locations) + len(d.Starts)
	newStarts := make([]uint32, 0, maxLen)
	newFounder := make([]uint32, 0, maxLen)

	locI, startsI := 0, 0
	for i := 0; i < maxLen; i++ {
		if locI >= len(truncLocations) {
			newStarts = append(newStarts, d.Starts[startsI:]...)
			newFounder = append(newFounder, d.Founder[startsI:]...)
			break
		}
		if startsI >= len(d.Starts) {
			remaining := truncLocations[locI:]
			newStarts = append(newStarts, remaining...)
			founder := newFounder[len(newFounder)-1]
			for range remaining {
				newFounder = append(newFounder, founder)
			}
			break
		}
		diploidLoc := d.Starts[startsI]
		breakLoc := truncLocations[locI]
		switch {
		case diploidLoc < breakLoc:
			newStarts = append(newStarts, diploidLoc)
			newFounder = append(newFounder, d.Founder[startsI])
			startsI++
		case diploidLoc > breakLoc:
			newStarts = append(newStarts, breakLoc)
			newFounder = append(newFounder, d.Founder[startsI-1])
			locI++
		default:
			newStarts = append(newStarts, diploidLoc)
			newFounder = append(newFounder, d.Founder[startsI])
			startsI++
			locI++
		}
	}
	return Diploid{Starts: newStarts, Founder: newFounder, End: d.End}
}
