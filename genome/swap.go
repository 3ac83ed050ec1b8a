package genome

// SwapAtLocations interprets locations as an even list of [start, stop)
// pairs and returns a new Genome in which, within the union of those
// intervals, the mother and father strands are exchanged, and outside it
// they are preserved. Applying it twice to the same disjoint interval set
// is an involution (up to run consolidation), since swapping exchanges the
// two strands symmetrically.
func SwapAtLocations(g *Genome, locations []uint32) Genome {
	tempMother := NewSequence(&g.Mother, locations)
	tempFather := NewSequence(&g.Father, locations)

	newMother := make([]uint32, 0, len(tempMother.Starts)+len(tempFather.Starts))
	newFather := make([]uint32, 0, len(tempFather.Starts)+len(tempMother.Starts))
	newMotherFounder := make([]uint32, 0, cap(newMother))
	newFatherFounder := make([]uint32, 0, cap(newFather))

	motherPrev, fatherPrev := 0, 0
	for i := 0; i+1 < len(locations); i += 2 {
		start, stop := locations[i], locations[i+1]

		motherStartI := searchLeft(tempMother.Starts, start)
		motherStopI := searchLeft(tempMother.Starts, stop)
		fatherStartI := searchLeft(tempFather.Starts, start)
		fatherStopI := searchLeft(tempFather.Starts, stop)

		newMother = append(newMother, tempMother.Starts[motherPrev:motherStartI]...)
		newMother = append(newMother, tempFather.Starts[fatherStartI:fatherStopI]...)
		newMotherFounder = append(newMotherFounder, tempMother.Founder[motherPrev:motherStartI]...)
		newMotherFounder = append(newMotherFounder, tempFather.Founder[fatherStartI:fatherStopI]...)
		motherPrev = motherStopI

		newFather = append(newFather, tempFather.Starts[fatherPrev:fatherStartI]...)
		newFather = append(newFather, tempMother.Starts[motherStartI:motherStopI]...)
		newFatherFounder = append(newFatherFounder, tempFather.Founder[fatherPrev:fatherStartI]...)
		newFatherFounder = append(newFatherFounder, tempMother.Founder[motherStartI:motherStopI]...)
		fatherPrev = fatherStopI
	}
	newMother = append(newMother, tempMother.Starts[motherPrev:]...)
	newMotherFounder = append(newMotherFounder, tempMother.Founder[motherPrev:]...)
	newFather = append(newFather, tempFather.Starts[fatherPrev:]...)
	newFatherFounder = append(newFatherFounder, tempFather.Founder[fatherPrev:]...)

	return Genome{
		Mother: Diploid{Starts: newMother, Founder: newMotherFounder, End: tempMother.End},
		Father: Diploid{Starts: newFather, Founder: newFatherFounder, End: tempFather.End},
	}
}
