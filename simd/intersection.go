// Package simd implements fast "do these sorted sets share any element"
// tests over founder-id arrays, in the style of the SSE set-intersection
// trick from https://highlyscalable.wordpress.com/2012/06/05/fast-intersection-sorted-lists-sse/
// but expressed in pure Go: a 4-lane block compares all-pairs before
// falling back to a linear merge for the tail.
package simd

// NonzeroIntersection reports whether the sorted uint32 slices a and b
// share any element. It processes 4-element blocks from each side,
// comparing every element of one block against every element of the
// other (a loop-unrolled equivalent of the cyclic-shift compare a SIMD
// version would do with shuffle instructions), then advances whichever
// side's block ends in the smaller value. The tail below 4 elements on
// either side falls back to a linear two-pointer merge.
func NonzeroIntersection(a, b []uint32) bool {
	i, j := 0, 0
	aBlocked := (len(a) / 4) * 4
	bBlocked := (len(b) / 4) * 4

	for i < aBlocked && j < bBlocked {
		if blockIntersects(a[i:i+4], b[j:j+4]) {
			return true
		}
		if a[i+3] < b[j+3] {
			i += 4
		} else {
			j += 4
		}
	}
	return linearIntersection(a[i:], b[j:])
}

// blockIntersects reports whether any of the 4 elements of a equals any of
// the 4 elements of b. Both slices must have length 4.
func blockIntersects(a, b []uint32) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// linearIntersection is the two-pointer merge fallback for tails too short
// to form a full 4-element block.
func linearIntersection(a, b []uint32) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			return true
		}
	}
	return false
}
