package recomb

import "github.com/grailbio/genpriv/ibd"

// adjustCentimorgans scales every rate and cumulative-cM column in rows by
// multiplier, leaving base-pair positions untouched.
func adjustCentimorgans(rows []ibd.RateRow, multiplier float64) []ibd.RateRow {
	out := make([]ibd.RateRow, len(rows))
	for i, r := range rows {
		out[i] = ibd.RateRow{
			Bp:           r.Bp,
			RateCmPerMb:  r.RateCmPerMb * multiplier,
			CumulativeCm: r.CumulativeCm * multiplier,
		}
	}
	return out
}

// adjustChromosomes rescales every chromosome's cumulative cM column in
// chromData so its total matches sexLengths, preserving the HapMap
// recombination-rate shape.
func adjustChromosomes(chromData map[uint32][]ibd.RateRow, sexLengths map[uint32]float64) map[uint32][]ibd.RateRow {
	adjusted := make(map[uint32][]ibd.RateRow, len(sexLengths))
	for chrom, length := range sexLengths {
		rows := chromData[chrom]
		originalLength := rows[len(rows)-1].CumulativeCm
		ratio := length / originalLength
		adjusted[chrom] = adjustCentimorgans(rows, ratio)
	}
	return adjusted
}
