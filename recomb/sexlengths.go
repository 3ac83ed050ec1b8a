package recomb

// MaleCmLengths and FemaleCmLengths give each autosome's total sex-specific
// genetic length in centiMorgans (deCODE, doi:10.1038/ng917), used to
// rescale the HapMap (sex-averaged) genetic maps per sex.
var (
	MaleCmLengths = map[uint32]float64{
		1: 195.12, 2: 189.55, 3: 160.71, 4: 146.54, 5: 151.2, 6: 137.62,
		7: 128.35, 8: 107.94, 9: 117.25, 10: 133.89, 11: 109.36, 12: 135.54,
		13: 101.31, 14: 94.62, 15: 102.57, 16: 108.1, 17: 108.56, 18: 98.62,
		19: 92.64, 20: 74.72, 21: 47.31, 22: 48.96,
	}

	FemaleCmLengths = map[uint32]float64{
		1: 345.41, 2: 325.41, 3: 275.64, 4: 259.06, 5: 260.19, 6: 241.59,
		7: 230.33, 8: 209.94, 9: 198.2, 10: 218.13, 11: 195.53, 12: 206.64,
		13: 155.88, 14: 142.36, 15: 154.96, 16: 149.62, 17: 161.53, 18: 142.57,
		19: 126.82, 20: 121.97, 21: 76.4, 22: 82.76,
	}
)
