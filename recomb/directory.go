package recomb

// RecombinatorsFromDirectory builds the male and female Recombinator from
// a directory of HapMap genetic_map_chr{1..22}_b36.txt files, scaling each
// sex's chromosome cM totals to MaleCmLengths/FemaleCmLengths. seed seeds
// the male recombinator's RNG; seed+1 seeds the female's, so the pair is
// reproducible from a single simulation seed.
func RecombinatorsFromDirectory(directory string, seed uint64) (*RecombinatorPair, error) {
	chromData, err := ReadDirectory(directory)
	if err != nil {
		return nil, err
	}
	male := adjustChromosomes(chromData, MaleCmLengths)
	female := adjustChromosomes(chromData, FemaleCmLengths)
	return &RecombinatorPair{
		Male:   NewRecombinator(male, seed),
		Female: NewRecombinator(female, seed+1),
	}, nil
}
