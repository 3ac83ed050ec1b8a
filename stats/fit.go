package stats

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/simulate"
	"golang.org/x/exp/rand"
)

// FitDistributions reads a simulation run's binary sample file and fits a
// HurdleGammaParams to every (labeled, unlabeled) pair with enough nonzero
// samples. Pairs with too few nonzero samples, or whose fit produces NaN
// parameters, are dropped rather than failing the whole run. The per-pair
// fits are independent and fan out to a work-stealing pool; each fit's
// jitter RNG is seeded from src deterministically, in sorted pair order.
func FitDistributions(path string, src rand.Source) (map[pedigree.NodeIdPair]HurdleGammaParams, error) {
	samples, err := simulate.ReadSamples(path)
	if err != nil {
		return nil, err
	}
	pairs := make([]pedigree.NodeIdPair, 0, len(samples))
	for pair := range samples {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Labeled != pairs[j].Labeled {
			return pairs[i].Labeled < pairs[j].Labeled
		}
		return pairs[i].Unlabeled < pairs[j].Unlabeled
	})
	seeder := rand.New(src)
	seeds := make([]uint64, len(pairs))
	for i := range seeds {
		seeds[i] = seeder.Uint64()
	}

	type fitResult struct {
		params HurdleGammaParams
		ok     bool
	}
	fits := make([]fitResult, len(pairs))
	_ = traverse.Each(len(pairs), func(i int) error { // nolint: errcheck
		params, ok := FitHurdleGamma(samples[pairs[i]], rand.NewSource(seeds[i]))
		fits[i] = fitResult{params: params, ok: ok}
		return nil
	})

	results := make(map[pedigree.NodeIdPair]HurdleGammaParams, len(pairs))
	for i, pair := range pairs {
		if !fits[i].ok {
			continue
		}
		if fits[i].params.HasNaNParameters() {
			log.Error.Printf("stats: dropping NaN fit for pair %+v", pair)
			continue
		}
		results[pair] = fits[i].params
	}
	return results, nil
}

// FitCrypticLabeled is the catch-all distribution for (labeled, unlabeled)
// pairs with no fitted distribution: the cross-labeled IBD length observed
// among the labeled set itself, standing in for an unseen pair's true
// distribution. The estimator is not yet implemented upstream; until it
// is, these constants (fit from a reference run) are used instead.
func FitCrypticLabeled(related []pedigree.RelatedPair, labeled []uint32) HurdleGammaParams {
	return HurdleGammaParams{
		Shape:    1.1573974490526806,
		Scale:    12642827.473324005,
		ZeroProb: 0.9876864782229996,
	}
}
