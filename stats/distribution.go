package stats

import (
	"math"
	"sort"

	"github.com/grailbio/genpriv/pedigree"
	"gonum.org/v1/gonum/stat/distuv"
)

// probabilityFloor is the minimum positive-length probability the hurdle
// model ever returns, so its log never diverges to -Inf.
const probabilityFloor = 1e-12

type paramsWithLog struct {
	gamma       HurdleGammaParams
	logZeroProb float64
}

func withLog(params HurdleGammaParams) paramsWithLog {
	return paramsWithLog{gamma: params, logZeroProb: math.Log(params.ZeroProb)}
}

// Distribution indexes a fitted HurdleGammaParams by (labeled, unlabeled)
// pair, falling back to a required cryptic distribution for pairs with no
// fit.
type Distribution struct {
	distributions map[pedigree.NodeIdPair]paramsWithLog
	cryptic       paramsWithLog
	LabeledNodes  []uint32
}

// NewDistribution builds a Distribution from a fitted-pair map, the
// catch-all cryptic distribution, and the labeled node id list.
func NewDistribution(distributions map[pedigree.NodeIdPair]HurdleGammaParams, cryptic HurdleGammaParams, labeledNodes []uint32) *Distribution {
	withLogs := make(map[pedigree.NodeIdPair]paramsWithLog, len(distributions))
	for key, params := range distributions {
		withLogs[key] = withLog(params)
	}
	nodes := make([]uint32, len(labeledNodes))
	copy(nodes, labeledNodes)
	return &Distribution{distributions: withLogs, cryptic: withLog(cryptic), LabeledNodes: nodes}
}

// GetProbability returns P(length | params) for the fitted (or cryptic)
// distribution of pair.
func (d *Distribution) GetProbability(length float64, pair pedigree.NodeIdPair) float64 {
	params, ok := d.distributions[pair]
	if !ok {
		params = d.cryptic
	}
	return gammaProb(length, params)
}

// GetLogProbability returns log P(length | params) for the fitted (or
// cryptic) distribution of pair.
func (d *Distribution) GetLogProbability(length float64, pair pedigree.NodeIdPair) float64 {
	params, ok := d.distributions[pair]
	if !ok {
		params = d.cryptic
	}
	return gammaLogProb(length, params)
}

func gammaProb(length float64, params paramsWithLog) float64 {
	if length == 0 {
		return params.gamma.ZeroProb
	}
	pdf := distuv.Gamma{Alpha: params.gamma.Shape, Beta: 1 / params.gamma.Scale}.Prob(length)
	prob := pdf * (1 - params.gamma.ZeroProb)
	if prob < probabilityFloor {
		prob = probabilityFloor
	}
	return prob
}

func gammaLogProb(length float64, params paramsWithLog) float64 {
	if length == 0 {
		return params.logZeroProb
	}
	return math.Log(gammaProb(length, params))
}

// labeledParams pairs a labeled node id with its fitted distribution,
// sorted by id within DistributionAlt's per-unlabeled bucket.
type labeledParams struct {
	labeled uint32
	params  paramsWithLog
}

// DistributionAlt re-indexes a Distribution by unlabeled id, each bucket
// holding its labeled-id/params pairs pre-sorted by labeled id: scoring an
// unlabeled candidate against a sorted (labeled, length) list is then a
// single merge instead of one hash lookup per labeled node.
type DistributionAlt struct {
	distributions map[uint32][]labeledParams
	cryptic       paramsWithLog
	LabeledNodes  []uint32
}

// NewDistributionAlt rebuilds d's pairwise distributions indexed by
// unlabeled id.
func NewDistributionAlt(d *Distribution) *DistributionAlt {
	buckets := make(map[uint32][]labeledParams)
	for key, params := range d.distributions {
		buckets[key.Unlabeled] = append(buckets[key.Unlabeled], labeledParams{labeled: key.Labeled, params: params})
	}
	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].labeled < bucket[j].labeled })
	}
	nodes := make([]uint32, len(d.LabeledNodes))
	copy(nodes, d.LabeledNodes)
	return &DistributionAlt{distributions: buckets, cryptic: d.cryptic, LabeledNodes: nodes}
}

// LabeledLength is one labeled node's observed shared length against a
// candidate unlabeled node, sorted by Labeled for GetLogProbabilities.
type LabeledLength struct {
	Labeled uint32
	Length  float64
}

// GetLogProbabilities scores unlabeled against every entry in lengths
// (which must be sorted by Labeled), using the fitted distribution when
// the pair has one and the cryptic distribution otherwise.
func (d *DistributionAlt) GetLogProbabilities(unlabeled uint32, lengths []LabeledLength) []float64 {
	bucket := d.distributions[unlabeled]
	distI := 0
	ret := make([]float64, 0, len(lengths))
	for _, ll := range lengths {
		for distI < len(bucket) && bucket[distI].labeled < ll.Labeled {
			distI++
		}
		if distI < len(bucket) && ll.Labeled == bucket[distI].labeled {
			ret = append(ret, gammaLogProb(ll.Length, bucket[distI].params))
			distI++
		} else {
			ret = append(ret, gammaLogProb(ll.Length, d.cryptic))
		}
	}
	return ret
}
