// Package stats fits and evaluates the hurdle-gamma distributions the
// simulation driver's shared-length samples are summarized into: a point
// mass at zero plus a continuous gamma for positive values.
package stats

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// sufficientDataPoints is the minimum nonzero-sample count FitHurdleGamma
// requires before attempting a fit.
const sufficientDataPoints = 5

// newtonTolerance bounds the shape-parameter Newton iteration's step size.
const newtonTolerance = 5e-6

// GammaParams is a fitted gamma distribution's shape/scale pair.
type GammaParams struct {
	Shape, Scale float64
}

// HurdleGammaParams is a two-part distribution: a point mass at zero
// (ZeroProb) plus a gamma(Shape, Scale) for positive values.
type HurdleGammaParams struct {
	ZeroProb, Shape, Scale float64
}

// HasNaNParameters reports whether any of params's fields are NaN.
func (params HurdleGammaParams) HasNaNParameters() bool {
	return math.IsNaN(params.ZeroProb) || math.IsNaN(params.Shape) || math.IsNaN(params.Scale)
}

// FitGamma fits a gamma distribution to data by MLE: a closed-form starting
// shape from the log-mean/mean-log relation, refined by Newton iteration on
// the digamma/trigamma equation until the step size is below
// newtonTolerance. Each sample is perturbed by a small uniform jitter
// before taking logs, so a sample of exactly zero (which the hurdle model
// routes around FitGamma entirely, but which can still arise from floating
// point summation) never produces -Inf. src seeds the jitter draw.
func FitGamma(data []float64, src rand.Source) GammaParams {
	noise := distuv.Uniform{Min: 1e-8, Max: 0.01, Src: src}
	var sum, sumOfLog float64
	for _, v := range data {
		noisy := v + noise.Rand()
		sum += noisy
		sumOfLog += math.Log(noisy)
	}
	n := float64(len(data))
	dataMean := sum / n
	meanOfLogs := sumOfLog / n
	logOfMean := math.Log(dataMean)
	logDiff := meanOfLogs - logOfMean

	shape := 0.5 / (logOfMean - meanOfLogs)
	shapeReciprocal := 1.0 / shape
	difference := 1.0
	for difference > newtonTolerance {
		numerator := logDiff + math.Log(shape) - mathext.Digamma(shape)
		denominator := shape * shape * (shapeReciprocal - trigamma(shape))
		tmpShapeReciprocal := shapeReciprocal + numerator/denominator
		tmpShape := 1.0 / tmpShapeReciprocal
		difference = math.Abs(tmpShape - shape)
		shape = tmpShape
		shapeReciprocal = tmpShapeReciprocal
	}
	return GammaParams{Shape: shape, Scale: dataMean / shape}
}

// trigamma is the second derivative of the log-gamma function, equal to the
// Hurwitz zeta function at s=2.
func trigamma(x float64) float64 {
	return mathext.Zeta(2, x)
}

// FitHurdleGamma fits a HurdleGammaParams to data: zero_prob is the
// fraction of zero samples, and the gamma component is fit to the nonzero
// remainder. Returns false if fewer than sufficientDataPoints samples are
// nonzero, or if the fit produces NaN parameters.
func FitHurdleGamma(data []float64, src rand.Source) (HurdleGammaParams, bool) {
	nonzero := make([]float64, 0, len(data))
	for _, v := range data {
		if v != 0 {
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) < sufficientDataPoints {
		return HurdleGammaParams{}, false
	}
	zeroProb := float64(len(data)-len(nonzero)) / float64(len(data))
	gamma := FitGamma(nonzero, src)
	if math.IsNaN(gamma.Shape) || math.IsNaN(gamma.Scale) {
		return HurdleGammaParams{}, false
	}
	return HurdleGammaParams{ZeroProb: zeroProb, Shape: gamma.Shape, Scale: gamma.Scale}, true
}
