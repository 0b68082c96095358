// Package stat provides the goodness-of-fit test backing distribution checks.
package stat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	gstat "gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrUnknownFamily reports a distribution family this package cannot test.
	ErrUnknownFamily = errors.New("stat: unknown distribution family")
	// ErrDegenerateSample reports a sample with no spread; no continuous
	// family can be fit to it.
	ErrDegenerateSample = errors.New("stat: degenerate sample")
	// ErrEmptySample reports an empty sample.
	ErrEmptySample = errors.New("stat: empty sample")
)

// KolmogorovSmirnov runs a one-sample Kolmogorov-Smirnov test of sample
// against the named family ("normal" or "uniform") and returns the p-value.
// Family parameters are estimated from the sample itself: mean and standard
// deviation for normal, observed min and max for uniform. The sample is not
// modified.
func KolmogorovSmirnov(sample []float64, family string) (float64, error) {
	if len(sample) == 0 {
		return 0, ErrEmptySample
	}
	cdf, err := fitCDF(sample, family)
	if err != nil {
		return 0, err
	}
	xs := append([]float64(nil), sample...)
	sort.Float64s(xs)
	d := ksStatistic(xs, cdf)
	return ksPValue(d, len(xs)), nil
}

func fitCDF(sample []float64, family string) (func(float64) float64, error) {
	switch family {
	case "normal":
		mu, sigma := gstat.MeanStdDev(sample, nil)
		if sigma == 0 || math.IsNaN(sigma) {
			return nil, fmt.Errorf("%w: zero variance", ErrDegenerateSample)
		}
		dist := distuv.Normal{Mu: mu, Sigma: sigma}
		return dist.CDF, nil
	case "uniform":
		lo, hi := sample[0], sample[0]
		for _, v := range sample[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			return nil, fmt.Errorf("%w: zero width", ErrDegenerateSample)
		}
		dist := distuv.Uniform{Min: lo, Max: hi}
		return dist.CDF, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
}

// ksStatistic computes the supremum distance between the empirical CDF of the
// sorted sample and the fitted CDF.
func ksStatistic(sorted []float64, cdf func(float64) float64) float64 {
	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		if hi := float64(i+1)/n - f; hi > d {
			d = hi
		}
		if lo := f - float64(i)/n; lo > d {
			d = lo
		}
	}
	return d
}

// ksPValue approximates P(D > d) for sample size n using the asymptotic
// Kolmogorov distribution with the Stephens small-sample correction.
func ksPValue(d float64, n int) float64 {
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*lambda*lambda*float64(k)*float64(k))
		sum += term
		sign = -sign
		if math.Abs(term) < 1e-12 {
			break
		}
	}
	p := 2 * sum
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
