package datacontract

import (
	"github.com/reoring/datacontract/stat"
)

// DefaultGoodnessOfFit is the distribution test used when a Def does not
// supply its own: a one-sample Kolmogorov-Smirnov test with family parameters
// estimated from the sample (see the stat package).
var DefaultGoodnessOfFit GoodnessOfFit = func(sample []float64, family Distribution) (float64, error) {
	return stat.KolmogorovSmirnov(sample, string(family))
}
