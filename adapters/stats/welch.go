package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"psychstats/domain/core"
)

// TTestResult holds an unrounded Welch two-sample comparison. DF is the
// fractional Welch-Satterthwaite value; presentation rounding happens at
// report assembly.
type TTestResult struct {
	T  float64
	DF float64
	P  float64

	Mean1, Mean2 float64
	Var1, Var2   float64
	N1, N2       int
}

// WelchTTest runs Welch's two-sample t-test (unequal variances assumed)
// with a two-sided p-value from the Student's t distribution. Sample one
// is conventionally the Simultaneous condition.
func WelchTTest(sample1, sample2 []float64) (TTestResult, error) {
	s1 := DropMissing(sample1)
	s2 := DropMissing(sample2)
	if len(s1) < 2 || len(s2) < 2 {
		return TTestResult{}, core.NewInsufficientDataError("t-test group", min(len(s1), len(s2)))
	}

	mean1, _ := mstats.Mean(s1)
	mean2, _ := mstats.Mean(s2)
	var1, _ := mstats.VarS(s1)
	var2, _ := mstats.VarS(s2)

	n1 := float64(len(s1))
	n2 := float64(len(s2))

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return TTestResult{}, fmt.Errorf("%w: standard error is zero", core.ErrZeroVariance)
	}

	t := (mean1 - mean2) / se

	// Welch-Satterthwaite fractional degrees of freedom
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))

	return TTestResult{
		T:     t,
		DF:    df,
		P:     p,
		Mean1: mean1,
		Mean2: mean2,
		Var1:  var1,
		Var2:  var2,
		N1:    len(s1),
		N2:    len(s2),
	}, nil
}

// CohensD computes the standardized mean difference using the pooled
// standard deviation:
//
//	d = (mean1 - mean2) / sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1+n2-2))
func CohensD(sample1, sample2 []float64) (float64, error) {
	s1 := DropMissing(sample1)
	s2 := DropMissing(sample2)
	if len(s1) < 2 || len(s2) < 2 {
		return 0, core.NewInsufficientDataError("effect-size group", min(len(s1), len(s2)))
	}

	mean1, _ := mstats.Mean(s1)
	mean2, _ := mstats.Mean(s2)
	var1, _ := mstats.VarS(s1)
	var2, _ := mstats.VarS(s2)

	n1 := float64(len(s1))
	n2 := float64(len(s2))

	pooled := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooled == 0 {
		return 0, fmt.Errorf("%w: pooled standard deviation is zero", core.ErrZeroVariance)
	}

	return (mean1 - mean2) / pooled, nil
}
