package stats

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// AdjustRate applies the log-linear correction that keeps perfect and
// zero scores off the probit asymptotes: a rate of exactly 1 becomes
// (nTrials-0.5)/nTrials and a rate of exactly 0 becomes 0.5/nTrials.
// Every other value passes through unchanged, so for rates strictly
// inside (0,1) the function is the identity.
func AdjustRate(rate float64, nTrials int) float64 {
	n := float64(nTrials)
	switch rate {
	case 1:
		return (n - 0.5) / n
	case 0:
		return 0.5 / n
	}
	return rate
}

// DPrime computes the signal-detection sensitivity index from a hit rate
// and a false-alarm rate: z(adjusted hit) - z(adjusted false alarm),
// where z is the standard-normal quantile (probit). Both rates must lie
// in [0,1]; after adjustment the probit is always finite.
func DPrime(hit, falseAlarm float64, nTrials int) float64 {
	zHit := distuv.UnitNormal.Quantile(AdjustRate(hit, nTrials))
	zFA := distuv.UnitNormal.Quantile(AdjustRate(falseAlarm, nTrials))
	return zHit - zFA
}
