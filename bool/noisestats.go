package bool

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"

	"github.com/latticefhe/mpctfhe/lwe"
)

// NoiseSample is one decrypted-but-not-rounded measurement: the centered
// distance between a ciphertext's noisy plaintext slot and its expected
// ±Q/8 encoding.
type NoiseSample struct {
	Log2Abs float64 // log2(|centered error|), or -Inf for an exact (zero-noise) sample
}

// MeasureNoise decrypts fb against the known plaintext bit want (for
// instrumentation only, never on the evaluation path) and returns the log2
// magnitude of the residual error relative to the ±Q/8 encoding.
func (ck *ClientKey) MeasureNoise(fb FheBool, want bool) (NoiseSample, error) {
	m, err := lwe.Decrypt(ck.Secret, fb.CT)
	if err != nil {
		return NoiseSample{}, fmt.Errorf("bool: measure noise: %w", err)
	}
	q := ck.R.Q
	delta := int64(q / 8)
	expected := delta
	if !want {
		expected = -delta
	}
	centered := ck.R.CenterModU64(m)
	diff := centered - expected
	if diff == 0 {
		return NoiseSample{Log2Abs: math.Inf(-1)}, nil
	}
	if diff < 0 {
		diff = -diff
	}
	return NoiseSample{Log2Abs: math.Log2(float64(diff))}, nil
}

// Stats summarizes a batch of noise samples: mean and standard deviation
// of the log2 magnitudes, used by the noise-regression tests to check the
// post-bootstrap noise floor against the parameter-specified bound.
type Stats struct {
	Mean   float64
	StdDev float64
	Max    float64
}

// ComputeStats folds a batch of NoiseSample measurements into a Stats
// summary using montanaflynn/stats for the mean/stddev, discarding any
// -Inf (exact) samples from the standard-deviation computation since they
// are not part of the noise distribution's tail.
func ComputeStats(samples []NoiseSample) (Stats, error) {
	var finite []float64
	maxV := math.Inf(-1)
	for _, s := range samples {
		if math.IsInf(s.Log2Abs, -1) {
			continue
		}
		finite = append(finite, s.Log2Abs)
		if s.Log2Abs > maxV {
			maxV = s.Log2Abs
		}
	}
	if len(finite) == 0 {
		return Stats{Max: maxV}, nil
	}
	mean, err := stats.Mean(finite)
	if err != nil {
		return Stats{}, fmt.Errorf("bool: noise stats: mean: %w", err)
	}
	sd, err := stats.StandardDeviation(finite)
	if err != nil {
		return Stats{}, fmt.Errorf("bool: noise stats: stddev: %w", err)
	}
	return Stats{Mean: mean, StdDev: sd, Max: maxV}, nil
}

// TailBound computes the two-sided Gaussian tail bound log2(sigma) +
// log2(k) at the given failure probability, where k = sqrt(-2*ln(p)) is the
// standard large-deviation bound Pr[|X| > k*sigma] <= exp(-k^2/2) solved
// for k. Uses bigfloat's arbitrary-precision Log/Sqrt so probabilities
// down to 2^-40 don't lose precision the way a plain float64 log would at
// that scale.
func TailBound(sigma, failureProb float64) float64 {
	lnP := bigfloat.Log(big.NewFloat(failureProb))
	k2 := new(big.Float).Mul(big.NewFloat(-2), lnP)
	k := new(big.Float).Sqrt(k2)
	kf, _ := k.Float64()
	return math.Log2(sigma) + math.Log2(kf)
}
