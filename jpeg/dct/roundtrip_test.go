package dct_test

import (
	"math/rand/v2"
	"testing"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
	"github.com/cocosip/go-jpeg-dct/jpeg/dct"
)

// roundTrip runs samples through forward transform, quantization at step 1
// and the fast inverse
func roundTrip(method common.DCTMethod, samples [][]byte) [][]byte {
	var unit [64]int32
	for i := range unit {
		unit[i] = 1
	}
	divisors := common.ForwardDivisors(&unit, method)
	mult := common.FastInverseMultipliers(&unit)

	var b dct.Block
	dct.LoadSamples(samples, 0, &b)
	method.Forward()(&b)
	common.Quantize(&b, &divisors)

	out := make([][]byte, dct.BlockSize)
	for i := range out {
		out[i] = make([]byte, dct.BlockSize)
	}
	dct.InverseFast(&mult, &b, out, 0)
	return out
}

func TestRoundTripFlatExact(t *testing.T) {
	for _, method := range []common.DCTMethod{common.DCTAccurate, common.DCTFast} {
		t.Run(method.String(), func(t *testing.T) {
			for v := 0; v < 256; v++ {
				samples := make([][]byte, 8)
				for y := range samples {
					samples[y] = make([]byte, 8)
					for x := range samples[y] {
						samples[y][x] = byte(v)
					}
				}

				out := roundTrip(method, samples)
				for y := range out {
					for x, got := range out[y] {
						if got != byte(v) {
							t.Fatalf("flat %d: sample (%d,%d) = %d", v, x, y, got)
						}
					}
				}
			}
		})
	}
}

func TestRoundTripRamp(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0)) // Deterministic

	for _, method := range []common.DCTMethod{common.DCTAccurate, common.DCTFast} {
		t.Run(method.String(), func(t *testing.T) {
			maxErr := 0
			for n := 0; n < 2000; n++ {
				gx, gy := rng.IntN(7)-3, rng.IntN(7)-3
				base := rng.IntN(256)

				samples := make([][]byte, 8)
				for y := range samples {
					samples[y] = make([]byte, 8)
					for x := range samples[y] {
						samples[y][x] = byte(common.Clamp(base+gx*x+gy*y, 0, 255))
					}
				}

				out := roundTrip(method, samples)
				for y := range out {
					for x := range out[y] {
						d := int(out[y][x]) - int(samples[y][x])
						if d < 0 {
							d = -d
						}
						maxErr = max(maxErr, d)
					}
				}
			}

			t.Logf("max error over ramps: %d", maxErr)
			if maxErr > 3 {
				t.Errorf("max error %d, want <= 3", maxErr)
			}
		})
	}
}
