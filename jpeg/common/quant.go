package common

import (
	"fmt"

	"github.com/cocosip/go-jpeg-dct/jpeg/dct"
)

// DCTMethod selects the forward transform used by the encoder
type DCTMethod int

const (
	// DCTAccurate uses dct.ForwardAccurate
	DCTAccurate DCTMethod = iota
	// DCTFast uses dct.ForwardFast
	DCTFast
)

// String returns the parameter name of the method
func (m DCTMethod) String() string {
	switch m {
	case DCTAccurate:
		return "accurate"
	case DCTFast:
		return "fast"
	default:
		return fmt.Sprintf("DCTMethod(%d)", int(m))
	}
}

// ParseDCTMethod parses "accurate" or "fast"
func ParseDCTMethod(s string) (DCTMethod, error) {
	switch s {
	case "accurate", "islow", "":
		return DCTAccurate, nil
	case "fast", "ifast":
		return DCTFast, nil
	}
	return DCTAccurate, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// Forward returns the forward transform for the method
func (m DCTMethod) Forward() func(*dct.Block) {
	if m == DCTFast {
		return dct.ForwardFast
	}
	return dct.ForwardAccurate
}

// aanScales holds 16384 * a(u) * a(v) in natural order, where
// a(0) = 1 and a(k) = cos(k*pi/16) * sqrt(2). The fast transforms leave
// their outputs scaled by these factors.
var aanScales = [64]int32{
	16384, 22725, 21407, 19266, 16384, 12873, 8867, 4520,
	22725, 31521, 29692, 26722, 22725, 17855, 12299, 6270,
	21407, 29692, 27969, 25172, 21407, 16819, 11585, 5906,
	19266, 26722, 25172, 22654, 19266, 15137, 10426, 5315,
	16384, 22725, 21407, 19266, 16384, 12873, 8867, 4520,
	12873, 17855, 16819, 15137, 12873, 10114, 6967, 3552,
	8867, 12299, 11585, 10426, 8867, 6967, 4799, 2446,
	4520, 6270, 5906, 5315, 4520, 3552, 2446, 1247,
}

const (
	aanScaleBits   = 14
	ifastScaleBits = 2 // fractional bits kept in the inverse multipliers
)

// FastInverseMultipliers converts a natural-order quantization table into
// the multiplier table expected by dct.InverseFast: each step is scaled by
// its AAN factor and kept with two fractional bits.
func FastInverseMultipliers(q *[64]int32) dct.QuantTable {
	var t dct.QuantTable
	const shift = aanScaleBits - ifastScaleBits
	for i := range t {
		v := (int64(q[i])*int64(aanScales[i]) + 1<<(shift-1)) >> shift
		t[i] = int16(min(v, 32767))
	}
	return t
}

// ForwardDivisors converts a natural-order quantization table into the
// divisors Quantize applies after the forward transform of the given
// method. Both transforms leave a factor of 8 in their outputs; the fast
// one also leaves the AAN factors.
func ForwardDivisors(q *[64]int32, method DCTMethod) [64]int32 {
	var d [64]int32
	for i := range d {
		if method == DCTFast {
			const shift = aanScaleBits - 3
			d[i] = int32((int64(q[i])*int64(aanScales[i]) + 1<<(shift-1)) >> shift)
		} else {
			d[i] = q[i] << 3
		}
		if d[i] < 1 {
			d[i] = 1
		}
	}
	return d
}

// Quantize divides every coefficient of b by its divisor in place,
// rounding half away from zero
func Quantize(b *dct.Block, divisors *[64]int32) {
	for i, v := range b {
		x := int32(v)
		d := divisors[i]
		if x < 0 {
			b[i] = int16(-((-x + d>>1) / d))
		} else {
			b[i] = int16((x + d>>1) / d)
		}
	}
}
