package dct

// Fast forward DCT (AAN scaled, 8-bit constants).
//
// The outputs are scaled by the AAN factors; the quantizer divisors built
// for this variant fold the scale back out.

const (
	fastConstBits   = 8
	preMultiplyBits = 2
	fastConstShift  = 16 - preMultiplyBits - fastConstBits - 1
)

const (
	aan0382 = 98  // FIX(0.382683433)
	aan0541 = 139 // FIX(0.541196100)
	aan0707 = 181 // FIX(0.707106781)
	aan1306 = 334 // FIX(1.306562965)
)

var (
	pw0382 = splat(aan0382 << fastConstShift)
	pw0541 = splat(aan0541 << fastConstShift)
	pw0707 = splat(aan0707 << fastConstShift)
	pw1306 = splat(aan1306 << fastConstShift)
)

// FastMaxRange is the widest spread (largest minus smallest) of
// level-shifted 8-bit samples for which ForwardFast keeps every 16-bit
// intermediate in range. The pre-scaled terms of the column pass reach about
// 161 times the spread, so spreads past 203 can wrap.
const FastMaxRange = 192

// FitsFast reports whether ForwardFast transforms b without wraparound
func FitsFast(b *Block) bool {
	lo, hi := b[0], b[0]
	for _, v := range b[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return int(hi)-int(lo) <= FastMaxRange
}

// ForwardFast computes the fast (approximate) forward DCT of b in place.
//
// Input is level-shifted samples in row-major order; output is coefficients
// in row-major order, each scaled by its AAN factor times 8. No descaling is
// done between the two passes and intermediates are 16-bit, so extreme
// inputs can wrap: level-shifted 8-bit blocks are exact only while FitsFast
// holds.
func ForwardFast(b *Block) {
	rows := b.rows()

	// Pass 1: rows
	out := fdctFastPass(Transpose(rows))

	// Pass 2: columns
	out = fdctFastPass(Transpose(out))

	b.setRows(out)
}

// fdctFastPass runs the one-dimensional transform across the eight input
// vectors, lane by lane.
func fdctFastPass(in [8]Vec) [8]Vec {
	tmp0 := add(in[0], in[7])
	tmp7 := sub(in[0], in[7])
	tmp1 := add(in[1], in[6])
	tmp6 := sub(in[1], in[6])
	tmp2 := add(in[2], in[5])
	tmp5 := sub(in[2], in[5])
	tmp3 := add(in[3], in[4])
	tmp4 := sub(in[3], in[4])

	var out [8]Vec

	// Even part
	tmp10 := add(tmp0, tmp3)
	tmp13 := sub(tmp0, tmp3)
	tmp11 := add(tmp1, tmp2)
	tmp12 := sub(tmp1, tmp2)

	out[0] = add(tmp10, tmp11)
	out[4] = sub(tmp10, tmp11)

	z1 := mulHigh(shl(add(tmp12, tmp13), preMultiplyBits), pw0707)
	out[2] = add(tmp13, z1)
	out[6] = sub(tmp13, z1)

	// Odd part
	tmp10 = shl(add(tmp4, tmp5), preMultiplyBits)
	tmp11 = add(tmp5, tmp6)
	tmp12 = shl(add(tmp6, tmp7), preMultiplyBits)

	z5 := mulHigh(sub(tmp10, tmp12), pw0382)
	z2 := add(mulHigh(tmp10, pw0541), z5)
	z4 := add(mulHigh(tmp12, pw1306), z5)
	z3 := mulHigh(shl(tmp11, preMultiplyBits), pw0707)

	z11 := add(tmp7, z3)
	z13 := sub(tmp7, z3)

	out[5] = add(z13, z2)
	out[3] = sub(z13, z2)
	out[1] = add(z11, z4)
	out[7] = sub(z11, z4)

	return out
}
