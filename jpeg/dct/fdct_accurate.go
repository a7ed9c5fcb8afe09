package dct

// Accurate forward DCT (Loeffler, Ligtenberg and Moschytz, 13-bit constants).

const (
	constBits = 13
	pass1Bits = 2
	descaleP1 = constBits - pass1Bits
	descaleP2 = constBits + pass1Bits
)

const (
	fix0298 = 2446  // FIX(0.298631336)
	fix0390 = 3196  // FIX(0.390180644)
	fix0541 = 4433  // FIX(0.541196100)
	fix0765 = 6270  // FIX(0.765366865)
	fix0899 = 7373  // FIX(0.899976223)
	fix1175 = 9633  // FIX(1.175875602)
	fix1501 = 12299 // FIX(1.501321110)
	fix1847 = 15137 // FIX(1.847759065)
	fix1961 = 16069 // FIX(1.961570560)
	fix2053 = 16819 // FIX(2.053119869)
	fix2562 = 20995 // FIX(2.562915447)
	fix3072 = 25172 // FIX(3.072711026)
)

// Multiplier pairs for dotPairs. Each output is a*first + b*second, with the
// rotation sums of the scalar algorithm folded into the constants.
type constPair struct {
	a, b int16
}

var (
	pwF130F054   = constPair{fix0541 + fix0765, fix0541}
	pwF054MF130  = constPair{fix0541, fix0541 - fix1847}
	pwMF078F117  = constPair{fix1175 - fix1961, fix1175}
	pwF117F078   = constPair{fix1175, fix1175 - fix0390}
	pwMF060MF089 = constPair{fix0298 - fix0899, -fix0899}
	pwMF089F060  = constPair{-fix0899, fix1501 - fix0899}
	pwMF050MF256 = constPair{fix2053 - fix2562, -fix2562}
	pwMF256F050  = constPair{-fix2562, fix3072 - fix2562}
)

func dot(a, b Vec, k constPair) Wide {
	return dotPairs(a, b, k.a, k.b)
}

// ForwardAccurate computes the accurate forward DCT of b in place.
//
// Output coefficients are scaled up by 8 relative to the orthonormal DCT and
// match the scalar slow-integer algorithm bit for bit on level-shifted 8-bit
// samples.
func ForwardAccurate(b *Block) {
	rows := b.rows()

	// Pass 1: rows. Results keep pass1Bits of extra precision.
	out := fdctAccuratePass(Transpose(rows), 1)

	// Pass 2: columns. The extra precision is removed.
	out = fdctAccuratePass(Transpose(out), 2)

	b.setRows(out)
}

func fdctAccuratePass(in [8]Vec, pass int) [8]Vec {
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

	shift := uint(descaleP1)
	if pass == 1 {
		out[0] = shl(add(tmp10, tmp11), pass1Bits)
		out[4] = shl(sub(tmp10, tmp11), pass1Bits)
	} else {
		shift = descaleP2
		round := splat(1 << (pass1Bits - 1))
		out[0] = sra(add(add(tmp10, tmp11), round), pass1Bits)
		out[4] = sra(add(sub(tmp10, tmp11), round), pass1Bits)
	}

	out[2] = narrow(descale(dot(tmp13, tmp12, pwF130F054), shift))
	out[6] = narrow(descale(dot(tmp13, tmp12, pwF054MF130), shift))

	// Odd part
	z3 := add(tmp4, tmp6)
	z4 := add(tmp5, tmp7)

	z3w := dot(z3, z4, pwMF078F117)
	z4w := dot(z3, z4, pwF117F078)

	tmp4w := dot(tmp4, tmp7, pwMF060MF089)
	tmp7w := dot(tmp4, tmp7, pwMF089F060)

	out[7] = narrow(descale(addWide(z3w, tmp4w), shift))
	out[1] = narrow(descale(addWide(z4w, tmp7w), shift))

	tmp5w := dot(tmp5, tmp6, pwMF050MF256)
	tmp6w := dot(tmp5, tmp6, pwMF256F050)

	out[5] = narrow(descale(addWide(tmp5w, z4w), shift))
	out[3] = narrow(descale(addWide(tmp6w, z3w), shift))

	return out
}
