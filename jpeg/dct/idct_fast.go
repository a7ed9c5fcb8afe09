package dct

// Fast inverse DCT (AAN scaled, 8-bit constants).

const (
	aan1082 = 277           // FIX(1.082392200)
	aan1414 = 362           // FIX(1.414213562)
	aan1847 = 473           // FIX(1.847759065)
	aan2613 = 669           // FIX(2.613125930)
	aan1613 = aan2613 - 256 // FIX(2.613125930) - FIX(1)
)

var (
	pwF1414  = splat(aan1414 << fastConstShift)
	pwF1847  = splat(aan1847 << fastConstShift)
	pwMF1613 = splat(-aan1613 << fastConstShift)
	pwF1082  = splat(aan1082 << fastConstShift)
)

// InverseFast dequantizes coef with quant, computes the fast inverse DCT and
// writes the 8x8 block of samples into output: 8 bytes starting at column
// col of each of output[0] through output[7].
//
// quant holds multipliers in the scaled form produced for this variant
// (quantizer step times AAN factor, 2 fractional bits). Results are clamped
// to [0, 255]; oversized coefficients never fail, they saturate. output must
// have at least 8 rows and each row at least col+8 bytes.
func InverseFast(quant *QuantTable, coef *Block, output [][]byte, col int) {
	inverseFast(quant, coef, output, col, true)
}

// inverseFast is InverseFast with the DC-only shortcut optional
func inverseFast(quant *QuantTable, coef *Block, output [][]byte, col int, allowDCOnly bool) {
	in := coef.rows()
	q := quant.rows()

	ac := Vec{}
	for i := 1; i < 8; i++ {
		ac = or(ac, in[i])
	}

	in[0] = mulLowAdd(in[0], q[0], Vec{})

	// Pass 1: columns
	var rows [8]Vec
	if allowDCOnly && isZero(ac) {
		// With no AC terms every column is flat at its dequantized DC value
		for i := range rows {
			rows[i] = broadcast(in[0], i)
		}
	} else {
		for i := 1; i < 8; i++ {
			in[i] = mulLowAdd(in[i], q[i], Vec{})
		}
		rows = Transpose(idctFastPass(in))
	}

	// Pass 2: rows
	out := idctFastPass(rows)
	for i := range out {
		out[i] = sra(out[i], pass1Bits+3)
	}

	storeSamples(Transpose(out), output, col)
}

func idctFastPass(in [8]Vec) [8]Vec {
	// Even part
	tmp10 := add(in[0], in[4])
	tmp11 := sub(in[0], in[4])
	tmp13 := add(in[2], in[6])

	tmp12 := sub(mulHigh(shl(sub(in[2], in[6]), preMultiplyBits), pwF1414), tmp13)

	tmp0 := add(tmp10, tmp13)
	tmp3 := sub(tmp10, tmp13)
	tmp1 := add(tmp11, tmp12)
	tmp2 := sub(tmp11, tmp12)

	// Odd part
	z13 := add(in[5], in[3])
	z10 := sub(in[5], in[3])
	z10s := shl(z10, preMultiplyBits)
	z11 := add(in[1], in[7])
	z12s := shl(sub(in[1], in[7]), preMultiplyBits)

	tmp11 = mulHigh(shl(sub(z11, z13), preMultiplyBits), pwF1414)
	tmp7 := add(z11, z13)

	z5 := mulHigh(add(z10s, z12s), pwF1847)

	tmp10 = sub(mulHigh(z12s, pwF1082), z5)
	tmp12 = add(sub(mulHigh(z10s, pwMF1613), z10), z5)

	tmp6 := sub(tmp12, tmp7)
	tmp5 := sub(tmp11, tmp6)
	tmp4 := add(tmp10, tmp5)

	return [8]Vec{
		add(tmp0, tmp7),
		add(tmp1, tmp6),
		add(tmp2, tmp5),
		sub(tmp3, tmp4),
		add(tmp3, tmp4),
		sub(tmp2, tmp5),
		sub(tmp1, tmp6),
		sub(tmp0, tmp7),
	}
}
