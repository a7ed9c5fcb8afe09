package dct

// Scalar versions of the three transforms, computed one row or column at a
// time in 32-bit arithmetic. The vector code must agree with them exactly
// whenever no 16-bit intermediate overflows.

func descaleRef(x int32, n uint) int32 {
	return (x + 1<<(n-1)) >> n
}

// blockLine returns the indices of row i (pass 1) or column i (pass 2)
func blockLine(i int, columns bool) [8]int {
	var idx [8]int
	for k := range idx {
		if columns {
			idx[k] = k*8 + i
		} else {
			idx[k] = i*8 + k
		}
	}
	return idx
}

func refForwardAccurate(in *Block) Block {
	var d [64]int32
	for i, v := range in {
		d[i] = int32(v)
	}

	for pass := 1; pass <= 2; pass++ {
		shift := uint(descaleP1)
		if pass == 2 {
			shift = descaleP2
		}
		for i := 0; i < 8; i++ {
			idx := blockLine(i, pass == 2)
			var v [8]int32
			for k, p := range idx {
				v[k] = d[p]
			}

			tmp0, tmp7 := v[0]+v[7], v[0]-v[7]
			tmp1, tmp6 := v[1]+v[6], v[1]-v[6]
			tmp2, tmp5 := v[2]+v[5], v[2]-v[5]
			tmp3, tmp4 := v[3]+v[4], v[3]-v[4]

			tmp10, tmp13 := tmp0+tmp3, tmp0-tmp3
			tmp11, tmp12 := tmp1+tmp2, tmp1-tmp2

			var o [8]int32
			if pass == 1 {
				o[0] = (tmp10 + tmp11) << pass1Bits
				o[4] = (tmp10 - tmp11) << pass1Bits
			} else {
				o[0] = descaleRef(tmp10+tmp11, pass1Bits)
				o[4] = descaleRef(tmp10-tmp11, pass1Bits)
			}

			z1 := (tmp12 + tmp13) * fix0541
			o[2] = descaleRef(z1+tmp13*fix0765, shift)
			o[6] = descaleRef(z1+tmp12*(-fix1847), shift)

			z1 = tmp4 + tmp7
			z2 := tmp5 + tmp6
			z3 := tmp4 + tmp6
			z4 := tmp5 + tmp7
			z5 := (z3 + z4) * fix1175

			tmp4 *= fix0298
			tmp5 *= fix2053
			tmp6 *= fix3072
			tmp7 *= fix1501
			z1 *= -fix0899
			z2 *= -fix2562
			z3 *= -fix1961
			z4 *= -fix0390
			z3 += z5
			z4 += z5

			o[7] = descaleRef(tmp4+z1+z3, shift)
			o[5] = descaleRef(tmp5+z2+z4, shift)
			o[3] = descaleRef(tmp6+z2+z3, shift)
			o[1] = descaleRef(tmp7+z1+z4, shift)

			for k, p := range idx {
				d[p] = o[k]
			}
		}
	}

	var out Block
	for i, v := range d {
		out[i] = int16(v)
	}
	return out
}

// mulRef is the truncating fixed-point multiply of the AAN algorithms
func mulRef(x, k int32) int32 {
	return (x * k) >> fastConstBits
}

func refForwardFast(in *Block) Block {
	var d [64]int32
	for i, v := range in {
		d[i] = int32(v)
	}

	for pass := 1; pass <= 2; pass++ {
		for i := 0; i < 8; i++ {
			idx := blockLine(i, pass == 2)
			var v [8]int32
			for k, p := range idx {
				v[k] = d[p]
			}

			tmp0, tmp7 := v[0]+v[7], v[0]-v[7]
			tmp1, tmp6 := v[1]+v[6], v[1]-v[6]
			tmp2, tmp5 := v[2]+v[5], v[2]-v[5]
			tmp3, tmp4 := v[3]+v[4], v[3]-v[4]

			tmp10, tmp13 := tmp0+tmp3, tmp0-tmp3
			tmp11, tmp12 := tmp1+tmp2, tmp1-tmp2

			var o [8]int32
			o[0] = tmp10 + tmp11
			o[4] = tmp10 - tmp11

			z1 := mulRef(tmp12+tmp13, aan0707)
			o[2] = tmp13 + z1
			o[6] = tmp13 - z1

			tmp10 = tmp4 + tmp5
			tmp11 = tmp5 + tmp6
			tmp12 = tmp6 + tmp7

			z5 := mulRef(tmp10-tmp12, aan0382)
			z2 := mulRef(tmp10, aan0541) + z5
			z4 := mulRef(tmp12, aan1306) + z5
			z3 := mulRef(tmp11, aan0707)

			z11 := tmp7 + z3
			z13 := tmp7 - z3

			o[5] = z13 + z2
			o[3] = z13 - z2
			o[1] = z11 + z4
			o[7] = z11 - z4

			for k, p := range idx {
				d[p] = o[k]
			}
		}
	}

	var out Block
	for i, v := range d {
		out[i] = int16(v)
	}
	return out
}

func refIDCT1D(v [8]int32) [8]int32 {
	tmp10 := v[0] + v[4]
	tmp11 := v[0] - v[4]
	tmp13 := v[2] + v[6]
	tmp12 := mulRef(v[2]-v[6], aan1414) - tmp13

	tmp0 := tmp10 + tmp13
	tmp3 := tmp10 - tmp13
	tmp1 := tmp11 + tmp12
	tmp2 := tmp11 - tmp12

	z13 := v[5] + v[3]
	z10 := v[5] - v[3]
	z11 := v[1] + v[7]
	z12 := v[1] - v[7]

	tmp7 := z11 + z13
	tmp11 = mulRef(z11-z13, aan1414)
	z5 := mulRef(z10+z12, aan1847)
	tmp10 = mulRef(z12, aan1082) - z5
	tmp12 = mulRef(z10, -aan2613) + z5

	tmp6 := tmp12 - tmp7
	tmp5 := tmp11 - tmp6
	tmp4 := tmp10 + tmp5

	return [8]int32{
		tmp0 + tmp7, tmp1 + tmp6, tmp2 + tmp5, tmp3 - tmp4,
		tmp3 + tmp4, tmp2 - tmp5, tmp1 - tmp6, tmp0 - tmp7,
	}
}

// refInverseFast returns the 8x8 samples in row-major order
func refInverseFast(quant *QuantTable, coef *Block) [64]byte {
	var ws [64]int32
	for c := 0; c < 8; c++ {
		var v [8]int32
		for k := range v {
			v[k] = int32(coef[k*8+c]) * int32(quant[k*8+c])
		}
		o := refIDCT1D(v)
		for k := range o {
			ws[k*8+c] = o[k]
		}
	}

	var out [64]byte
	for r := 0; r < 8; r++ {
		var v [8]int32
		copy(v[:], ws[r*8:])
		o := refIDCT1D(v)
		for k := range o {
			x := o[k]>>(pass1Bits+3) + CenterSample
			out[r*8+k] = byte(min(max(x, 0), 255))
		}
	}
	return out
}
