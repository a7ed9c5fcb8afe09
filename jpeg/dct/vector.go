// Package dct implements the 8x8 fixed-point forward and inverse DCT used by
// the baseline JPEG codec, written as 8-lane vector arithmetic.
package dct

// Lane-vector primitives.
//
// Each function models one vector instruction: the eight lanes are computed
// independently with exactly the wrapping, saturating and rounding behaviour
// of the instruction, so the transforms below give the same bits whether the
// loops are vectorized by the compiler or not.

// Vec holds eight signed 16-bit lanes, one row or column of a block
type Vec [8]int16

// Wide holds eight signed 32-bit lanes used for accumulations that do not
// fit in 16 bits
type Wide [8]int32

type lane interface {
	~int16 | ~int32
}

// splat replicates x into every lane
func splat(x int16) Vec {
	return Vec{x, x, x, x, x, x, x, x}
}

// broadcast replicates lane i of a into every lane
func broadcast(a Vec, i int) Vec {
	return splat(a[i])
}

func add(a, b Vec) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

func sub(a, b Vec) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i] - b[i]
	}
	return r
}

func or(a, b Vec) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i] | b[i]
	}
	return r
}

// shl shifts every lane left by n, discarding the high bits
func shl(a Vec, n uint) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i] << n
	}
	return r
}

// sra shifts every lane right by n, replicating the sign bit
func sra(a Vec, n uint) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i] >> n
	}
	return r
}

func isZero(a Vec) bool {
	return a == Vec{}
}

// mulLowAdd returns the low 16 bits of a*b + c in each lane
func mulLowAdd(a, b, c Vec) Vec {
	var r Vec
	for i := range r {
		r[i] = a[i]*b[i] + c[i]
	}
	return r
}

// mulHighAddSat widens a and b to 32 bits, multiplies them, keeps the upper
// 17 bits of the product (an arithmetic shift right by 15), adds c and
// saturates the sum to 16 bits.
//
// A constant K stored as K << (15-s) therefore turns a*K into (a*K) >> s
// with one operation. The shift floors; there is no rounding term.
func mulHighAddSat(a, b, c Vec) Vec {
	var r Vec
	for i := range r {
		p := int32(a[i]) * int32(b[i])
		r[i] = saturate16((p >> 15) + int32(c[i]))
	}
	return r
}

// mulHigh is mulHighAddSat with a zero accumulator
func mulHigh(a, b Vec) Vec {
	return mulHighAddSat(a, b, Vec{})
}

// interleaveLo merges lanes 0-3 of a and b: a0 b0 a1 b1 a2 b2 a3 b3
func interleaveLo[V ~[8]E, E lane](a, b V) V {
	var r V
	for i := 0; i < 4; i++ {
		r[2*i] = a[i]
		r[2*i+1] = b[i]
	}
	return r
}

// interleaveHi merges lanes 4-7 of a and b: a4 b4 a5 b5 a6 b6 a7 b7
func interleaveHi[V ~[8]E, E lane](a, b V) V {
	var r V
	for i := 0; i < 4; i++ {
		r[2*i] = a[4+i]
		r[2*i+1] = b[4+i]
	}
	return r
}

// dotPairs computes a*ka + b*kb in 32 bits for every lane, saturating the
// sum. It is the multiply-sum of the interleaved pair (a, b) against the
// repeated constant pair (ka, kb).
func dotPairs(a, b Vec, ka, kb int16) Wide {
	var r Wide
	for i := range r {
		s := int64(a[i])*int64(ka) + int64(b[i])*int64(kb)
		r[i] = saturate32(s)
	}
	return r
}

// addWide adds two 32-bit vectors with wraparound
func addWide(a, b Wide) Wide {
	var r Wide
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

// descale rounds and shifts every lane right by n: (x + 2^(n-1)) >> n
func descale(a Wide, n uint) Wide {
	round := int32(1) << (n - 1)
	var r Wide
	for i := range r {
		r[i] = (a[i] + round) >> n
	}
	return r
}

// narrow packs 32-bit lanes into 16-bit lanes by truncation
func narrow(a Wide) Vec {
	var r Vec
	for i := range r {
		r[i] = int16(a[i])
	}
	return r
}

// packSigned saturates the lanes of a then b to signed 8 bits
func packSigned(a, b Vec) [16]int8 {
	var r [16]int8
	for i := 0; i < 8; i++ {
		r[i] = saturate8(a[i])
		r[8+i] = saturate8(b[i])
	}
	return r
}

func saturate8(x int16) int8 {
	if x > 127 {
		return 127
	}
	if x < -128 {
		return -128
	}
	return int8(x)
}

func saturate16(x int32) int16 {
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return int16(x)
}

func saturate32(x int64) int32 {
	if x > 2147483647 {
		return 2147483647
	}
	if x < -2147483648 {
		return -2147483648
	}
	return int32(x)
}
