package dct

// Transpose returns the transpose of an 8x8 matrix held as eight row vectors.
//
// It is a fixed three-stage interleave network: rows 0/4, 1/5, 2/6 and 3/7
// are merged first, then the merged pairs (even rows and odd rows
// separately), then the even and odd quads. The same network serves 16-bit
// and 32-bit lanes, and applying it twice restores the input.
func Transpose[V ~[8]E, E lane](m [8]V) [8]V {
	// Stage 1: rows i and i+4
	r04l, r04h := interleaveLo(m[0], m[4]), interleaveHi(m[0], m[4])
	r15l, r15h := interleaveLo(m[1], m[5]), interleaveHi(m[1], m[5])
	r26l, r26h := interleaveLo(m[2], m[6]), interleaveHi(m[2], m[6])
	r37l, r37h := interleaveLo(m[3], m[7]), interleaveHi(m[3], m[7])

	// Stage 2: even rows give lanes 0,2,4,6 of each column, odd rows 1,3,5,7
	col01e, col23e := interleaveLo(r04l, r26l), interleaveHi(r04l, r26l)
	col45e, col67e := interleaveLo(r04h, r26h), interleaveHi(r04h, r26h)
	col01o, col23o := interleaveLo(r15l, r37l), interleaveHi(r15l, r37l)
	col45o, col67o := interleaveLo(r15h, r37h), interleaveHi(r15h, r37h)

	// Stage 3
	return [8]V{
		interleaveLo(col01e, col01o), interleaveHi(col01e, col01o),
		interleaveLo(col23e, col23o), interleaveHi(col23e, col23o),
		interleaveLo(col45e, col45o), interleaveHi(col45e, col45o),
		interleaveLo(col67e, col67o), interleaveHi(col67e, col67o),
	}
}
