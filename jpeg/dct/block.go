package dct

// BlockSize is the edge length of a transform block
const BlockSize = 8

// Block is an 8x8 block of samples or coefficients in row-major order.
// Forward transforms overwrite it in place.
type Block [BlockSize * BlockSize]int16

// QuantTable holds the per-coefficient multipliers applied by InverseFast
// before the butterflies, row-major like Block.
type QuantTable [BlockSize * BlockSize]int16

func (b *Block) rows() [8]Vec {
	var m [8]Vec
	for i := range m {
		copy(m[i][:], b[i*BlockSize:])
	}
	return m
}

func (b *Block) setRows(m [8]Vec) {
	for i := range m {
		copy(b[i*BlockSize:], m[i][:])
	}
}

func (q *QuantTable) rows() [8]Vec {
	var m [8]Vec
	for i := range m {
		copy(m[i][:], q[i*BlockSize:])
	}
	return m
}
