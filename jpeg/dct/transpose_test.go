package dct

import (
	"math/rand/v2"
	"testing"
)

func TestTranspose(t *testing.T) {
	var m [8]Vec
	for i := range m {
		for j := range m[i] {
			m[i][j] = int16(i*8 + j)
		}
	}

	tr := Transpose(m)
	for i := range tr {
		for j := range tr[i] {
			if tr[i][j] != m[j][i] {
				t.Fatalf("T[%d][%d] = %d, want %d", i, j, tr[i][j], m[j][i])
			}
		}
	}
}

func TestTransposeInvolution(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0)) // Deterministic

	t.Run("int16", func(t *testing.T) {
		for n := 0; n < 100; n++ {
			var m [8]Vec
			for i := range m {
				for j := range m[i] {
					m[i][j] = int16(rng.IntN(65536) - 32768)
				}
			}
			if got := Transpose(Transpose(m)); got != m {
				t.Fatalf("T(T(M)) != M\ngot  %v\nwant %v", got, m)
			}
		}
	})

	t.Run("int32", func(t *testing.T) {
		for n := 0; n < 100; n++ {
			var m [8]Wide
			for i := range m {
				for j := range m[i] {
					m[i][j] = int32(rng.Uint32())
				}
			}
			tr := Transpose(m)
			for i := range tr {
				for j := range tr[i] {
					if tr[i][j] != m[j][i] {
						t.Fatalf("T[%d][%d] = %d, want %d", i, j, tr[i][j], m[j][i])
					}
				}
			}
			if got := Transpose(tr); got != m {
				t.Fatalf("T(T(M)) != M")
			}
		}
	})
}
