package poseidon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func randMatrix(t *testing.T, n int) []fr.Element {
	t.Helper()
	m := make([]fr.Element, n*n)
	for i := range m {
		if _, err := m[i].SetRandom(); err != nil {
			t.Fatalf("sampling matrix entry: %v", err)
		}
	}
	return m
}

func TestMatInverse(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		m := randMatrix(t, n)
		inv := matInverse[fr.Element, *fr.Element](m, n)
		prod := matMatMul[fr.Element, *fr.Element](m, inv, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				got := prod[i*n+j]
				if i == j {
					if !got.IsOne() {
						t.Fatalf("n=%d: (M·M⁻¹)[%d][%d] = %s, want 1", n, i, j, got.String())
					}
				} else if !got.IsZero() {
					t.Fatalf("n=%d: (M·M⁻¹)[%d][%d] = %s, want 0", n, i, j, got.String())
				}
			}
		}
	}
}

func TestMatTranspose(t *testing.T) {
	n := 4
	m := randMatrix(t, n)
	mt := matTranspose[fr.Element, *fr.Element](m, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !mt[j*n+i].Equal(&m[i*n+j]) {
				t.Fatalf("transpose mismatch at (%d,%d)", i, j)
			}
		}
	}
	back := matTranspose[fr.Element, *fr.Element](mt, n)
	for i := range m {
		if !back[i].Equal(&m[i]) {
			t.Fatal("transpose is not an involution")
		}
	}
}

func TestMatVecMulIdentity(t *testing.T) {
	n := 3
	id := make([]fr.Element, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i].SetOne()
	}
	in := make([]fr.Element, n)
	for i := range in {
		if _, err := in[i].SetRandom(); err != nil {
			t.Fatalf("sampling vector entry: %v", err)
		}
	}
	out := matVecMul[fr.Element, *fr.Element](id, in, n)
	for i := range in {
		if !out[i].Equal(&in[i]) {
			t.Fatalf("identity multiply changed coordinate %d", i)
		}
	}
}
