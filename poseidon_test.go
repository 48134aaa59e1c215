package poseidon

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// A random invertible matrix stands in for a real MDS matrix here: the
// equivalence rewrite only needs the trailing submatrices to be invertible,
// which holds for random matrices with overwhelming probability. The circom
// parameter sets get their own known-answer tests in the bn254 package.
func testParams(t *testing.T, width, roundsF, roundsP int) *Params[fr.Element, *fr.Element] {
	t.Helper()
	mds := randMatrix(t, width)
	rc := randVector(t, (roundsF+roundsP)*width)
	p, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, roundsP, mds, rc)
	if err != nil {
		t.Fatalf("constructing parameters: %v", err)
	}
	return p
}

func TestPermutationMatchesReference(t *testing.T) {
	for _, width := range []int{2, 3, 4, 5} {
		p := testParams(t, width, 8, 10)
		engine := New(p)
		for run := 0; run < 5; run++ {
			input := randVector(t, width)
			opt, err := engine.Permutation(input)
			if err != nil {
				t.Fatal(err)
			}
			ref, err := engine.PermutationReference(input)
			if err != nil {
				t.Fatal(err)
			}
			for i := range opt {
				if !opt[i].Equal(&ref[i]) {
					t.Fatalf("width %d: optimized and reference outputs differ at coordinate %d", width, i)
				}
			}
		}
	}
}

func TestPermutationInputLength(t *testing.T) {
	p := testParams(t, 3, 8, 10)
	engine := New(p)
	for _, n := range []int{0, 2, 4} {
		if _, err := engine.Permutation(make([]fr.Element, n)); !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("Permutation with %d elements: got %v, want ErrInvalidParameters", n, err)
		}
		if _, err := engine.PermutationReference(make([]fr.Element, n)); !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("PermutationReference with %d elements: got %v, want ErrInvalidParameters", n, err)
		}
	}
}

func TestPermutationDoesNotMutateInput(t *testing.T) {
	p := testParams(t, 3, 8, 10)
	input := randVector(t, 3)
	saved := append([]fr.Element(nil), input...)
	if _, err := New(p).Permutation(input); err != nil {
		t.Fatal(err)
	}
	for i := range input {
		if !input[i].Equal(&saved[i]) {
			t.Fatalf("input coordinate %d was mutated", i)
		}
	}
}

func TestSBoxExponents(t *testing.T) {
	// The squaring chains for d = 3, 5, 7 must agree with generic
	// exponentiation.
	for _, d := range []int{3, 5, 7, 11} {
		engine := &Poseidon[fr.Element, *fr.Element]{params: &Params[fr.Element, *fr.Element]{d: d}}
		for run := 0; run < 3; run++ {
			var x fr.Element
			if _, err := x.SetRandom(); err != nil {
				t.Fatal(err)
			}
			got := x
			engine.sboxElement(&got)
			var want fr.Element
			want.Exp(x, big.NewInt(int64(d)))
			if !got.Equal(&want) {
				t.Fatalf("d=%d: s-box disagrees with x^d", d)
			}
		}
	}
}
