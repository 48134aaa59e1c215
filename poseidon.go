package poseidon

import (
	"fmt"
	"math/big"
)

// Poseidon executes the permutation for a fixed parameter set. It borrows
// the parameter set read-only and holds no mutable state of its own, so a
// single value may serve concurrent callers.
type Poseidon[E any, PE Element[E]] struct {
	params *Params[E, PE]
}

// New returns a permutation engine over params.
func New[E any, PE Element[E]](params *Params[E, PE]) *Poseidon[E, PE] {
	return &Poseidon[E, PE]{params: params}
}

// Width returns the state width t.
func (p *Poseidon[E, PE]) Width() int { return p.params.t }

// Permutation applies the Poseidon permutation to input, which must hold
// exactly t elements. The input slice is not modified. The partial rounds
// run on the pre-folded constants and sparse matrices derived at parameter
// construction; the result is identical to PermutationReference.
func (p *Poseidon[E, PE]) Permutation(input []E) ([]E, error) {
	pr := p.params
	t := pr.t
	if len(input) != t {
		return nil, fmt.Errorf("%w: state has %d elements, want %d", ErrInvalidParameters, len(input), t)
	}
	state := append([]E(nil), input...)

	for r := 0; r < pr.roundsFBeginning; r++ {
		addRoundConstants[E, PE](state, pr.roundConstants[r*t:(r+1)*t])
		p.sbox(state)
		state = matVecMul[E, PE](pr.mds, state, t)
	}

	// Transition into the partial phase: a full-width folded constant and
	// the dense equivalent matrix in place of the MDS.
	pEnd := pr.roundsFBeginning + pr.roundsP
	addRoundConstants[E, PE](state, pr.optRoundConstants[:t])
	state = matVecMul[E, PE](pr.mI, state, t)

	for r := pr.roundsFBeginning; r < pEnd; r++ {
		p.sboxElement(&state[0])
		if r < pEnd-1 {
			PE(&state[0]).Add(&state[0], &pr.optRoundConstants[t+r-pr.roundsFBeginning])
		}
		state = p.cheapMatMul(state, pEnd-r-1)
	}

	for r := pEnd; r < pr.rounds; r++ {
		addRoundConstants[E, PE](state, pr.roundConstants[r*t:(r+1)*t])
		p.sbox(state)
		state = matVecMul[E, PE](pr.mds, state, t)
	}
	return state, nil
}

// PermutationReference applies the unoptimized permutation: every round,
// partial ones included, adds the original round-constant row and
// multiplies by the unmodified MDS matrix. It exists to cross-validate
// Permutation; the two agree on every input.
func (p *Poseidon[E, PE]) PermutationReference(input []E) ([]E, error) {
	pr := p.params
	t := pr.t
	if len(input) != t {
		return nil, fmt.Errorf("%w: state has %d elements, want %d", ErrInvalidParameters, len(input), t)
	}
	state := append([]E(nil), input...)

	for r := 0; r < pr.rounds; r++ {
		addRoundConstants[E, PE](state, pr.roundConstants[r*t:(r+1)*t])
		if r < pr.roundsFBeginning || r >= pr.roundsFBeginning+pr.roundsP {
			p.sbox(state)
		} else {
			p.sboxElement(&state[0])
		}
		state = matVecMul[E, PE](pr.mds, state, t)
	}
	return state, nil
}

// cheapMatMul replaces the MDS multiply of a partial round by the sparse
// factors recorded for it (r counts down from roundsP-1): coordinate 0
// becomes mds[0][0]·state[0] + Σ wHat[i]·state[i+1], every other coordinate
// i becomes v[i]·state[0] + state[i+1]. O(t) multiplications instead of t².
func (p *Poseidon[E, PE]) cheapMatMul(state []E, r int) []E {
	pr := p.params
	t := pr.t
	sub := t - 1
	v := pr.v[r*sub : (r+1)*sub]
	wHat := pr.wHat[r*sub : (r+1)*sub]

	newState := make([]E, t)
	var tmp E
	PE(&newState[0]).Mul(&pr.mds[0], &state[0])
	for i := 0; i < sub; i++ {
		PE(&tmp).Mul(&wHat[i], &state[i+1])
		PE(&newState[0]).Add(&newState[0], &tmp)
	}
	for i := 0; i < sub; i++ {
		PE(&newState[i+1]).Mul(&v[i], &state[0])
		PE(&newState[i+1]).Add(&newState[i+1], &state[i+1])
	}
	return newState
}

func (p *Poseidon[E, PE]) sbox(state []E) {
	for i := range state {
		p.sboxElement(&state[i])
	}
}

// sboxElement raises x to the d-th power, with squaring chains for the
// exponents that occur in practice.
func (p *Poseidon[E, PE]) sboxElement(x *E) {
	switch p.params.d {
	case 3:
		var x2 E
		PE(&x2).Square(x)
		PE(x).Mul(&x2, x)
	case 5:
		var x2, x4 E
		PE(&x2).Square(x)
		PE(&x4).Square(&x2)
		PE(x).Mul(&x4, x)
	case 7:
		var x2, x4, x6 E
		PE(&x2).Square(x)
		PE(&x4).Square(&x2)
		PE(&x6).Mul(&x4, &x2)
		PE(x).Mul(&x6, x)
	default:
		PE(x).Exp(*x, big.NewInt(int64(p.params.d)))
	}
}

func addRoundConstants[E any, PE Element[E]](state, rc []E) {
	for i := range state {
		PE(&state[i]).Add(&state[i], &rc[i])
	}
}
