package poseidon

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters reports a dimension mismatch at construction time or
// a state-length mismatch at permutation time.
var ErrInvalidParameters = errors.New("poseidon: invalid parameters")

// Params bundles a Poseidon parameter set together with the equivalent
// artifacts consumed by the optimized partial-round phase. A value is
// immutable after NewParams returns and may be shared across arbitrarily
// many concurrent permutation calls.
type Params[E any, PE Element[E]] struct {
	t                int // state width
	d                int // s-box exponent
	roundsFBeginning int
	roundsP          int
	rounds           int

	mds            []E // t×t, row-major
	roundConstants []E // (roundsF+roundsP)×t, row-major

	// Equivalence-rewrite artifacts. optRoundConstants holds t entries for
	// the first partial round followed by one entry per remaining partial
	// round. v and wHat hold one (t-1)-row per partial round, stored in
	// derivation order; the permutation reads them back to front. mI
	// replaces the MDS matrix at the transition into the partial phase.
	optRoundConstants []E
	wHat              []E
	v                 []E
	mI                []E
}

// NewParams validates the raw parameter set and derives the optimized
// artifacts. mds is the t×t mixing matrix and roundConstants the
// (roundsF+roundsP)×t schedule, both flattened row-major. The caller is
// responsible for d being coprime with the order of the multiplicative
// group; that is not re-checked here.
func NewParams[E any, PE Element[E]](t, d, roundsF, roundsP int, mds, roundConstants []E) (*Params[E, PE], error) {
	if t < 2 {
		return nil, fmt.Errorf("%w: state width %d", ErrInvalidParameters, t)
	}
	if len(mds) != t*t {
		return nil, fmt.Errorf("%w: mds has %d entries, want %d", ErrInvalidParameters, len(mds), t*t)
	}
	rounds := roundsF + roundsP
	if len(roundConstants) != rounds*t {
		return nil, fmt.Errorf("%w: round constant schedule has %d entries, want %d", ErrInvalidParameters, len(roundConstants), rounds*t)
	}
	if roundsF%2 != 0 {
		return nil, fmt.Errorf("%w: full round count %d is odd", ErrInvalidParameters, roundsF)
	}
	if roundsP < 1 {
		return nil, fmt.Errorf("%w: partial round count %d", ErrInvalidParameters, roundsP)
	}

	p := &Params[E, PE]{
		t:                t,
		d:                d,
		roundsFBeginning: roundsF / 2,
		roundsP:          roundsP,
		rounds:           rounds,
		mds:              append([]E(nil), mds...),
		roundConstants:   append([]E(nil), roundConstants...),
	}
	p.mI, p.v, p.wHat = equivalentMatrices[E, PE](p.mds, t, roundsP)
	p.optRoundConstants = equivalentRoundConstants[E, PE](p.roundConstants, p.mds, t, p.roundsFBeginning, roundsP)
	return p, nil
}

// Width returns the state width t.
func (p *Params[E, PE]) Width() int { return p.t }

// equivalentMatrices rewrites the per-partial-round MDS multiply into the
// sparse v/wHat form. Starting from the transpose of the MDS matrix, each
// iteration splits off the first row tail (v), solves mHat·wHat = w for the
// first column tail, zeroes the split-off row and column, and folds the
// result back through the transposed MDS for the next iteration. Iteration
// i serves partial round roundsP-1-i. The final matrix, transposed again,
// is the dense multiply applied once when entering the partial phase.
func equivalentMatrices[E any, PE Element[E]](mds []E, t, roundsP int) (mI, v, wHat []E) {
	sub := t - 1
	wHat = make([]E, 0, roundsP*sub)
	v = make([]E, 0, roundsP*sub)

	mdsT := matTranspose[E, PE](mds, t)
	mMul := append([]E(nil), mdsT...)
	mI = make([]E, t*t)

	mHat := make([]E, sub*sub)
	w := make([]E, sub)
	for r := 0; r < roundsP; r++ {
		for row := 1; row < t; row++ {
			for col := 1; col < t; col++ {
				PE(&mHat[(row-1)*sub+(col-1)]).Set(&mMul[row*t+col])
			}
			PE(&w[row-1]).Set(&mMul[row*t])
		}
		v = append(v, mMul[1:t]...)
		wHat = append(wHat, matVecMul[E, PE](matInverse[E, PE](mHat, sub), w, sub)...)

		mI = mMul
		PE(&mI[0]).SetOne()
		for i := 1; i < t; i++ {
			PE(&mI[i]).SetZero()
			PE(&mI[i*t]).SetZero()
		}
		mMul = matMatMul[E, PE](mdsT, mI, t)
	}
	return matTranspose[E, PE](mI, t), v, wHat
}

// equivalentRoundConstants folds the MDS inverse backward through the
// partial-phase schedule so that at permutation time only the first state
// coordinate needs a constant added per partial round. The accumulated
// remainder becomes the full-width constant of the first partial round.
// Returned flat: t entries for the first partial round, then one entry per
// remaining round.
func equivalentRoundConstants[E any, PE Element[E]](rc, mds []E, t, roundsFBeginning, roundsP int) []E {
	opt := make([]E, t+roundsP-1)
	mdsInv := matInverse[E, PE](mds, t)

	pEnd := roundsFBeginning + roundsP - 1
	tmp := append([]E(nil), rc[pEnd*t:(pEnd+1)*t]...)
	for i := roundsP - 2; i >= 0; i-- {
		invCip := matVecMul[E, PE](mdsInv, tmp, t)
		PE(&opt[t+i]).Set(&invCip[0])
		copy(tmp, rc[(roundsFBeginning+i)*t:(roundsFBeginning+i+1)*t])
		for j := 1; j < t; j++ {
			PE(&tmp[j]).Add(&tmp[j], &invCip[j])
		}
	}
	copy(opt, tmp)
	return opt
}
