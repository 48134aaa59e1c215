// Package poseidon implements the Poseidon permutation over a generic
// prime-field element, including the one-time rewrite of the MDS matrix and
// round-constant schedule into the algebraically equivalent, cheaper form
// used during the partial rounds.
package poseidon

import "math/big"

// Element constrains a prime-field element implemented with pointer
// receivers, the convention used by gnark-crypto field types. Methods must
// tolerate the receiver aliasing any operand. The zero value of E must be
// a valid scratch target for the methods below.
type Element[E any] interface {
	*E
	Set(x *E) *E
	SetZero() *E
	SetOne() *E
	Add(x, y *E) *E
	Sub(x, y *E) *E
	Mul(x, y *E) *E
	Square(x *E) *E
	Exp(x E, k *big.Int) *E
	Inverse(x *E) *E
	IsZero() bool
}
