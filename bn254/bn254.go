// Package bn254 ships the two circom Poseidon instances over the BN254
// scalar field (state widths 3 and 4) and the constructions built on them:
// a commit-reveal commitment for the guessing game and a sequential hash
// chain.
package bn254

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcommit/poseidon"
)

// ErrParseField reports a string that cannot be parsed as a field element.
var ErrParseField = errors.New("bn254: cannot parse as field element")

// Params is a Poseidon parameter set over the BN254 scalar field.
type Params = poseidon.Params[fr.Element, *fr.Element]

// Poseidon is a permutation engine over the BN254 scalar field.
type Poseidon = poseidon.Poseidon[fr.Element, *fr.Element]

var (
	// Params3 is the circom parameter set with state width 3, used by the
	// hash chain.
	Params3 = mustParams(3, 8, 57, circomMdsT3, circomArcT3)
	// Params4 is the circom parameter set with state width 4, used by the
	// commitment.
	Params4 = mustParams(4, 8, 56, circomMdsT4, circomArcT4)
)

// mustParams parses the compiled-in tables and derives the optimized
// artifacts once, at package initialization.
func mustParams(t, roundsF, roundsP int, mdsHex, arcHex []string) *Params {
	mds := make([]fr.Element, len(mdsHex))
	for i, s := range mdsHex {
		mds[i] = mustHex(s)
	}
	arc := make([]fr.Element, len(arcHex))
	for i, s := range arcHex {
		arc[i] = mustHex(s)
	}
	p, err := poseidon.NewParams[fr.Element, *fr.Element](t, 5, roundsF, roundsP, mds, arc)
	if err != nil {
		panic(err)
	}
	return p
}

func mustHex(s string) fr.Element {
	e, err := FromHexString(s)
	if err != nil {
		panic(err)
	}
	return e
}

// FromHexString parses a hexadecimal string, with or without a 0x prefix,
// as an unsigned big integer reduced into the field.
func FromHexString(s string) (fr.Element, error) {
	var e fr.Element
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok || n.Sign() < 0 {
		return e, fmt.Errorf("%w: %q", ErrParseField, s)
	}
	e.SetBigInt(n)
	return e, nil
}

// ToHexString renders e as a lowercase 0x-prefixed hexadecimal big integer,
// without fixed-width padding.
func ToHexString(e fr.Element) string {
	var n big.Int
	e.BigInt(&n)
	return "0x" + n.Text(16)
}

// Commit builds the guessing-game commitment: one width-4 permutation over
// [0, guess, address, randomness], returning output coordinate 0. address
// and randomness are hex encoded.
func Commit(guess uint16, address, randomness string) (fr.Element, error) {
	var zero fr.Element
	addr, err := FromHexString(address)
	if err != nil {
		return zero, err
	}
	rnd, err := FromHexString(randomness)
	if err != nil {
		return zero, err
	}
	var g fr.Element
	g.SetUint64(uint64(guess))

	out, err := poseidon.New(Params4).Permutation([]fr.Element{zero, g, addr, rnd})
	if err != nil {
		return zero, err
	}
	return out[0], nil
}

// HashChain absorbs inputs in order through the width-3 instance. Before
// each permutation the previous output moves into slot 1, the capacity slot
// resets to zero and the new input fills slot 2; coordinate 0 of the final
// state is the chain output. Chaining is inherently sequential: each step
// depends on the previous output.
func HashChain(inputs []fr.Element) (fr.Element, error) {
	engine := poseidon.New(Params3)
	state := make([]fr.Element, 3)
	for i := range inputs {
		state[1] = state[0]
		state[0].SetZero()
		state[2] = inputs[i]
		out, err := engine.Permutation(state)
		if err != nil {
			return fr.Element{}, err
		}
		state = out
	}
	return state[0], nil
}
