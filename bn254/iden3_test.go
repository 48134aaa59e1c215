package bn254

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	iden3poseidon "github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/stretchr/testify/require"
)

// go-iden3-crypto is an independent implementation of the same circom
// Poseidon instances; hashing inputs there runs the width len(inputs)+1
// permutation over [0, inputs...] and returns coordinate 0, which matches
// our commitment and chain-step call patterns exactly.

func TestCommitMatchesIden3(t *testing.T) {
	cases := []struct {
		guess   uint16
		address string
		rand    string
	}{
		{5, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", "0xa"},
		{6, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "0xa"},
		{0, "0x1", "0x2"},
		{65535, "0xffffffffffffffffffffffffffffffffffffffff", "0x123456789abcdef"},
	}
	for _, tc := range cases {
		got, err := Commit(tc.guess, tc.address, tc.rand)
		require.NoError(t, err)

		addr, err := FromHexString(tc.address)
		require.NoError(t, err)
		rnd, err := FromHexString(tc.rand)
		require.NoError(t, err)

		want, err := iden3poseidon.Hash([]*big.Int{
			new(big.Int).SetUint64(uint64(tc.guess)),
			addr.BigInt(new(big.Int)),
			rnd.BigInt(new(big.Int)),
		})
		require.NoError(t, err)

		require.Equal(t, want.Text(16), got.BigInt(new(big.Int)).Text(16), "guess %d", tc.guess)
	}
}

func TestHashChainMatchesIden3(t *testing.T) {
	inputs := []fr.Element{randElement(t), randElement(t), randElement(t)}

	// Each chain step is the width-3 permutation of [0, previous, input],
	// which iden3 exposes as Hash([previous, input]).
	prev := new(big.Int)
	for i := range inputs {
		var err error
		prev, err = iden3poseidon.Hash([]*big.Int{prev, inputs[i].BigInt(new(big.Int))})
		require.NoError(t, err)
	}

	got, err := HashChain(inputs)
	require.NoError(t, err)
	require.Equal(t, prev.Text(16), got.BigInt(new(big.Int)).Text(16))
}
