package bn254

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkcommit/poseidon"
)

func mustElement(t *testing.T, s string) fr.Element {
	t.Helper()
	e, err := FromHexString(s)
	if err != nil {
		t.Fatalf("parse element %q: %v", s, err)
	}
	return e
}

func randElement(t *testing.T) fr.Element {
	t.Helper()
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		t.Fatalf("sampling element: %v", err)
	}
	return e
}

func TestKatsT3(t *testing.T) {
	engine := poseidon.New(Params3)
	input := make([]fr.Element, 3)
	input[1].SetOne()
	input[2].SetUint64(2)

	perm, err := engine.Permutation(input)
	if err != nil {
		t.Fatal(err)
	}
	expected := []fr.Element{
		mustElement(t, "0x115cc0f5e7d690413df64c6b9662e9cf2a3617f2743245519e19607a4417189a"),
		mustElement(t, "0x0fca49b798923ab0239de1c9e7a4a9a2210312b6a2f616d18b5a87f9b628ae29"),
		mustElement(t, "0x0e7ae82e40091e63cbd4f16a6d16310b3729d4b6e138fcf54110e2867045a30c"),
	}
	for i := range expected {
		if !perm[i].Equal(&expected[i]) {
			t.Fatalf("coordinate %d mismatch\nexpected %s\ngot      %s", i, ToHexString(expected[i]), ToHexString(perm[i]))
		}
	}
}

func TestKatsT4(t *testing.T) {
	engine := poseidon.New(Params4)
	input := make([]fr.Element, 4)
	input[1].SetOne()
	input[2].SetUint64(2)
	input[3].SetUint64(3)

	perm, err := engine.Permutation(input)
	if err != nil {
		t.Fatal(err)
	}
	expected := []fr.Element{
		mustElement(t, "0x0e7732d89e6939c0ff03d5e58dab6302f3230e269dc5b968f725df34ab36d732"),
		mustElement(t, "0x07b0b86b41ec7fdfe6c17ee6ccdddce4e47e748e493e542f9a435b0dde022a0d"),
		mustElement(t, "0x04362e50fcc8be421898d47ace20eab18b0a6efab0e12ade49f2df609fec4209"),
		mustElement(t, "0x1a779bd9781d3a8354eae5ed74e7fa44fa0e458e45a1407524bddf3b9f2bf2d7"),
	}
	for i := range expected {
		if !perm[i].Equal(&expected[i]) {
			t.Fatalf("coordinate %d mismatch\nexpected %s\ngot      %s", i, ToHexString(expected[i]), ToHexString(perm[i]))
		}
	}
}

func TestCommitmentKnownAnswers(t *testing.T) {
	cases := []struct {
		guess    uint16
		address  string
		rand     string
		expected string
	}{
		{
			guess:    5,
			address:  "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			rand:     "0xa",
			expected: "0x2346b3b208c9e65959af9824ccab4da69ae27d222204fcf0ace7f725e02e512d",
		},
		{
			guess:    6,
			address:  "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
			rand:     "0xa",
			expected: "0x1cb75e97aa2b617f4d0c6bf6c99606af77cc899ee8c3e765e48af3b4a4f9cf67",
		},
	}
	for _, tc := range cases {
		got, err := Commit(tc.guess, tc.address, tc.rand)
		if err != nil {
			t.Fatal(err)
		}
		expected := mustElement(t, tc.expected)
		if !got.Equal(&expected) {
			t.Fatalf("commitment for guess %d mismatch\nexpected %s\ngot      %s", tc.guess, tc.expected, ToHexString(got))
		}
	}
}

func TestHashChainSingleElement(t *testing.T) {
	// Chaining a one-element sequence is exactly one permutation of
	// [0, 0, x].
	x := randElement(t)
	chain, err := HashChain([]fr.Element{x})
	if err != nil {
		t.Fatal(err)
	}
	state := make([]fr.Element, 3)
	state[2] = x
	perm, err := poseidon.New(Params3).Permutation(state)
	if err != nil {
		t.Fatal(err)
	}
	if !chain.Equal(&perm[0]) {
		t.Fatalf("chain output %s, permutation coordinate 0 %s", ToHexString(chain), ToHexString(perm[0]))
	}
}

func TestHashChainVectors(t *testing.T) {
	one := mustElement(t, "0x1")
	two := mustElement(t, "0x2")
	three := mustElement(t, "0x3")
	cases := []struct {
		inputs   []fr.Element
		expected string
	}{
		{[]fr.Element{one}, "0x1bd20834f5de9830c643778a2e88a3a1363c8b9ac083d36d75bf87c49953e65e"},
		{[]fr.Element{one, two}, "0x1a10eff92ef503e5c72d7993c5a0547b2c2c60a3142d882d1e5d8d8a9a7ffa90"},
		{[]fr.Element{one, two, three}, "0x2c7f85663e4ec17c456b173fbb5c5b8a0718bcd1fc1671937a1abe9cf1f53fc7"},
	}
	for _, tc := range cases {
		got, err := HashChain(tc.inputs)
		if err != nil {
			t.Fatal(err)
		}
		expected := mustElement(t, tc.expected)
		if !got.Equal(&expected) {
			t.Fatalf("chain of %d inputs mismatch\nexpected %s\ngot      %s", len(tc.inputs), tc.expected, ToHexString(got))
		}
	}
}

func TestHashChainEmpty(t *testing.T) {
	got, err := HashChain(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatalf("empty chain output %s, want 0", ToHexString(got))
	}
}

func TestFromHexString(t *testing.T) {
	a := mustElement(t, "0xa")
	b := mustElement(t, "A")
	if !a.Equal(&b) {
		t.Fatal("prefix and case should not matter")
	}

	// Values at or above the modulus reduce into the field.
	modPlusOne := mustElement(t, "0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000002")
	var one fr.Element
	one.SetOne()
	if !modPlusOne.Equal(&one) {
		t.Fatalf("p+1 should reduce to 1, got %s", ToHexString(modPlusOne))
	}

	for _, s := range []string{"", "0x", "zz", "-a", "0xg1"} {
		if _, err := FromHexString(s); !errors.Is(err, ErrParseField) {
			t.Fatalf("FromHexString(%q): got %v, want ErrParseField", s, err)
		}
	}
}

func TestToHexString(t *testing.T) {
	e := mustElement(t, "0xa")
	if got := ToHexString(e); got != "0xa" {
		t.Fatalf("ToHexString = %q, want %q", got, "0xa")
	}
	e = mustElement(t, "0x2346b3b208c9e65959af9824ccab4da69ae27d222204fcf0ace7f725e02e512d")
	if got := ToHexString(e); got != "0x2346b3b208c9e65959af9824ccab4da69ae27d222204fcf0ace7f725e02e512d" {
		t.Fatalf("ToHexString round trip failed: %q", got)
	}
}

func TestCommitRejectsBadInput(t *testing.T) {
	if _, err := Commit(1, "not-hex", "0xa"); !errors.Is(err, ErrParseField) {
		t.Fatalf("bad address: got %v, want ErrParseField", err)
	}
	if _, err := Commit(1, "0xa", ""); !errors.Is(err, ErrParseField) {
		t.Fatalf("bad randomness: got %v, want ErrParseField", err)
	}
}

func TestPermutationWidthMismatch(t *testing.T) {
	if _, err := poseidon.New(Params3).Permutation(make([]fr.Element, 4)); !errors.Is(err, poseidon.ErrInvalidParameters) {
		t.Fatalf("got %v, want ErrInvalidParameters", err)
	}
}
