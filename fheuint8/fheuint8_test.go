package fheuint8_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/fheuint8"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/params"
)

func setup(t *testing.T) (*fheuint8.ClientKey, *fheuint8.Evaluator, *prng.Source) {
	t.Helper()
	lit, err := params.Default(params.PresetToy)
	require.NoError(t, err)
	p, err := params.NewFromLiteral(lit)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	ck, sk, err := boolpkg.GenKeys(p, src)
	require.NoError(t, err)

	return &fheuint8.ClientKey{ClientKey: ck}, fheuint8.NewEvaluator(sk.Evaluator), src
}

func TestAddWrapping(t *testing.T) {
	ck, ev, src := setup(t)
	for _, tc := range [][2]uint8{{3, 5}, {200, 100}, {255, 1}, {0, 0}} {
		a := ck.Encrypt(tc[0], src)
		b := ck.Encrypt(tc[1], src)
		got, err := ck.Decrypt(ev.Add(a, b))
		require.NoError(t, err)
		require.Equal(t, tc[0]+tc[1], got)
	}
}

func TestSubWrapping(t *testing.T) {
	ck, ev, src := setup(t)
	for _, tc := range [][2]uint8{{5, 3}, {3, 5}, {0, 1}, {200, 200}} {
		a := ck.Encrypt(tc[0], src)
		b := ck.Encrypt(tc[1], src)
		got, err := ck.Decrypt(ev.Sub(a, b))
		require.NoError(t, err)
		require.Equal(t, tc[0]-tc[1], got)
	}
}

func TestChainedArithmeticScenario(t *testing.T) {
	// ((a+b)*c)*d for (3,5,7,2) == 112 mod 256.
	ck, ev, src := setup(t)
	a := ck.Encrypt(3, src)
	b := ck.Encrypt(5, src)
	c := ck.Encrypt(7, src)
	d := ck.Encrypt(2, src)

	r := ev.Mul(ev.Mul(ev.Add(a, b), c), d)
	got, err := ck.Decrypt(r)
	require.NoError(t, err)
	require.EqualValues(t, 112, got)
}

func TestDivRem(t *testing.T) {
	ck, ev, src := setup(t)

	a := ck.Encrypt(200, src)
	b := ck.Encrypt(7, src)
	q, rem := ev.DivRem(a, b)
	gotQ, err := ck.Decrypt(q)
	require.NoError(t, err)
	gotR, err := ck.Decrypt(rem)
	require.NoError(t, err)
	require.EqualValues(t, 28, gotQ)
	require.EqualValues(t, 4, gotR)
}

func TestDivByZero(t *testing.T) {
	ck, ev, src := setup(t)

	a := ck.Encrypt(42, src)
	zero := ck.Encrypt(0, src)
	q, rem := ev.DivRem(a, zero)
	gotQ, err := ck.Decrypt(q)
	require.NoError(t, err)
	gotR, err := ck.Decrypt(rem)
	require.NoError(t, err)
	require.EqualValues(t, 255, gotQ)
	require.EqualValues(t, 42, gotR)
}

func TestComparatorChain(t *testing.T) {
	// lt/gt/eq/le/ge over a fixed triple.
	ck, ev, src := setup(t)
	a := ck.Encrypt(50, src)
	b := ck.Encrypt(60, src)
	c := ck.Encrypt(60, src)

	lt, err := ck.ClientKey.Decrypt(ev.Lt(a, b))
	require.NoError(t, err)
	require.True(t, lt)

	gt, err := ck.ClientKey.Decrypt(ev.Gt(a, b))
	require.NoError(t, err)
	require.False(t, gt)

	eq, err := ck.ClientKey.Decrypt(ev.Eq(b, c))
	require.NoError(t, err)
	require.True(t, eq)

	le, err := ck.ClientKey.Decrypt(ev.Le(b, c))
	require.NoError(t, err)
	require.True(t, le)

	ge, err := ck.ClientKey.Decrypt(ev.Ge(a, b))
	require.NoError(t, err)
	require.False(t, ge)
}
