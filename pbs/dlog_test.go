package pbs_test

import (
	"testing"

	"github.com/latticefhe/mpctfhe/pbs"
	"github.com/stretchr/testify/require"
)

func TestDiscreteLogTableCoversAllOddResidues(t *testing.T) {
	const q = 32
	const g = 5
	table := pbs.NewDiscreteLogTable(q, g)

	seen := make(map[int]uint64)
	for a := uint64(1); a < q; a += 2 {
		k := table.Lookup(a)
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, q/2)
		if prev, ok := seen[k]; ok {
			t.Fatalf("bucket %d claimed by both %d and %d", k, prev, a)
		}
		seen[k] = a
	}
	require.Len(t, seen, q/2)
}

func TestModSwitchOddIsAlwaysOdd(t *testing.T) {
	for v := uint64(0); v < 769; v++ {
		got := pbs.ModSwitchOdd(v, 769, 32)
		require.Equal(t, uint64(1), got&1, "ModSwitchOdd(%d) = %d must be odd", v, got)
	}
}
