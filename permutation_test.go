package hexastore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermutationApplyUnapplyRoundTrip(t *testing.T) {
	tr := Triple{S: 1, P: 2, O: 3}
	for k := indexKind(0); k < numKinds; k++ {
		perm := permutations[k]
		top, mid, leaf := perm.apply(tr)
		require.Equal(t, tr, perm.unapply(top, mid, leaf), "permutation %s must round-trip", k)
	}
}

func TestPairedKindIsInvolution(t *testing.T) {
	for k := indexKind(0); k < numKinds; k++ {
		other := pairedKind[k]
		require.NotEqual(t, k, other)
		require.Equal(t, k, pairedKind[other], "pairing must be symmetric")
	}
}

func TestPairedKindSharesLeafAxis(t *testing.T) {
	// A pair's permutations agree on the leaf (third) slot and swap the
	// first two.
	for k := indexKind(0); k < numKinds; k++ {
		p, q := permutations[k], permutations[pairedKind[k]]
		require.Equal(t, p[2], q[2])
		require.Equal(t, p[0], q[1])
		require.Equal(t, p[1], q[0])
	}
}

func TestKindByFirstTwoCoversAllSixCombinations(t *testing.T) {
	for k := indexKind(0); k < numKinds; k++ {
		p := permutations[k]
		require.Equal(t, k, kindByFirstTwo(p[0], p[1]))
	}
}
