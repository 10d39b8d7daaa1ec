package hexastore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func insertAll(idx *Index, triples ...Triple) {
	for _, t := range triples {
		idx.insertCreating(t)
	}
}

func TestCursorFullPrefixYieldsExactlyOne(t *testing.T) {
	// The cursor anchored on any permutation at the full prefix yields
	// exactly one triple equal to the source triple.
	for k := indexKind(0); k < numKinds; k++ {
		idx := newIndex(k, nil)
		tr := Triple{S: 1, P: 2, O: 3}
		idx.insertCreating(tr)

		top, mid, leaf := idx.perm.apply(tr)
		cur := NewCursor(idx, top, mid, leaf)
		require.False(t, cur.Finished(), "kind %s", k)
		got, ok := cur.Current()
		require.True(t, ok)
		require.Equal(t, tr, got)

		cur.Advance()
		require.True(t, cur.Finished(), "kind %s", k)
	}
}

func TestCursorUnboundIteratesAllInOrder(t *testing.T) {
	idx := newIndex(kindSOP, nil)
	insertAll(idx,
		Triple{S: 1, P: 2, O: 3},
		Triple{S: 1, P: 5, O: 3},
		Triple{S: 1, P: 2, O: 4},
	)

	cur := NewCursor(idx, 1, 0, 0)
	var got []Triple
	for !cur.Finished() {
		tr, ok := cur.Current()
		require.True(t, ok)
		got = append(got, tr)
		cur.Advance()
	}

	require.Equal(t, []Triple{
		{S: 1, P: 2, O: 3},
		{S: 1, P: 5, O: 3},
		{S: 1, P: 2, O: 4},
	}, got)
}

func TestCursorAbsentBoundIsImmediatelyFinished(t *testing.T) {
	idx := newIndex(kindSPO, nil)
	idx.insertCreating(Triple{S: 1, P: 2, O: 3})

	cur := NewCursor(idx, 99, 0, 0)
	require.True(t, cur.Finished())
	_, ok := cur.Current()
	require.False(t, ok)
}

func TestCursorSeekSkipsForward(t *testing.T) {
	idx := newIndex(kindSPO, nil)
	insertAll(idx,
		Triple{S: 1, P: 1, O: 1},
		Triple{S: 1, P: 1, O: 5},
		Triple{S: 1, P: 1, O: 9},
	)

	cur := NewCursor(idx, 1, 1, 0)
	cur.Seek(4)
	tr, ok := cur.Current()
	require.True(t, ok)
	require.Equal(t, Triple{S: 1, P: 1, O: 5}, tr)

	cur.Seek(100)
	require.True(t, cur.Finished())
}

func TestCursorReleaseExhausts(t *testing.T) {
	idx := newIndex(kindSPO, nil)
	idx.insertCreating(Triple{S: 1, P: 2, O: 3})

	cur := NewCursor(idx, 1, 2, 3)
	require.False(t, cur.Finished())
	cur.Release()
	require.True(t, cur.Finished())
}
