package hexastore

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(cur *StatementsCursor) []Triple {
	var got []Triple
	for !cur.Finished() {
		tr, _ := cur.Current()
		got = append(got, tr)
		cur.Advance()
	}
	return got
}

func TestGetStatementsOrderedByObjectThenPredicate(t *testing.T) {
	hx := New()
	hx.AddTriple(1, 2, 3)
	hx.AddTriple(1, 2, 4)
	hx.AddTriple(1, 5, 3)

	require.EqualValues(t, 3, hx.TriplesCount())

	cur := hx.GetStatements(1, 0, 0, 2)
	require.Equal(t, []Triple{
		{S: 1, P: 2, O: 3},
		{S: 1, P: 5, O: 3},
		{S: 1, P: 2, O: 4},
	}, drain(cur))
}

func TestGetStatementsOrderedBySubject(t *testing.T) {
	hx := New()
	hx.AddTriple(1, 2, 3)
	hx.AddTriple(4, 2, 3)
	hx.AddTriple(1, 2, 5)

	cur := hx.GetStatements(0, 2, 0, 0)
	require.Equal(t, []Triple{
		{S: 1, P: 2, O: 3},
		{S: 1, P: 2, O: 5},
		{S: 4, P: 2, O: 3},
	}, drain(cur))
}

func TestGetStatementsRepeatedVariableUnification(t *testing.T) {
	// (1,2,1) has subject==object just like the other two inserted
	// triples, so it must also satisfy a repeated-variable pattern on
	// those positions. See DESIGN.md.
	hx := New()
	hx.AddTriple(1, 1, 1)
	hx.AddTriple(2, 2, 2)
	hx.AddTriple(1, 2, 1)
	hx.AddTriple(1, 2, 3)

	cur := hx.GetStatements(-1, 0, -1, 0)
	require.ElementsMatch(t, []Triple{
		{S: 1, P: 1, O: 1},
		{S: 2, P: 2, O: 2},
		{S: 1, P: 2, O: 1},
	}, drain(cur))
}

func TestInsertThenRemove(t *testing.T) {
	hx := New()
	hx.AddTriple(7, 8, 9)
	hx.RemoveTriple(7, 8, 9)

	require.EqualValues(t, 0, hx.TriplesCount())
	require.Empty(t, drain(hx.GetStatements(0, 0, 0, 0)))
}

func TestBulkInsertMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	batch := make(TripleBatch, 10_000)
	for i := range batch {
		batch[i] = Triple{
			S: NodeId(rng.Intn(200) + 1),
			P: NodeId(rng.Intn(50) + 1),
			O: NodeId(rng.Intn(200) + 1),
		}
	}

	serial := New(WithBulkThreshold(1 << 30)) // never parallelizes
	serial.AddTriples(batch)

	bulk := New(WithBulkThreshold(100)) // forces the goroutine fan-out
	bulk.AddTriples(batch)

	require.Equal(t, serial.TriplesCount(), bulk.TriplesCount())

	got := drain(bulk.GetStatements(0, 0, 0, 0))
	want := drain(serial.GetStatements(0, 0, 0, 0))
	require.ElementsMatch(t, want, got)
}

func TestWriteReadRoundTrip(t *testing.T) {
	hx := New()
	hx.AddTriple(1, 2, 3)
	hx.AddTriple(1, 2, 4)
	hx.AddTriple(4, 5, 6)

	var buf bytes.Buffer
	require.NoError(t, hx.Write(&buf))

	back, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, hx.TriplesCount(), back.TriplesCount())

	want := drain(hx.GetStatements(0, 0, 0, 0))
	got := drain(back.GetStatements(0, 0, 0, 0))
	require.ElementsMatch(t, want, got)
}

func TestTriplesCountMatchesAllSixIndexes(t *testing.T) {
	hx := New()
	hx.AddTriple(1, 2, 3)
	hx.AddTriple(4, 5, 6)
	hx.RemoveTriple(1, 2, 3)

	for k := indexKind(0); k < numKinds; k++ {
		require.EqualValues(t, hx.TriplesCount(), hx.indexes[k].triplesCount(), "index %s", k)
	}
}

func TestInsertRemoveIdempotence(t *testing.T) {
	hx := New()
	hx.AddTriple(1, 2, 3)
	hx.AddTriple(1, 2, 3)
	require.EqualValues(t, 1, hx.TriplesCount())

	hx.RemoveTriple(1, 2, 3)
	hx.RemoveTriple(1, 2, 3)
	require.EqualValues(t, 0, hx.TriplesCount())
}

func TestReadBadMagicFails(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{'Y'}))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestApproxMemoryBytesGrowsWithData(t *testing.T) {
	hx := New()
	before := hx.ApproxMemoryBytes()
	hx.AddTriple(1, 2, 3)
	require.Greater(t, hx.ApproxMemoryBytes(), before)
}
