package hexastore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalAddRemove(t *testing.T) {
	term := newTerminal()

	require.Equal(t, added, term.Add(5))
	require.Equal(t, added, term.Add(1))
	require.Equal(t, added, term.Add(3))
	require.Equal(t, existed, term.Add(3))
	require.Equal(t, []NodeId{1, 3, 5}, term.leaves)

	require.Equal(t, removed, term.Remove(3))
	require.Equal(t, absent, term.Remove(3))
	require.Equal(t, []NodeId{1, 5}, term.leaves)
}

func TestTerminalContainsAndSeek(t *testing.T) {
	term := newTerminal()
	for _, v := range []NodeId{2, 4, 6, 8} {
		term.Add(v)
	}

	require.True(t, term.Contains(4))
	require.False(t, term.Contains(5))

	require.Equal(t, 0, term.SeekIndex(1))
	require.Equal(t, 1, term.SeekIndex(3))
	require.Equal(t, 1, term.SeekIndex(4))
	require.Equal(t, 4, term.SeekIndex(9))
}

func TestTerminalIterate(t *testing.T) {
	term := newTerminal()
	for _, v := range []NodeId{9, 1, 5} {
		term.Add(v)
	}

	var got []NodeId
	term.Iterate(func(leaf NodeId) bool {
		got = append(got, leaf)
		return true
	})
	require.Equal(t, []NodeId{1, 5, 9}, got)
}

func TestTerminalAcquireRelease(t *testing.T) {
	term := newTerminal()
	require.EqualValues(t, 1, term.refCount)

	term.Acquire()
	require.EqualValues(t, 2, term.refCount)
	require.False(t, term.Release())
	require.True(t, term.Release())
}

func TestTerminalWriteReadRoundTrip(t *testing.T) {
	term := newTerminal()
	for _, v := range []NodeId{3, 1, 4, 1, 5} {
		term.Add(v)
	}
	term.Acquire()

	var buf bytes.Buffer
	require.NoError(t, term.Write(&buf))

	back, err := ReadTerminal(&buf)
	require.NoError(t, err)
	require.Equal(t, term.leaves, back.leaves)
	require.EqualValues(t, 2, back.refCount)
}

func TestReadTerminalBadMagic(t *testing.T) {
	_, err := ReadTerminal(bytes.NewReader([]byte{'X'}))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestReadTerminalShortRead(t *testing.T) {
	_, err := ReadTerminal(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrShortRead)
}
