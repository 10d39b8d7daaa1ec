// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

import (
	"io"
	"slices"
)

// addResult reports the outcome of Terminal.Add.
type addResult int

const (
	added addResult = iota
	existed
)

// removeResult reports the outcome of Terminal.Remove.
type removeResult int

const (
	removed removeResult = iota
	absent
)

// Terminal is a monotonically sorted, duplicate-free sequence of leaf
// NodeIds, the deepest coordinate of a triple. It is the only place leaf
// data is stored, and is shared by pointer between the two Indexes of a
// pair: refCount tracks how many Vector entries currently point at this
// Terminal (1 or 2 in steady state).
type Terminal struct {
	leaves   []NodeId
	refCount int32
}

func newTerminal() *Terminal {
	return &Terminal{refCount: 1}
}

// Add inserts leaf if absent, preserving sort order. The backing slice
// grows geometrically via append, same as every other dynamically sized
// structure in this package.
func (t *Terminal) Add(leaf NodeId) addResult {
	idx, found := slices.BinarySearch(t.leaves, leaf)
	if found {
		return existed
	}
	t.leaves = slices.Insert(t.leaves, idx, leaf)
	return added
}

// Remove deletes leaf if present. It is idempotent: removing an absent
// leaf is a no-op, not an error.
func (t *Terminal) Remove(leaf NodeId) removeResult {
	idx, found := slices.BinarySearch(t.leaves, leaf)
	if !found {
		return absent
	}
	t.leaves = slices.Delete(t.leaves, idx, idx+1)
	return removed
}

// Contains reports whether leaf is present.
func (t *Terminal) Contains(leaf NodeId) bool {
	_, found := slices.BinarySearch(t.leaves, leaf)
	return found
}

// Size returns the number of leaves currently stored.
func (t *Terminal) Size() int { return len(t.leaves) }

// At returns the i-th leaf in ascending order.
func (t *Terminal) At(i int) NodeId { return t.leaves[i] }

// SeekIndex returns the index of the first leaf >= key, or Size() if none
// qualifies. Used by Cursor to reposition at-or-past a bound value.
func (t *Terminal) SeekIndex(key NodeId) int {
	idx, _ := slices.BinarySearch(t.leaves, key)
	return idx
}

// Iterate calls yield for every leaf in ascending order, stopping early if
// yield returns false.
func (t *Terminal) Iterate(yield func(NodeId) bool) {
	for _, l := range t.leaves {
		if !yield(l) {
			return
		}
	}
}

// Acquire registers one more owning Vector entry.
func (t *Terminal) Acquire() {
	t.refCount++
}

// Release unregisters one owning Vector entry and reports whether this was
// the last reference. A Terminal that has lost its last reference is ready
// for its caller to unlink and let the garbage collector reclaim; there is
// no separate free call in Go.
func (t *Terminal) Release() (last bool) {
	t.refCount--
	return t.refCount <= 0
}

// Write serializes the Terminal as 'T' u32 term_size u32 refcount
// NodeId{term_size}, all little-endian.
func (t *Terminal) Write(w io.Writer) error {
	if err := writeByte(w, 'T'); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(t.leaves))); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(t.refCount)); err != nil {
		return err
	}
	for _, leaf := range t.leaves {
		if err := writeUint64(w, uint64(leaf)); err != nil {
			return err
		}
	}
	return nil
}

// ReadTerminal deserializes a Terminal written by Write. It always
// produces an independent Terminal object; pointer sharing between a pair
// is not re-established on read (readIndex skips it), since sharing is a
// memory optimization, not a correctness property.
func ReadTerminal(r io.Reader) (*Terminal, error) {
	if err := expectByte(r, 'T'); err != nil {
		return nil, err
	}
	size, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	refCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	t := &Terminal{
		leaves:   make([]NodeId, size),
		refCount: int32(refCount),
	}
	for i := range t.leaves {
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		t.leaves[i] = NodeId(v)
	}
	return t, nil
}
