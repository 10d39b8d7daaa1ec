// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

import (
	"io"

	"github.com/google/btree"
)

// vecEntry is one (mid -> Terminal) mapping stored in a Vector's btree.
type vecEntry struct {
	mid  NodeId
	term *Terminal
}

func vecEntryLess(a, b vecEntry) bool { return a.mid < b.mid }

// Vector is an ordered mapping from a middle-coordinate NodeId to a
// Terminal, with a cached sum of Terminal sizes for O(1) size queries. The
// backing ordered map is a github.com/google/btree BTreeG: it gives
// O(log n) lookup, in-order iteration, and - via AscendGreaterOrEqual -
// at-or-past seek positioning in a single logarithmic call, which Cursor
// relies on directly.
type Vector struct {
	tree         *btree.BTreeG[vecEntry]
	triplesCount uint64
	metrics      Metrics
}

const btreeDegree = 32

func newVector(metrics Metrics) *Vector {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Vector{
		tree:    btree.NewG(btreeDegree, vecEntryLess),
		metrics: metrics,
	}
}

// AddCreating finds or creates the Terminal at mid and adds leaf to it,
// returning the Terminal (for the paired index to attach) and the add
// outcome.
func (v *Vector) AddCreating(mid, leaf NodeId) (*Terminal, addResult) {
	e, ok := v.tree.Get(vecEntry{mid: mid})
	if !ok {
		e = vecEntry{mid: mid, term: newTerminal()}
		v.tree.ReplaceOrInsert(e)
		v.metrics.VectorEntryAllocated()
		v.metrics.TerminalAllocated()
	}
	res := e.term.Add(leaf)
	if res == added {
		v.triplesCount++
	}
	return e.term, res
}

// AddAttaching inserts term under mid without duplicating it: the paired
// index's half of the insertion protocol. If an entry already exists at
// mid it must be the same Terminal pointer; only triplesCount is bumped,
// and only when wasAdded is true.
func (v *Vector) AddAttaching(mid NodeId, term *Terminal, wasAdded bool) {
	if _, ok := v.tree.Get(vecEntry{mid: mid}); !ok {
		term.Acquire()
		v.tree.ReplaceOrInsert(vecEntry{mid: mid, term: term})
		v.metrics.VectorEntryAllocated()
	}
	if wasAdded {
		v.triplesCount++
	}
}

// Get returns the Terminal stored at mid, if any.
func (v *Vector) Get(mid NodeId) (*Terminal, bool) {
	e, ok := v.tree.Get(vecEntry{mid: mid})
	if !ok {
		return nil, false
	}
	return e.term, true
}

// Remove deletes leaf from the Terminal at mid, unlinking the entry (and
// releasing the Terminal) if it becomes empty. It decrements triplesCount
// by one iff leaf was actually present; used where a Vector is exercised
// standalone. Six-way removal across a Hexastore instead uses
// removeKnownPresent, see Index.remove.
func (v *Vector) Remove(mid, leaf NodeId) bool {
	e, ok := v.tree.Get(vecEntry{mid: mid})
	if !ok {
		return false
	}
	if e.term.Remove(leaf) != removed {
		return false
	}
	v.triplesCount--
	v.unlinkIfEmpty(mid, e.term)
	return true
}

// removeKnownPresent removes leaf from the Terminal at mid, assuming the
// caller has already established (once, e.g. via the SPO index) that this
// triple exists in the store. It always decrements triplesCount.
//
// A pair's two Vectors share the Terminal object by pointer, so whichever
// of the pair is processed first removes leaf from it, and the second would see
// Terminal.Remove report "absent" and - under the plain "decrement iff
// present" rule - wrongly skip its own decrement, leaving that Vector's
// triplesCount cache permanently one too high. Deciding presence once, up
// front, and applying the decrement unconditionally on both sides of the
// pair keeps every one of the six indexes' counts correct regardless of
// processing order. See DESIGN.md.
func (v *Vector) removeKnownPresent(mid, leaf NodeId) {
	e, ok := v.tree.Get(vecEntry{mid: mid})
	if !ok {
		return
	}
	e.term.Remove(leaf) // idempotent: may already be gone via the pair partner
	v.triplesCount--
	v.unlinkIfEmpty(mid, e.term)
}

func (v *Vector) unlinkIfEmpty(mid NodeId, term *Terminal) {
	if term.Size() != 0 {
		return
	}
	v.tree.Delete(vecEntry{mid: mid})
	if term.Release() {
		v.metrics.TerminalReleased()
	}
	v.metrics.VectorEntryReleased()
}

// Size returns the number of distinct mid keys stored.
func (v *Vector) Size() int { return v.tree.Len() }

// TriplesCount returns the cached sum of Terminal sizes under this Vector.
func (v *Vector) TriplesCount() uint64 { return v.triplesCount }

// Iterate calls yield for every (mid, Terminal) pair in ascending mid
// order, stopping early if yield returns false.
func (v *Vector) Iterate(yield func(mid NodeId, term *Terminal) bool) {
	v.tree.Ascend(func(e vecEntry) bool {
		return yield(e.mid, e.term)
	})
}

// seekGE returns the first (mid, Terminal) with mid >= key.
func (v *Vector) seekGE(key NodeId) (mid NodeId, term *Terminal, ok bool) {
	v.tree.AscendGreaterOrEqual(vecEntry{mid: key}, func(e vecEntry) bool {
		mid, term, ok = e.mid, e.term, true
		return false
	})
	return
}

// Write serializes the Vector as
// 'V' u32 vec_size u64 triples_count (NodeId Terminal){vec_size}.
func (v *Vector) Write(w io.Writer) error {
	if err := writeByte(w, 'V'); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(v.tree.Len())); err != nil {
		return err
	}
	if err := writeUint64(w, v.triplesCount); err != nil {
		return err
	}
	var werr error
	v.tree.Ascend(func(e vecEntry) bool {
		if werr = writeUint64(w, uint64(e.mid)); werr != nil {
			return false
		}
		werr = e.term.Write(w)
		return werr == nil
	})
	return werr
}

// ReadVector deserializes a Vector written by Write. It always produces
// independent Terminal objects; the caller (readIndex) does not
// re-establish sharing between a pair.
func ReadVector(r io.Reader, metrics Metrics) (*Vector, error) {
	if err := expectByte(r, 'V'); err != nil {
		return nil, err
	}
	size, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	count, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	v := newVector(metrics)
	v.triplesCount = count
	for i := uint32(0); i < size; i++ {
		midRaw, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		term, err := ReadTerminal(r)
		if err != nil {
			return nil, err
		}
		v.tree.ReplaceOrInsert(vecEntry{mid: NodeId(midRaw), term: term})
	}
	return v, nil
}
