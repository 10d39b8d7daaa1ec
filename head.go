// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

import (
	"io"

	"github.com/google/btree"
)

// headEntry is one (top -> Vector) mapping stored in a Head's btree.
type headEntry struct {
	top NodeId
	vec *Vector
}

func headEntryLess(a, b headEntry) bool { return a.top < b.top }

// Head is an ordered mapping from a top-coordinate NodeId to a Vector,
// with a cached sum of Vector triples-counts. Like Vector, it is backed by
// a github.com/google/btree BTreeG for O(log n) lookup and in-order,
// at-or-past-seekable iteration.
type Head struct {
	tree         *btree.BTreeG[headEntry]
	triplesCount uint64
	metrics      Metrics
}

func newHead(metrics Metrics) *Head {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Head{tree: btree.NewG(btreeDegree, headEntryLess), metrics: metrics}
}

// GetOrCreate returns the Vector at top, creating one if absent.
func (h *Head) GetOrCreate(top NodeId) *Vector {
	if e, ok := h.tree.Get(headEntry{top: top}); ok {
		return e.vec
	}
	vec := newVector(h.metrics)
	h.tree.ReplaceOrInsert(headEntry{top: top, vec: vec})
	h.metrics.VectorEntryAllocated()
	return vec
}

// Get returns the Vector at top, if any.
func (h *Head) Get(top NodeId) (*Vector, bool) {
	e, ok := h.tree.Get(headEntry{top: top})
	if !ok {
		return nil, false
	}
	return e.vec, true
}

// Remove unlinks the Vector at top, if any. Callers only ever remove a top
// key once its Vector has emptied out, so every call here corresponds to a
// real release.
func (h *Head) Remove(top NodeId) {
	h.tree.Delete(headEntry{top: top})
	h.metrics.VectorEntryReleased()
}

// IncrTriplesCount bumps the cached triple count by one, called by Index
// whenever an insert actually adds a new triple under this Head.
func (h *Head) IncrTriplesCount() { h.triplesCount++ }

// DecrTriplesCount lowers the cached triple count by one, called by Index
// whenever a removal actually takes a triple out from under this Head.
func (h *Head) DecrTriplesCount() { h.triplesCount-- }

// Size returns the number of distinct top keys stored.
func (h *Head) Size() int { return h.tree.Len() }

// TriplesCount returns the cached sum of Vector triples-counts.
func (h *Head) TriplesCount() uint64 { return h.triplesCount }

// Iterate calls yield for every (top, Vector) pair in ascending top order,
// stopping early if yield returns false.
func (h *Head) Iterate(yield func(top NodeId, vec *Vector) bool) {
	h.tree.Ascend(func(e headEntry) bool {
		return yield(e.top, e.vec)
	})
}

// seekGE returns the first (top, Vector) with top >= key.
func (h *Head) seekGE(key NodeId) (top NodeId, vec *Vector, ok bool) {
	h.tree.AscendGreaterOrEqual(headEntry{top: key}, func(e headEntry) bool {
		top, vec, ok = e.top, e.vec, true
		return false
	})
	return
}

// Write serializes the Head as
// 'H' u32 head_size u64 triples_count (NodeId Vector){head_size}.
func (h *Head) Write(w io.Writer) error {
	if err := writeByte(w, 'H'); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(h.tree.Len())); err != nil {
		return err
	}
	if err := writeUint64(w, h.triplesCount); err != nil {
		return err
	}
	var werr error
	h.tree.Ascend(func(e headEntry) bool {
		if werr = writeUint64(w, uint64(e.top)); werr != nil {
			return false
		}
		werr = e.vec.Write(w)
		return werr == nil
	})
	return werr
}

// ReadHead deserializes a Head written by Write.
func ReadHead(r io.Reader, metrics Metrics) (*Head, error) {
	if err := expectByte(r, 'H'); err != nil {
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
	h := newHead(metrics)
	h.triplesCount = count
	for i := uint32(0); i < size; i++ {
		topRaw, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		vec, err := ReadVector(r, metrics)
		if err != nil {
			return nil, err
		}
		h.tree.ReplaceOrInsert(headEntry{top: NodeId(topRaw), vec: vec})
	}
	return h, nil
}
