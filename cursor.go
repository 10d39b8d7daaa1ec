// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

// minNodeId is the smallest value a stored coordinate can ever take: every
// stored triple holds three positive NodeIds, so 1 is a safe "start of
// range" sentinel for unbound levels.
const minNodeId NodeId = 1

// Cursor is a stateful iterator over one Index, optionally restricted to a
// bound prefix at any of its three levels. Bound values here are already
// expressed in the Index's own (top, mid, leaf) order - the
// query planner is responsible for reordering a source (s,p,o) pattern
// into that order before constructing a Cursor. A bound of 0 means
// "iterate all" at that level.
//
// Current always un-permutes back to (s, p, o) order, so a caller never
// needs to know which of the six permutations is backing the cursor.
type Cursor struct {
	idx   *Index
	bound [3]NodeId

	topKey  NodeId
	vec     *Vector
	midKey  NodeId
	term    *Terminal
	leafIdx int
	done    bool
}

// NewCursor seeks to the first triple matching the bound prefix (b0, b1,
// b2), already expressed in idx's own permutation order. An absent bound
// value leaves the cursor immediately exhausted.
func NewCursor(idx *Index, b0, b1, b2 NodeId) *Cursor {
	c := &Cursor{idx: idx, bound: [3]NodeId{b0, b1, b2}}
	c.seekFromTop(minNodeId)
	return c
}

// Finished reports whether the cursor has run out of matching triples.
func (c *Cursor) Finished() bool { return c.done }

// Current returns the triple at the cursor's current position, in source
// (s, p, o) order, and whether the cursor is positioned on a valid triple.
func (c *Cursor) Current() (Triple, bool) {
	if c.done {
		return Triple{}, false
	}
	leaf := c.term.At(c.leafIdx)
	return c.idx.perm.unapply(c.topKey, c.midKey, leaf), true
}

// Advance moves to the next matching triple in the index's iteration
// order: increment leaf; on overflow, advance mid; on overflow, advance
// top. Moving off a bound at any level above the deepest one in use
// exhausts the cursor.
func (c *Cursor) Advance() {
	if c.done {
		return
	}
	if bound(c.bound[2]) {
		// leaf is pinned to a single value; any further movement overflows.
		c.advanceMid()
		return
	}
	next := c.term.At(c.leafIdx) + 1
	if idx := c.term.SeekIndex(next); idx < c.term.Size() {
		c.leafIdx = idx
		return
	}
	c.advanceMid()
}

// Seek repositions the cursor at-or-past key at its current (innermost,
// leaf) depth, for merge-join style consumers. If the leaf level is
// pinned by a bound value, Seek only ever exhausts the cursor (there is
// nothing to move to within a single fixed value) or leaves it untouched.
func (c *Cursor) Seek(key NodeId) {
	if c.done {
		return
	}
	if bound(c.bound[2]) {
		if key > c.bound[2] {
			c.done = true
		}
		return
	}
	if idx := c.term.SeekIndex(key); idx < c.term.Size() {
		c.leafIdx = idx
		return
	}
	c.advanceMid()
}

// Release drops the cursor's references, allowing the garbage collector
// to reclaim sooner, even though Go has no manual free.
func (c *Cursor) Release() {
	c.idx, c.vec, c.term = nil, nil, nil
	c.done = true
}

// seekFromTop positions the cursor at the first valid triple with top key
// >= startTop (or exactly bound[0], if set), trying successive top keys
// until one yields a valid mid/leaf position or the index is exhausted.
func (c *Cursor) seekFromTop(startTop NodeId) {
	for {
		var (
			top NodeId
			vec *Vector
			ok  bool
		)
		if bound(c.bound[0]) {
			if startTop > c.bound[0] {
				c.done = true
				return
			}
			vec, ok = c.idx.head.Get(c.bound[0])
			top = c.bound[0]
		} else {
			top, vec, ok = c.idx.head.seekGE(startTop)
		}
		if !ok {
			c.done = true
			return
		}
		c.topKey, c.vec = top, vec
		if c.seekFromMid(minNodeId) {
			c.done = false
			return
		}
		if bound(c.bound[0]) {
			c.done = true
			return
		}
		startTop = top + 1
	}
}

// seekFromMid positions the cursor at the first valid (mid, leaf) under
// the current top with mid key >= startMid (or exactly bound[1]), trying
// successive mid keys until one has a matching leaf or the vector is
// exhausted.
func (c *Cursor) seekFromMid(startMid NodeId) bool {
	for {
		var (
			mid  NodeId
			term *Terminal
			ok   bool
		)
		if bound(c.bound[1]) {
			if startMid > c.bound[1] {
				return false
			}
			term, ok = c.vec.Get(c.bound[1])
			mid = c.bound[1]
		} else {
			mid, term, ok = c.vec.seekGE(startMid)
		}
		if !ok {
			return false
		}
		c.midKey, c.term = mid, term
		if c.seekFromLeaf(minNodeId) {
			return true
		}
		if bound(c.bound[1]) {
			return false
		}
		startMid = mid + 1
	}
}

// seekFromLeaf positions the cursor at the first leaf >= startLeaf (or
// exactly bound[2]) within the current terminal.
func (c *Cursor) seekFromLeaf(startLeaf NodeId) bool {
	if bound(c.bound[2]) {
		if startLeaf > c.bound[2] {
			return false
		}
		idx := c.term.SeekIndex(c.bound[2])
		if idx >= c.term.Size() || c.term.At(idx) != c.bound[2] {
			return false
		}
		c.leafIdx = idx
		return true
	}
	idx := c.term.SeekIndex(startLeaf)
	if idx >= c.term.Size() {
		return false
	}
	c.leafIdx = idx
	return true
}

func (c *Cursor) advanceMid() {
	if bound(c.bound[1]) {
		c.advanceTop()
		return
	}
	if c.seekFromMid(c.midKey + 1) {
		c.done = false
		return
	}
	c.advanceTop()
}

func (c *Cursor) advanceTop() {
	if bound(c.bound[0]) {
		c.done = true
		return
	}
	c.seekFromTop(c.topKey + 1)
}
