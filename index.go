// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

import "io"

// Index is a Head plus a fixed permutation naming which source-triple
// position is top/mid/leaf.
type Index struct {
	kind indexKind
	perm permutation
	head *Head
}

func newIndex(kind indexKind, metrics Metrics) *Index {
	return &Index{kind: kind, perm: permutations[kind], head: newHead(metrics)}
}

// insertCreating is the "creating" half of the paired-insertion protocol:
// look up or insert the Vector at top, look up or create the Terminal at
// mid, add leaf to it. Returns the Terminal so the paired Index can attach
// to it, and whether leaf was newly added.
func (idx *Index) insertCreating(t Triple) (*Terminal, addResult) {
	top, mid, leaf := idx.perm.apply(t)
	vec := idx.head.GetOrCreate(top)
	term, res := vec.AddCreating(mid, leaf)
	if res == added {
		idx.head.IncrTriplesCount()
	}
	return term, res
}

// insertAttaching is the "attaching" half of the paired-insertion protocol:
// look up or insert the Vector at top, then attach the given (already
// created) Terminal under mid by reference, bumping the count iff
// wasAdded.
func (idx *Index) insertAttaching(t Triple, term *Terminal, wasAdded bool) {
	top, mid, _ := idx.perm.apply(t)
	vec := idx.head.GetOrCreate(top)
	vec.AddAttaching(mid, term, wasAdded)
	if wasAdded {
		idx.head.IncrTriplesCount()
	}
}

// contains reports whether t is present in this Index.
func (idx *Index) contains(t Triple) bool {
	top, mid, leaf := idx.perm.apply(t)
	vec, ok := idx.head.Get(top)
	if !ok {
		return false
	}
	term, ok := vec.Get(mid)
	if !ok {
		return false
	}
	return term.Contains(leaf)
}

// remove deletes t from this Index in isolation, decrementing the cached
// count iff t was actually present. Exercised directly in tests; six-way
// Hexastore removal instead calls removeKnownPresent, see DESIGN.md.
func (idx *Index) remove(t Triple) bool {
	top, mid, leaf := idx.perm.apply(t)
	vec, ok := idx.head.Get(top)
	if !ok {
		return false
	}
	if !vec.Remove(mid, leaf) {
		return false
	}
	idx.head.DecrTriplesCount()
	if vec.Size() == 0 {
		idx.head.Remove(top)
	}
	return true
}

// removeKnownPresent deletes t from this Index, assuming the caller has
// already confirmed (once, via one authoritative index) that t exists in
// the store. See Vector.removeKnownPresent and DESIGN.md for why this is
// needed instead of remove() when removing across all six paired indexes.
func (idx *Index) removeKnownPresent(t Triple) {
	top, mid, leaf := idx.perm.apply(t)
	vec, ok := idx.head.Get(top)
	if !ok {
		return
	}
	vec.removeKnownPresent(mid, leaf)
	idx.head.DecrTriplesCount()
	if vec.Size() == 0 {
		idx.head.Remove(top)
	}
}

// triplesCount returns the number of triples stored under this Index.
func (idx *Index) triplesCount() uint64 { return idx.head.TriplesCount() }

// Write serializes the Index as 'I' u32 kind u8 permutation[3] Head: the
// three permutation entries are written as one byte each, not as u32s.
// The u32 kind tag is redundant with the permutation bytes that follow; it
// lets Read detect a reordered or truncated index stream early.
func (idx *Index) Write(w io.Writer) error {
	if err := writeByte(w, 'I'); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(idx.kind)); err != nil {
		return err
	}
	for _, p := range idx.perm {
		if err := writeByte(w, byte(p)); err != nil {
			return err
		}
	}
	return idx.head.Write(w)
}

// readIndex deserializes an Index written by Write, verifying it is the
// expected kind.
func readIndex(r io.Reader, expected indexKind, metrics Metrics) (*Index, error) {
	if err := expectByte(r, 'I'); err != nil {
		return nil, err
	}
	kindRaw, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if indexKind(kindRaw) != expected {
		return nil, ErrBadMagic
	}
	var perm permutation
	for i := range perm {
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrShortRead
			}
			return nil, err
		}
		perm[i] = int(buf[0])
	}
	if perm != permutations[expected] {
		return nil, ErrBadMagic
	}
	head, err := ReadHead(r, metrics)
	if err != nil {
		return nil, err
	}
	return &Index{kind: expected, perm: perm, head: head}, nil
}
