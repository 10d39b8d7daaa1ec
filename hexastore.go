// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package hexastore implements an in-memory, six-way-indexed RDF-shaped
// triple store (see doc.go for the full package overview).
package hexastore

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// defaultBulkThreshold is the batch size above which AddTriples fans its
// three pair-inserts out across goroutines instead of running serially.
const defaultBulkThreshold = 256

// pairs lists the three disjoint index pairs that share Terminals, in the
// (creating, paired) order insertCreating/insertAttaching expect.
var pairs = [3][2]indexKind{
	{kindSPO, kindPSO},
	{kindSOP, kindOSP},
	{kindPOS, kindOPS},
}

// Hexastore is the six materialized permutation indexes of a triple store,
// kept six-way coherent by the paired-terminal insertion protocol.
type Hexastore struct {
	indexes       [numKinds]*Index
	metrics       Metrics
	bulkThreshold int
}

// Option configures a Hexastore at construction time.
type Option func(*Hexastore)

// WithMetrics attaches an allocation/release counter sink.
func WithMetrics(m Metrics) Option {
	return func(hx *Hexastore) { hx.metrics = m }
}

// WithBulkThreshold overrides the batch size above which AddTriples
// parallelizes its three pair-inserts.
func WithBulkThreshold(n int) Option {
	return func(hx *Hexastore) { hx.bulkThreshold = n }
}

// New builds an empty Hexastore with all six indexes allocated.
func New(opts ...Option) *Hexastore {
	hx := &Hexastore{bulkThreshold: defaultBulkThreshold}
	for _, opt := range opts {
		opt(hx)
	}
	if hx.metrics == nil {
		hx.metrics = noopMetrics{}
	}
	for k := indexKind(0); k < numKinds; k++ {
		hx.indexes[k] = newIndex(k, hx.metrics)
	}
	return hx
}

// AddTriple inserts (s, p, o), running the paired creating/attaching
// protocol across all three index pairs.
func (hx *Hexastore) AddTriple(s, p, o NodeId) {
	hx.insertPairs(Triple{S: s, P: p, O: o})
}

func (hx *Hexastore) insertPairs(t Triple) {
	for _, pair := range pairs {
		creating, paired := hx.indexes[pair[0]], hx.indexes[pair[1]]
		term, res := creating.insertCreating(t)
		paired.insertAttaching(t, term, res == added)
	}
}

// AddTriples inserts a batch of triples. Up to bulkThreshold it inserts
// serially; above it, the three pair-inserts run on separate
// goroutines since each pair touches disjoint index state. Within a
// single goroutine, triples are inserted in order.
func (hx *Hexastore) AddTriples(batch TripleBatch) {
	if len(batch) <= hx.bulkThreshold {
		for _, t := range batch {
			hx.insertPairs(t)
		}
		return
	}

	var g errgroup.Group
	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			creating, paired := hx.indexes[pair[0]], hx.indexes[pair[1]]
			for _, t := range batch {
				term, res := creating.insertCreating(t)
				paired.insertAttaching(t, term, res == added)
			}
			return nil
		})
	}
	_ = g.Wait() // the three workers never return an error
}

// RemoveTriple deletes (s, p, o) from all six indexes. An absent triple is
// a no-op, not an error.
//
// Presence is checked once, via SPO, before touching any index: see
// Vector.removeKnownPresent for why applying the decrement unconditionally
// on every one of the six indexes - rather than letting each index decide
// independently whether the leaf was still there - is required to keep
// their triples_count caches coherent when two of them share a Terminal.
func (hx *Hexastore) RemoveTriple(s, p, o NodeId) {
	t := Triple{S: s, P: p, O: o}
	if !hx.indexes[kindSPO].contains(t) {
		return
	}
	for k := indexKind(0); k < numKinds; k++ {
		hx.indexes[k].removeKnownPresent(t)
	}
}

// TriplesCount returns the number of distinct stored triples, read from
// the SPO index.
func (hx *Hexastore) TriplesCount() uint64 {
	return hx.indexes[kindSPO].triplesCount()
}

// GetStatements runs the query planner over the pattern (s, p, o, at
// orderPosition) and returns a cursor over the matching triples, already
// un-permuted to (s, p, o) order and filtered for repeated-variable
// equality.
func (hx *Hexastore) GetStatements(s, p, o NodeId, orderPosition int) *StatementsCursor {
	pattern := Triple{S: s, P: p, O: o}
	kind, seek := chooseIndex(pattern, orderPosition)
	cur := NewCursor(hx.indexes[kind], seek[0], seek[1], seek[2])
	return newStatementsCursor(cur, unificationFilter(pattern))
}

// Write serializes the full Hexastore as 'X' followed by all six indexes
// in SPO, SOP, PSO, POS, OSP, OPS order.
func (hx *Hexastore) Write(w io.Writer) error {
	if err := writeByte(w, 'X'); err != nil {
		return err
	}
	for k := indexKind(0); k < numKinds; k++ {
		if err := hx.indexes[k].Write(w); err != nil {
			return err
		}
	}
	return nil
}

// Read deserializes a Hexastore written by Write. It validates every index
// independently and aborts on the first failure, releasing nothing partial
// back to the caller. See DESIGN.md for why this checks all six rather
// than inferring the other five from one.
func Read(r io.Reader, opts ...Option) (*Hexastore, error) {
	hx := &Hexastore{bulkThreshold: defaultBulkThreshold}
	for _, opt := range opts {
		opt(hx)
	}
	if hx.metrics == nil {
		hx.metrics = noopMetrics{}
	}
	if err := expectByte(r, 'X'); err != nil {
		return nil, err
	}
	for k := indexKind(0); k < numKinds; k++ {
		idx, err := readIndex(r, k, hx.metrics)
		if err != nil {
			return nil, err
		}
		hx.indexes[k] = idx
	}
	return hx, nil
}

// ApproxMemoryBytes returns a best-effort estimate of the store's live
// heap footprint; it is not a contract, just a diagnostic. Head/Vector
// entry overhead is counted once per index since those levels are never
// shared; Terminal payload is counted only through each pair's creating
// index, since the paired index points at the same object.
func (hx *Hexastore) ApproxMemoryBytes() int64 {
	const (
		headEntryBytes        = 40
		vecEntryBytes         = 40
		terminalOverheadBytes = 32
		leafBytes             = 8
	)

	var total int64
	for k := indexKind(0); k < numKinds; k++ {
		hx.indexes[k].head.Iterate(func(_ NodeId, vec *Vector) bool {
			total += headEntryBytes
			vec.Iterate(func(_ NodeId, _ *Terminal) bool {
				total += vecEntryBytes
				return true
			})
			return true
		})
	}
	for _, pair := range pairs {
		hx.indexes[pair[0]].head.Iterate(func(_ NodeId, vec *Vector) bool {
			vec.Iterate(func(_ NodeId, term *Terminal) bool {
				total += terminalOverheadBytes + int64(term.Size())*leafBytes
				return true
			})
			return true
		})
	}
	return total
}
