// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package hexastore implements an in-memory triple store for RDF-shaped
// data: ordered triples of integer node identifiers (s, p, o).
//
// The store materializes all six permutations of the triple
// (SPO, SOP, PSO, POS, OSP, OPS) as parallel three-level indexes
// (Head -> Vector -> Terminal) and shares the innermost Terminal between
// the two indexes of a pair whose orderings agree on the leaf dimension.
// This lets any access pattern - an arbitrary subset of the three positions
// bound to concrete values, in an arbitrary requested ordering - be answered
// in time proportional to the size of the matching region rather than the
// size of the whole store.
//
// A node-string dictionary, an RDF parser, CLI tooling, and logging are
// explicitly out of scope: callers pass already-resolved, signed 64-bit
// node identifiers, where the sign carries query semantics only
// (positive: bound, negative: a named variable, zero: don't care) and is
// never written to storage.
//
// The store is not safe for concurrent writers, nor for a writer
// concurrent with a reader; callers serialize access externally. The one
// exception is AddTriples, which may fan the batch out across three
// goroutines internally (one per index pair) because the pairs touch
// disjoint state.
package hexastore
