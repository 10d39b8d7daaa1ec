// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

// NodeId is an opaque node identifier. Sign carries meaning only in query
// APIs (Hexastore.GetStatements, the planner), never in storage:
//
//   - > 0  a concrete, bound node.
//   - < 0  a named variable; two query positions sharing the same negative
//     value must unify to the same stored node.
//   - = 0  "don't care": matches anything, no unification.
//
// Stored triples always hold three positive NodeIds.
type NodeId int64

// Triple is an ordered (subject, predicate, object) triple of NodeIds.
type Triple struct {
	S, P, O NodeId
}

// TripleBatch is a bulk-insert input, see Hexastore.AddTriples.
type TripleBatch []Triple

// bound reports whether v is a concrete, positive node id.
func bound(v NodeId) bool { return v > 0 }

// variable reports whether v is a negative, named-variable marker.
func variable(v NodeId) bool { return v < 0 }

// isAny reports whether v is the zero, don't-care marker.
func isAny(v NodeId) bool { return v == 0 }
