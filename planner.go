// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

// chooseIndex is the query planner: given a pattern triple whose positions
// are bound, a named variable, or "any", plus the source position the
// caller wants the remaining iteration ordered by, it picks one of the six
// indexes and a seek triple already reordered into that index's
// (top, mid, leaf) order.
func chooseIndex(pattern Triple, orderPosition int) (indexKind, [3]NodeId) {
	vals := [3]NodeId{pattern.S, pattern.P, pattern.O}
	var cols []int
	inCols := func(pos int) bool {
		for _, c := range cols {
			if c == pos {
				return true
			}
		}
		return false
	}

	// Step 1: mandatory bound prefix, source order.
	for pos := 0; pos < 3; pos++ {
		if bound(vals[pos]) {
			cols = append(cols, pos)
		}
	}

	// Step 2: requested order position goes right after the bound prefix,
	// regardless of whether that position itself is bound, a variable, or
	// "any" - it still needs a place in the ordering the caller asked for.
	// See DESIGN.md for why this doesn't gate on the position's own value.
	if len(cols) < 3 && !inCols(orderPosition) {
		cols = append(cols, orderPosition)
	}

	// Step 3: positions that repeat a value already placed (variable
	// equality; bound positions were all placed in step 1).
	for pos := 0; pos < 3; pos++ {
		if inCols(pos) || isAny(vals[pos]) {
			continue
		}
		for _, c := range cols {
			if vals[pos] == vals[c] {
				cols = append(cols, pos)
				break
			}
		}
	}

	// Step 4: remaining positions fill the rest, orderPosition last.
	var remaining []int
	for pos := 0; pos < 3; pos++ {
		if !inCols(pos) && pos != orderPosition {
			remaining = append(remaining, pos)
		}
	}
	if !inCols(orderPosition) {
		remaining = append(remaining, orderPosition)
	}
	cols = append(cols, remaining...)
	cols = cols[:3]

	kind := kindByFirstTwo(cols[0], cols[1])
	top, mid, leaf := permutations[kind].apply(pattern)
	return kind, [3]NodeId{top, mid, leaf}
}
