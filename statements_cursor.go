// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hexastore

// StatementsCursor is the cursor type returned by Hexastore.GetStatements.
// It wraps the lower-level, single-Index Cursor with a repeated-variable
// unification filter: two pattern positions sharing the same named
// variable must carry equal values in every yielded triple, a constraint
// the Index cursor itself has no way to express since it only ever seeks
// on concrete positive keys.
type StatementsCursor struct {
	cur    *Cursor
	filter func(Triple) bool
}

func newStatementsCursor(cur *Cursor, filter func(Triple) bool) *StatementsCursor {
	sc := &StatementsCursor{cur: cur, filter: filter}
	sc.skipRejected()
	return sc
}

func (sc *StatementsCursor) skipRejected() {
	for !sc.cur.Finished() {
		t, _ := sc.cur.Current()
		if sc.filter == nil || sc.filter(t) {
			return
		}
		sc.cur.Advance()
	}
}

// Finished reports whether the cursor has been exhausted.
func (sc *StatementsCursor) Finished() bool { return sc.cur.Finished() }

// Current returns the triple at the cursor's position, in (s, p, o) order.
func (sc *StatementsCursor) Current() (Triple, bool) { return sc.cur.Current() }

// Advance moves to the next triple satisfying both the bound prefix and
// the unification filter, or exhausts the cursor.
func (sc *StatementsCursor) Advance() {
	sc.cur.Advance()
	sc.skipRejected()
}

// Seek positions at-or-past key at the cursor's current depth, then skips
// forward past any rejected (unification-violating) triples.
func (sc *StatementsCursor) Seek(key NodeId) {
	sc.cur.Seek(key)
	sc.skipRejected()
}

// Release drops the cursor's references.
func (sc *StatementsCursor) Release() { sc.cur.Release() }

// unificationFilter builds the repeated-variable equality predicate for
// pattern, or nil if pattern has no repeated variables to enforce.
func unificationFilter(pattern Triple) func(Triple) bool {
	vals := [3]NodeId{pattern.S, pattern.P, pattern.O}
	type posPair struct{ i, j int }
	var need []posPair
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if variable(vals[i]) && vals[i] == vals[j] {
				need = append(need, posPair{i, j})
			}
		}
	}
	if len(need) == 0 {
		return nil
	}
	return func(t Triple) bool {
		got := [3]NodeId{t.S, t.P, t.O}
		for _, pr := range need {
			if got[pr.i] != got[pr.j] {
				return false
			}
		}
		return true
	}
}
