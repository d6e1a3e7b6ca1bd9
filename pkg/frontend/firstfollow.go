package frontend

// firstFollowIterationCap bounds the fixed-point loop defensively; the
// grammar's non-terminal count means it converges in a handful of passes,
// but a cap keeps a future grammar edit from spinning forever instead of
// surfacing a bug.
const firstFollowIterationCap = 50

// FirstFollow holds the FIRST and FOLLOW sets computed for every
// non-terminal in a Grammar, plus which non-terminals are nullable.
type FirstFollow struct {
	first    [numNonTerminals]map[Kind]bool
	follow   [numNonTerminals]map[Kind]bool
	nullable [numNonTerminals]bool
}

// First returns the FIRST set of a non-terminal.
func (ff *FirstFollow) First(nt NonTerminal) map[Kind]bool {
	return ff.first[nt]
}

// Follow returns the FOLLOW set of a non-terminal.
func (ff *FirstFollow) Follow(nt NonTerminal) map[Kind]bool {
	return ff.follow[nt]
}

// Nullable reports whether nt can derive the empty string.
func (ff *FirstFollow) Nullable(nt NonTerminal) bool {
	return ff.nullable[nt]
}

// firstOfSequence computes FIRST of a right-hand side: accumulate FIRST of
// each symbol in order, continuing past a symbol only while everything
// seen so far is nullable. The sequence itself is nullable only if every
// symbol in it is.
func (ff *FirstFollow) firstOfSequence(rhs []Symbol) (map[Kind]bool, bool) {
	result := make(map[Kind]bool)
	if IsEpsilon(rhs) {
		return result, true
	}

	nullable := true
	for _, sym := range rhs {
		var symFirst map[Kind]bool
		var symNullable bool
		if sym.Terminal {
			symFirst = map[Kind]bool{sym.Kind: true}
			symNullable = false
		} else {
			symFirst = ff.first[sym.NonTerminal]
			symNullable = ff.nullable[sym.NonTerminal]
		}
		for k := range symFirst {
			result[k] = true
		}
		if !symNullable {
			nullable = false
			break
		}
	}
	return result, nullable
}

// ComputeFirstFollow computes FIRST and FOLLOW sets for every non-terminal
// in g by fixed-point iteration. It does not build the parse table;
// BuildTable does that from the result. eof marks the token that follows a
// complete program, seeded into FOLLOW(start).
func ComputeFirstFollow(g *Grammar, eof Kind) *FirstFollow {
	ff := &FirstFollow{}
	for i := range ff.first {
		ff.first[i] = make(map[Kind]bool)
		ff.follow[i] = make(map[Kind]bool)
	}
	ff.follow[g.Start][eof] = true

	for iter := 0; iter < firstFollowIterationCap; iter++ {
		changed := false

		for _, p := range g.Productions {
			before := len(ff.first[p.LHS])
			beforeNullable := ff.nullable[p.LHS]

			seqFirst, seqNullable := ff.firstOfSequence(p.RHS)
			for k := range seqFirst {
				ff.first[p.LHS][k] = true
			}
			if seqNullable {
				ff.nullable[p.LHS] = true
			}

			if len(ff.first[p.LHS]) != before || ff.nullable[p.LHS] != beforeNullable {
				changed = true
			}
		}

		for _, p := range g.Productions {
			changed = ff.propagateFollow(p) || changed
		}

		if !changed {
			break
		}
	}

	return ff
}

// propagateFollow applies the FOLLOW propagation rule to a single
// production A -> X1 X2 ... Xn: for every non-terminal Xi, FOLLOW(Xi)
// gains FIRST(Xi+1...Xn) minus epsilon, and if that tail is nullable (or
// Xi is the last symbol), FOLLOW(Xi) also gains FOLLOW(A).
func (ff *FirstFollow) propagateFollow(p Production) bool {
	changed := false
	for i, sym := range p.RHS {
		if sym.Terminal {
			continue
		}
		tailFirst, tailNullable := ff.firstOfSequence(p.RHS[i+1:])
		before := len(ff.follow[sym.NonTerminal])

		for k := range tailFirst {
			ff.follow[sym.NonTerminal][k] = true
		}
		if tailNullable {
			for k := range ff.follow[p.LHS] {
				ff.follow[sym.NonTerminal][k] = true
			}
		}

		if len(ff.follow[sym.NonTerminal]) != before {
			changed = true
		}
	}
	return changed
}
