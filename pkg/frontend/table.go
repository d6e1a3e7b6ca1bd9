package frontend

import (
	"fmt"
	"sort"
	"strings"
)

// Table is the predictive parse table M[NonTerminal, Terminal] ->
// Production.
type Table struct {
	cells map[tableKey]Production
}

type tableKey struct {
	nt   NonTerminal
	term Kind
}

// Lookup returns the production to apply for (nt, lookahead), and whether
// one exists.
func (t *Table) Lookup(nt NonTerminal, lookahead Kind) (Production, bool) {
	p, ok := t.cells[tableKey{nt, lookahead}]
	return p, ok
}

// Conflict records that two different productions both claim the same
// table cell.
type Conflict struct {
	NonTerminal NonTerminal
	Lookahead   Kind
	Productions []Production
}

func (c Conflict) String() string {
	var nums []string
	for _, p := range c.Productions {
		nums = append(nums, fmt.Sprintf("rule %d", p.Number))
	}
	return fmt.Sprintf("[%s, %s]: %s", c.NonTerminal, c.Lookahead, strings.Join(nums, " vs "))
}

// NotLL1Error reports that BuildTable found one or more conflicting cells.
// A conflict is surfaced rather than silently resolved by keeping
// whichever production was assigned first.
type NotLL1Error struct {
	Conflicts []Conflict
}

func (e *NotLL1Error) Error() string {
	lines := make([]string, 0, len(e.Conflicts)+1)
	lines = append(lines, fmt.Sprintf("grammar is not LL(1): %d conflicting cell(s)", len(e.Conflicts)))
	for _, c := range e.Conflicts {
		lines = append(lines, "  "+c.String())
	}
	return strings.Join(lines, "\n")
}

// BuildTable constructs the predictive parse table for g from its
// precomputed FIRST/FOLLOW sets. The first production to claim a cell
// wins it; every subsequent claim on an already-occupied cell is recorded
// as a Conflict rather than silently overwriting the earlier entry.
func BuildTable(g *Grammar, ff *FirstFollow) (*Table, error) {
	t := &Table{cells: make(map[tableKey]Production)}
	var conflicts []Conflict

	for _, p := range g.Productions {
		seqFirst, seqNullable := ff.firstOfSequence(p.RHS)

		terms := make([]Kind, 0, len(seqFirst))
		for k := range seqFirst {
			if k == KindEpsilon {
				continue
			}
			terms = append(terms, k)
		}
		if seqNullable {
			for k := range ff.follow[p.LHS] {
				terms = append(terms, k)
			}
		}

		for _, term := range terms {
			key := tableKey{p.LHS, term}
			if existing, ok := t.cells[key]; ok {
				if existing.Number != p.Number {
					conflicts = append(conflicts, Conflict{
						NonTerminal: p.LHS,
						Lookahead:   term,
						Productions: []Production{existing, p},
					})
				}
				continue
			}
			t.cells[key] = p
		}
	}

	if len(conflicts) > 0 {
		return nil, &NotLL1Error{Conflicts: sortConflicts(conflicts)}
	}
	return t, nil
}

func sortConflicts(cs []Conflict) []Conflict {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].NonTerminal != cs[j].NonTerminal {
			return cs[i].NonTerminal < cs[j].NonTerminal
		}
		return cs[i].Lookahead < cs[j].Lookahead
	})
	return cs
}

// Dump renders every occupied cell, sorted for stable output — a
// build-time diagnostic view, never consulted by the parser itself.
func (t *Table) Dump() string {
	keys := make([]tableKey, 0, len(t.cells))
	for k := range t.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].nt != keys[j].nt {
			return keys[i].nt < keys[j].nt
		}
		return keys[i].term < keys[j].term
	})

	var b strings.Builder
	for _, k := range keys {
		p := t.cells[k]
		fmt.Fprintf(&b, "M[%s, %s] = rule %d\n", k.nt, k.term, p.Number)
	}
	return b.String()
}

// Dump renders FIRST and FOLLOW for every non-terminal, sorted for stable
// output.
func (ff *FirstFollow) Dump() string {
	var b strings.Builder
	for nt := NonTerminal(0); nt < numNonTerminals; nt++ {
		fmt.Fprintf(&b, "FIRST(%s) = %s\n", nt, dumpKindSet(ff.first[nt], ff.nullable[nt]))
		fmt.Fprintf(&b, "FOLLOW(%s) = %s\n", nt, dumpKindSet(ff.follow[nt], false))
	}
	return b.String()
}

func dumpKindSet(set map[Kind]bool, nullable bool) string {
	names := make([]string, 0, len(set)+1)
	for k := range set {
		names = append(names, k.String())
	}
	sort.Strings(names)
	if nullable {
		names = append(names, "epsilon")
	}
	return "{" + strings.Join(names, ", ") + "}"
}
