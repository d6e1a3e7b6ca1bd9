package frontend

import "fmt"

// Diagnostic is a single reported problem, lexical or syntactic, tied to
// the source line it was found on.
type Diagnostic struct {
	Line int
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d\tError: %s", d.Line, d.Msg)
}

// syncSet is the fixed panic-mode recovery set: tokens that plausibly
// close off whatever construct the parser was in the middle of when it
// lost sync with the input.
var syncSet = map[Kind]bool{
	KindSemicolon:   true,
	KindEndRecord:   true,
	KindEndUnion:    true,
	KindEndIf:       true,
	KindEndWhile:    true,
	KindElse:        true,
	KindParenClose:  true,
	KindSquareClose: true,
	KindEnd:         true,
	KindEOF:         true,
	KindFunID:       true,
	KindMain:        true,
}

// stackItem is one frame of the predictive parser's stack: a grammar
// symbol paired with the tree node it will expand into (or match a token
// against). The bottom-of-stack marker has no tree node.
type stackItem struct {
	symbol   Symbol
	node     NodeID
	isBottom bool
}

// Parser drives a token stream through a Table, building a Tree and
// collecting diagnostics for every lexical and syntactic problem found
// along the way. A Parser is used once per source file; concurrent parses
// each need their own Parser (and Scanner, and Tree) but may share a
// single Grammar/Table/FirstFollow by reference.
type Parser struct {
	tokens    Tokenizer
	table     *Table
	start     NonTerminal
	errCap    int
	diags     []Diagnostic
	seenLines map[int]bool // lines already reported, to cap one error/line
}

// NewParser builds a Parser over tokens, driven by table starting at
// start. errCap bounds how many diagnostics are collected before parsing
// gives up early; zero means unbounded. tokens is a Tokenizer so tests can
// substitute a fixed-token mock in place of a real Scanner-backed
// TokenStream.
func NewParser(tokens Tokenizer, table *Table, start NonTerminal, errCap int) *Parser {
	return &Parser{tokens: tokens, table: table, start: start, errCap: errCap, seenLines: make(map[int]bool)}
}

// Parse runs the predictive parser to completion and returns the
// resulting tree along with every diagnostic collected.
func (p *Parser) Parse() (*Tree, []Diagnostic) {
	go p.tokens.Do()

	tree := NewTree(N(p.start))
	stack := []stackItem{
		{symbol: T(KindEOF), node: noParent, isBottom: true},
		{symbol: N(p.start), node: tree.Root()},
	}

	lookahead := p.next()

	for len(stack) > 0 {
		if p.errCap > 0 && len(p.diags) >= p.errCap {
			break
		}

		top := stack[len(stack)-1]

		switch {
		case top.isBottom:
			if lookahead.Kind == KindEOF {
				stack = stack[:len(stack)-1]
				continue
			}
			// Trailing input after the program's end-of-file slot: report
			// once and stop — with nothing above the bottom marker there is
			// no frame left to resynchronize against.
			p.report(lookahead.Line, fmt.Sprintf("trailing token %s %q after end of program", lookahead.Kind, lookahead.Lexeme))
			stack = stack[:len(stack)-1]

		case top.symbol.Terminal:
			if top.symbol.Kind == lookahead.Kind {
				tree.SetToken(top.node, lookahead)
				stack = stack[:len(stack)-1]
				lookahead = p.next()
				continue
			}
			p.report(lookahead.Line, fmt.Sprintf("expected %s, found %s %q", top.symbol.Kind, lookahead.Kind, lookahead.Lexeme))
			p.recover(&stack, &lookahead, tree)

		default:
			prod, ok := p.table.Lookup(top.symbol.NonTerminal, lookahead.Kind)
			if !ok {
				p.report(lookahead.Line, fmt.Sprintf("unexpected %s %q while parsing %s", lookahead.Kind, lookahead.Lexeme, top.symbol.NonTerminal))
				p.recover(&stack, &lookahead, tree)
				continue
			}
			stack = stack[:len(stack)-1]
			p.expand(&stack, tree, top.node, prod)
		}
	}

	return tree, p.diags
}

func (p *Parser) expand(stack *[]stackItem, tree *Tree, parent NodeID, prod Production) {
	if IsEpsilon(prod.RHS) {
		tree.AddChild(parent, Eps)
		return
	}
	children := make([]NodeID, len(prod.RHS))
	for i, sym := range prod.RHS {
		children[i] = tree.AddChild(parent, sym)
	}
	for i := len(children) - 1; i >= 0; i-- {
		*stack = append(*stack, stackItem{symbol: prod.RHS[i], node: children[i]})
	}
}

// recover implements panic-mode error recovery: advance the lookahead to
// the next sync-set token, then search the stack for the topmost entry
// able to consume it — a terminal frame matching its kind exactly, or a
// non-terminal frame with a table entry for it. When one exists, every
// frame above it is discarded as a placeholder and parsing resumes there;
// when none does, the lookahead steps to the next sync token and the
// search repeats. For funid, _main and end this unwinds to the nearest
// function boundary, since those are the only frames able to consume
// them. Reaching end-of-file with no consumer left unwinds everything
// above the bottom marker so the outer loop can finish. Every pass
// through the loop either returns or consumes a token, so recovery
// always terminates.
func (p *Parser) recover(stack *[]stackItem, lookahead *Token, tree *Tree) {
	for {
		for !syncSet[lookahead.Kind] {
			*lookahead = p.next()
		}

		if idx := p.consumerIndex(*stack, lookahead.Kind); idx >= 0 {
			for len(*stack)-1 > idx {
				p.discard(stack, tree)
			}
			return
		}

		if lookahead.Kind == KindEOF {
			for len(*stack) > 1 {
				p.discard(stack, tree)
			}
			return
		}
		*lookahead = p.next()
	}
}

// consumerIndex returns the index of the topmost stack entry that can
// consume a token of kind k, or -1 if nothing above the bottom marker
// can.
func (p *Parser) consumerIndex(stack []stackItem, k Kind) int {
	for i := len(stack) - 1; i >= 1; i-- {
		it := stack[i]
		if it.symbol.Terminal {
			if it.symbol.Kind == k {
				return i
			}
		} else if _, ok := p.table.Lookup(it.symbol.NonTerminal, k); ok {
			return i
		}
	}
	return -1
}

func (p *Parser) discard(stack *[]stackItem, tree *Tree) {
	top := (*stack)[len(*stack)-1]
	if !top.isBottom {
		tree.MarkRecoveryPlaceholder(top.node)
	}
	*stack = (*stack)[:len(*stack)-1]
}

// next fetches the next meaningful token from the stream, reporting
// lexical errors and skipping comments along the way.
func (p *Parser) next() Token {
	for tok := range p.tokens.Chan() {
		if tok.Kind == KindError {
			p.report(tok.Line, tok.ErrMsg)
			continue
		}
		if tok.Kind == KindComment {
			continue
		}
		return tok
	}
	return Token{Kind: KindEOF}
}

// report records a diagnostic, enforcing at most one reported error per
// source line.
func (p *Parser) report(line int, msg string) {
	if p.seenLines[line] {
		return
	}
	p.seenLines[line] = true
	p.diags = append(p.diags, Diagnostic{Line: line, Msg: msg})
}
