package frontend

// Pipeline ties a Buffer, Scanner and Parser together over one compiled
// Grammar/Table, the shared, build-once-use-many-times state every parse
// run needs but never mutates.
type Pipeline struct {
	Grammar *Grammar
	FF      *FirstFollow
	Table   *Table
}

// NewPipeline builds the grammar, computes FIRST/FOLLOW, and builds the
// parse table once. The result is safe to share by reference across
// concurrent parse runs, provided each run owns its own Buffer, Scanner,
// Parser and Tree.
func NewPipeline() (*Pipeline, error) {
	g := NewLanguageGrammar()
	ff := ComputeFirstFollow(g, KindEOF)
	table, err := BuildTable(g, ff)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Grammar: g, FF: ff, Table: table}, nil
}

// ParseResult is the outcome of parsing one source file: the tree built
// (possibly incomplete, if panic-mode recovery gave up early) and every
// diagnostic collected along the way.
type ParseResult struct {
	Filename    string
	Tree        *Tree
	Diagnostics []Diagnostic
}

// ParseFile opens path, scans and parses it against p's table, and
// returns the resulting tree and diagnostics. errCap bounds how many
// diagnostics are collected before giving up early; zero means unbounded.
func (p *Pipeline) ParseFile(path string, errCap int) (*ParseResult, error) {
	buf, err := NewBuffer(path)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	scanner := NewScanner(buf)
	stream := NewTokenStream(scanner)
	parser := NewParser(stream, p.Table, p.Grammar.Start, errCap)

	tree, diags := parser.Parse()
	return &ParseResult{Filename: path, Tree: tree, Diagnostics: diags}, nil
}

// ListTokens scans path to completion and returns every token produced,
// including comments, the shape the token-listing menu option needs.
func (p *Pipeline) ListTokens(path string) ([]Token, error) {
	buf, err := NewBuffer(path)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	scanner := NewScanner(buf)
	stream := NewTokenStream(scanner)
	return stream.Run(), nil
}
