package frontend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Menu drives the interactive menu CLI over a single source/output file
// pair: strip comments, list tokens, parse to a tree file, or run the
// full pipeline once while reporting wall-clock timing.
type Menu struct {
	Pipeline   *Pipeline
	Source     string
	TreeOutput string
	In         io.Reader
	Out        io.Writer
}

// NewMenu builds a Menu over the given source and parse-tree output
// paths, reading commands from stdin and writing to stdout.
func NewMenu(p *Pipeline, source, treeOutput string) *Menu {
	return &Menu{Pipeline: p, Source: source, TreeOutput: treeOutput, In: os.Stdin, Out: os.Stdout}
}

// Run loops printing the menu and dispatching choices until the user
// picks 0 to exit or the input stream is exhausted.
func (m *Menu) Run() error {
	scanner := bufio.NewScanner(m.In)
	for {
		fmt.Fprint(m.Out, "\n0. Exit\n1. Remove comments\n2. List tokens\n3. Parse\n4. Run all\n> ")
		if !scanner.Scan() {
			return nil
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "0":
			return nil
		case "1":
			if err := m.stripComments(); err != nil {
				fmt.Fprintln(m.Out, "Error:", err)
			}
		case "2":
			if err := m.listTokens(); err != nil {
				fmt.Fprintln(m.Out, "Error:", err)
			}
		case "3":
			if err := m.parse(); err != nil {
				fmt.Fprintln(m.Out, "Error:", err)
			}
		case "4":
			if err := m.runAll(); err != nil {
				fmt.Fprintln(m.Out, "Error:", err)
			}
		default:
			fmt.Fprintln(m.Out, "Unrecognised option")
		}
	}
}

func (m *Menu) stripComments() error {
	src, err := os.Open(m.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create("clean_code.txt")
	if err != nil {
		return err
	}
	defer dst.Close()

	// The cleaned source goes to the fixed output path and is echoed to
	// the menu's output in the same pass.
	return StripComments(src, io.MultiWriter(dst, m.Out))
}

func (m *Menu) listTokens() error {
	toks, err := m.Pipeline.ListTokens(m.Source)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.Out, "\n%-10s  %-30s  %-22s  %-8s  %-15s\n", "Line No.", "Lexeme", "Token", "HasVal", "Value")
	errCount := 0
	for _, t := range toks {
		if t.Kind == KindEOF {
			continue
		}
		if t.Kind == KindError {
			fmt.Fprintln(os.Stderr, Diagnostic{Line: t.Line, Msg: t.ErrMsg})
			errCount++
		}
		fmt.Fprintln(m.Out, t.ListingRow())
	}
	fmt.Fprintf(m.Out, "Total tokens listed: %d\n", len(toks)-1)
	if errCount > 0 {
		fmt.Fprintf(m.Out, "Total lexical errors: %d (details on stderr)\n", errCount)
	}
	return nil
}

func (m *Menu) parse() error {
	res, err := m.Pipeline.ParseFile(m.Source, 0)
	if err != nil {
		return err
	}
	if err := writeTreeFile(m.TreeOutput, res.Tree); err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
	return nil
}

func (m *Menu) runAll() error {
	start := time.Now()

	res, err := m.Pipeline.ParseFile(m.Source, 0)
	if err != nil {
		return err
	}
	if err := writeTreeFile(m.TreeOutput, res.Tree); err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(m.Out, "%d ticks, %f seconds\n", elapsed.Nanoseconds(), elapsed.Seconds())
	return nil
}

func writeTreeFile(path string, tree *Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.WriteString(f, tree.Print())
	return err
}

// BatchParse parses every file in paths concurrently, each on its own
// Buffer/Scanner/Parser/Tree sharing only p's immutable grammar and
// table, returning one ParseResult per input in input order. A file-open
// failure does not cancel the other parses: once all have finished, the
// first such failure is returned as err with no results. Per-file
// lexical/syntax diagnostics never produce an err.
func (p *Pipeline) BatchParse(paths []string, errCap int) ([]*ParseResult, error) {
	results := make([]*ParseResult, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := p.ParseFile(path, errCap)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
