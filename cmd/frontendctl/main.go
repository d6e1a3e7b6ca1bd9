// Command frontendctl scans and parses a single source file, writing its
// parse tree to an output file. With --menu it instead drives the
// interactive menu described by the external interface.
package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt"

	"github.com/ShubhamX90/compiler-design/pkg/frontend"
)

func main() {
	menu := false
	errCap := 10000

	getopt.BoolVarLong(&menu, "menu", 0, "drive the interactive menu instead of parsing once")
	getopt.IntVarLong(&errCap, "err-cap", 0, "stop collecting diagnostics after this many (0 = unbounded)")
	getopt.SetParameters("<source-file> <parse-tree-output-file>")
	getopt.Parse()

	args := getopt.Args()
	if len(args) != 2 {
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	source, treeOutput := args[0], args[1]

	pipeline, err := frontend.NewPipeline()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	if menu {
		m := frontend.NewMenu(pipeline, source, treeOutput)
		if err := m.Run(); err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		return
	}

	res, err := pipeline.ParseFile(source, errCap)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	f, err := os.Create(treeOutput)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	if _, err := f.WriteString(res.Tree.Print()); err != nil {
		f.Close()
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	f.Close()

	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
}
