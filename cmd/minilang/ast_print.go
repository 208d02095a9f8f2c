package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"minilang/ast"
	"minilang/lexer"
	"minilang/parser"
)

// astCmd dumps a source file's parsed AST as JSON, the explicitly
// out-of-scope pretty-printer from spec.md §1 — useful for debugging the
// parser but no part of the interpreter core itself.
type astCmd struct {
	out string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "print a source file's parsed AST as JSON" }
func (*astCmd) Usage() string {
	return `ast <file>:
  Parse a source file and print its AST as JSON.
`
}

func (a *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.out, "o", "", "write AST JSON to this file instead of stdout")
}

func (a *astCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 no source file provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens, scanErrs := lexer.New(string(data)).Scan()
	for _, e := range scanErrs {
		fmt.Fprintln(os.Stderr, e)
	}

	root, tree, parseErrs := parser.New(tokens, ast.DefaultLimits).Parse()
	for _, e := range parseErrs {
		fmt.Fprintln(os.Stderr, e)
	}

	if a.out != "" {
		if err := parser.WriteASTJSONToFile(root, tree, a.out); err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if _, err := parser.PrintASTJSON(root, tree); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
