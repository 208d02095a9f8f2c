package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"minilang/arena"
	"minilang/ast"
	"minilang/eval"
	"minilang/lexer"
	"minilang/parser"
)

// runCmd executes a source file in one shot: reset arena, tokenize,
// parse, create a fresh context, evaluate, discard context (spec.md §6's
// external-interface lifecycle).
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute a script from a source file.
`
}
func (*runCmd) SetFlags(*flag.FlagSet) {}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if status := execute(string(data)); status != subcommands.ExitSuccess {
		return status
	}
	return subcommands.ExitSuccess
}

// execute runs one source buffer through the full pipeline, printing
// every scan/parse diagnostic before evaluating, matching spec.md §7's
// permissive model: scan and parse diagnostics (including a parse-time
// block/argument/parameter capacity error) are informational, not fatal;
// only a runtime error (arena or variable/function table exhaustion)
// ends the run with a failure status.
func execute(source string) subcommands.ExitStatus {
	a := arena.New(arena.DefaultSize)

	tokens, scanErrs := lexer.New(source).Scan()
	for _, e := range scanErrs {
		fmt.Fprintln(os.Stderr, e)
	}

	root, tree, parseErrs := parser.New(tokens, ast.DefaultLimits).Parse()
	for _, e := range parseErrs {
		fmt.Fprintln(os.Stderr, e)
	}

	interpreter := eval.New(tree, a)
	if _, err := interpreter.Run(root, eval.DefaultLimits); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
