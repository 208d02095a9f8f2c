// Command minilang is the CLI shell around the core pipeline: run a
// script file, drop into an interactive REPL, or dump a parsed
// program's AST as JSON. None of this is part of the interpreter core
// itself (spec.md §1 calls the CLI entry point, the AST pretty-printer,
// and the benchmark harness external collaborators) — it is a thin
// shell wiring subcommands to lexer/parser/eval.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&astCmd{}, "")
	subcommands.Register(&benchCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
