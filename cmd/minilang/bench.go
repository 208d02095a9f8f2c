package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"minilang/arena"
	"minilang/ast"
	"minilang/eval"
	"minilang/lexer"
	"minilang/parser"
)

// benchCmd re-runs a fixed battery of scripts many times each, reporting
// wall-clock time and operations/sec. Grounded on
// original_source/benchmark.c's run_performance_tests: same four
// scripts, same iteration counts, one reset-tokenize-parse-evaluate
// cycle per iteration.
type benchCmd struct{}

func (*benchCmd) Name() string     { return "bench" }
func (*benchCmd) Synopsis() string { return "run the built-in performance battery" }
func (*benchCmd) Usage() string {
	return `bench:
  Run a fixed battery of scripts and report timing.
`
}
func (*benchCmd) SetFlags(*flag.FlagSet) {}

type benchCase struct {
	label      string
	source     string
	iterations int
}

var benchCases = []benchCase{
	{"Simple arithmetic", "var x = 10; var y = 20; var z = x + y * 2;", 10000},
	{"Function calls", "function add(a, b) { return a + b; } var result = add(5, 10);", 5000},
	{"Loops and conditionals", "var sum = 0; var i = 0; while (i < 10) { if (i % 2 == 0) { sum = sum + i; } i = i + 1; }", 1000},
	{"Recursive function", "function factorial(n) { if (n <= 1) return 1; return n * factorial(n - 1); } var result = factorial(10);", 1000},
}

func (*benchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("minilang Performance Benchmarks")
	fmt.Println("===============================")

	var totalSeconds float64
	var totalIterations int

	for _, c := range benchCases {
		elapsed := benchmarkExecution(c.source, c.iterations)
		opsPerSec := float64(c.iterations) / elapsed

		fmt.Printf("\n%s\n", c.label)
		fmt.Printf("Code: %s\n", c.source)
		fmt.Printf("%d iterations: %.6f seconds (%.2f ops/sec)\n", c.iterations, elapsed, opsPerSec)

		totalSeconds += elapsed
		totalIterations += c.iterations
	}

	fmt.Println("\nPerformance Summary")
	fmt.Println("-------------------")
	fmt.Printf("Total benchmark time: %.6f seconds\n", totalSeconds)
	fmt.Printf("Average operations per second: %.2f\n", float64(totalIterations)/totalSeconds)

	return subcommands.ExitSuccess
}

// benchmarkExecution runs source through a full arena-reset-to-evaluate
// cycle `iterations` times, discarding output, and returns total elapsed
// seconds.
func benchmarkExecution(source string, iterations int) float64 {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err == nil {
		defer devNull.Close()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		a := arena.New(arena.DefaultSize)
		tokens, _ := lexer.New(source).Scan()
		root, tree, _ := parser.New(tokens, ast.DefaultLimits).Parse()

		interpreter := eval.New(tree, a)
		if devNull != nil {
			interpreter.Stdout = devNull
		}
		_, _ = interpreter.Run(root, eval.DefaultLimits)
	}
	return time.Since(start).Seconds()
}
