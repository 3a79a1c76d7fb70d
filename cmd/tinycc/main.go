package main

import (
	"fmt"
	"os"
	"strings"

	"tinycc.dev/compiler/internal/backend"
	"tinycc.dev/compiler/internal/codegen"
	"tinycc.dev/compiler/internal/dump"
	"tinycc.dev/compiler/internal/frame"
	"tinycc.dev/compiler/internal/parser"
	"tinycc.dev/compiler/internal/regalloc"
	"tinycc.dev/compiler/internal/target"

	"github.com/teris-io/cli"
)

var Description = strings.ReplaceAll(`
tinycc compiles a single translation unit written in a small C subset
(integers only, no arrays, structs or pointers) directly into gas-syntax
assembly for the target selected at build time. It does not invoke an
assembler or linker of its own.
`, "\n", " ")

var Tinycc = cli.New(Description).
	WithArg(cli.NewArg("input", "The source (.c) file to compile").WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}
	input := args[0]

	source, err := os.Open(input)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer source.Close()

	p := parser.New()
	program, err := p.Parse(source)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	if p.Bag().Count() > 0 {
		for _, msg := range p.Bag().Strings() {
			fmt.Fprintln(os.Stderr, msg)
		}
		return -1
	}

	for _, fn := range program.Functions {
		if err := regalloc.Allocate(fn); err != nil {
			fmt.Printf("ERROR: Unable to complete 'register allocation' pass: %s\n", err)
			return -1
		}
	}

	frameTarget := frame.X64
	if target.Name == backend.ARM64Name {
		frameTarget = frame.ARM64
	}
	for _, fn := range program.Functions {
		frame.Assign(frameTarget, p.Symbols().Committed(fn.ID))
	}

	dump.Program(os.Stderr, program, p.Symbols())

	backendTarget := backend.New(target.Name)

	output, err := os.Create(strings.TrimSuffix(input, ".c") + ".s")
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	gen := codegen.New(backendTarget, frameTarget, p.Symbols(), output)
	if err := gen.Generate(program); err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	return 0
}

func main() { os.Exit(Tinycc.Run(os.Args, os.Stdout)) }
