// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
)

func main() {
	os.Exit(run())
}

func run() int {
	var compile string
	var save bool
	var verbose bool
	var trace bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&save, "s", false, "Write the assembled .ls8 listing to stdout, do not execute")
	flag.BoolVar(&trace, "t", false, "Trace every instruction to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Printf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
			return loader.EXIT_FAULT
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Printf("%v: %v", compile, err)
			return loader.EXIT_NOT_FOUND
		}
		defer inf.Close()

		prog, err := emu.Assembler().Parse(inf)
		if err != nil {
			log.Printf("%v: %v", compile, err)
			return loader.EXIT_LITERAL
		}

		if save {
			err = prog.WriteListing(os.Stdout)
			if err != nil {
				log.Print(err)
				return loader.EXIT_FAULT
			}
			return loader.EXIT_OK
		}

		emu.SetProgram(prog)
	case flag.NArg() == 1:
		image, err := loader.Load(flag.Arg(0))
		if err != nil {
			log.Print(err)
			return loader.ExitCode(err)
		}
		emu.Image = image
	default:
		fmt.Fprintf(os.Stderr, "usage: %v [-v] [-t] program.ls8\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %v [-v] [-t] [-s] -c program.asm\n", os.Args[0])
		flag.PrintDefaults()
		return loader.EXIT_FAULT
	}

	emu.Console.Output = os.Stdout
	if trace {
		emu.Trace = &emulator.TraceWriter{
			Output: os.Stderr,
			Color:  isatty.IsTerminal(os.Stderr.Fd()),
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Print(err)
		return loader.ExitCode(err)
	}

	term, err := emu.Run()
	if err != nil {
		log.Printf("%v: %v", term, err)
		if verbose {
			log.Printf("state:\n%v", emu.Cpu.String())
		}
		return loader.ExitCode(err)
	}

	return loader.EXIT_OK
}
