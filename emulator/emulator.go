// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties the LS8 processor to a program and its console.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/loader"
)

const (
	PROGRAM_START = 0 // Address the program image is loaded at.
)

var _emulator_defines = map[string]string{
	"PROGRAM_START": fmt.Sprintf("%v", PROGRAM_START),
}

// Emulator state. CPU + program image + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing, if the image came from source.
	Image    []byte       // Memory image loaded on Reset.

	Console io.Console   // Console for PRN and PRA.
	Trace   *TraceWriter // If set, receives every executed instruction.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.Output = &emu.Console

	return
}

// Defines returns an iterator over all of the defines, ordered by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.SortedDefines(internal.MergeDefines(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Console.Defines(),
	))
}

// Assembler returns an assembler with the emulator defines predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	return
}

// SetProgram uses an assembled program as the memory image.
func (emu *Emulator) SetProgram(prog *cpu.Program) {
	emu.Program = prog
	emu.Image = prog.Binary()
}

// Reset the emulator state and load the memory image.
// An empty image is rejected before anything can run.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Console.Rewind()

	emu.Cpu.Trace = nil
	if emu.Trace != nil {
		emu.Trace.Rewind()
		emu.Cpu.Trace = emu.Trace.Trace
	}

	if len(emu.Image) == 0 {
		err = loader.ErrEmptyProgram
		return
	}

	err = emu.Cpu.Load(emu.Image, PROGRAM_START)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %v byte image", len(emu.Image))
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the current instruction,
// or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks the emulator until it halts or faults.
func (emu *Emulator) Run() (term cpu.Termination, err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			term = cpu.TERM_FAULT
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %v ticks", emu.Ticks())
	}

	term = cpu.TERM_HALTED
	return
}
