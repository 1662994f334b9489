package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"STACK_INIT":     fmt.Sprintf("0x%x", STACK_INIT),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"FLAG_EQUAL":     fmt.Sprintf("%v", int(FLAG_EQUAL)),
	"FLAG_GREATER":   fmt.Sprintf("%v", int(FLAG_GREATER)),
	"FLAG_LESS":      fmt.Sprintf("%v", int(FLAG_LESS)),
}

// Output receives the values printed by PRN and PRA.
type Output interface {
	// Print emits a value as a decimal number.
	Print(value byte) error
	// PrintChar emits a value as a single character.
	PrintChar(value byte) error
}

// Termination is the reason Run returned.
type Termination int

const (
	TERM_HALTED = Termination(0) // Executed HLT.
	TERM_FAULT  = Termination(1) // Stopped on a fatal error.
)

func (term Termination) String() string {
	switch term {
	case TERM_HALTED:
		return "halted"
	case TERM_FAULT:
		return "fault"
	}
	return fmt.Sprintf("Termination(%d)", int(term))
}

// Cpu is the LS8 processor state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory       // Main memory.
	Register RegisterFile // General-purpose registers.
	Flags    Flags        // Condition codes from the last CMP.
	Stack    Stack        // Stack in Memory.
	Pc       int          // Program counter.
	Halted   bool         // Set by HLT.

	Output Output                 // Destination of PRN and PRA, may be nil.
	Trace  func(event TraceEvent) // Called before each instruction executes, may be nil.

	Ticks int // Instructions retired since Reset.

	nextPc int // Program counter after the executing instruction.
}

// NewCpu creates a reset CPU with empty memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Stack.Memory = &cpu.Memory
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Sets the program counter to 0 and the stack pointer to STACK_INIT.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Stack.Reset()
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// Load copies a program image into memory at start.
func (cpu *Cpu) Load(image []byte, start int) (err error) {
	err = cpu.Memory.Load(image, start)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %v bytes at 0x%02x", len(image), start)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("%5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("%5s: %02X\n", "sp", cpu.Stack.Sp)
	text += fmt.Sprintf("%5s: %v\n", "fl", cpu.Flags)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("%5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}

	return
}

// Run executes instructions until HLT or a fatal error.
func (cpu *Cpu) Run() (term Termination, err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			term = TERM_FAULT
			return
		}
	}

	term = TERM_HALTED
	return
}

// Tick executes a single fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	ir, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}
	op := Opcode(ir)

	// Operands are always fetched; running off the end of memory only
	// matters for operands the instruction consumes.
	a, err_a := cpu.Memory.Read(cpu.Pc + 1)
	b, err_b := cpu.Memory.Read(cpu.Pc + 2)

	if !op.Valid() {
		err = errors.Join(ErrOpcode{Pc: cpu.Pc, Op: op}, ErrUnknownOpcode)
		return
	}

	switch {
	case op.Operands() >= 1 && err_a != nil:
		err = errors.Join(ErrOpcode{Pc: cpu.Pc, Op: op}, err_a)
		return
	case op.Operands() >= 2 && err_b != nil:
		err = errors.Join(ErrOpcode{Pc: cpu.Pc, Op: op}, err_b)
		return
	}

	if cpu.Trace != nil {
		cpu.Trace(cpu.traceEvent(op, a, b))
	}

	err = cpu.Execute(op, a, b)
	return
}

// Execute executes a single decoded instruction at the current program
// counter. On error the program counter is left unchanged, and an
// instruction that would fall off the end of memory is not executed.
func (cpu *Cpu) Execute(op Opcode, operand_a, operand_b byte) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: cpu.Pc, Op: op}, err)
		}
	}()

	exec, ok := instructions[op]
	if !ok {
		err = ErrUnknownOpcode
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %02x: %v %02x %02x", cpu.Pc, op, operand_a, operand_b)
	}

	cpu.nextPc = cpu.Pc + op.Len()
	if !op.SetsPc() && op != OP_HLT && cpu.nextPc >= MEMORY_SIZE {
		err = ErrAddress(cpu.nextPc)
		return
	}

	err = exec(cpu, operand_a, operand_b)
	if err != nil {
		return
	}

	if cpu.nextPc >= MEMORY_SIZE {
		err = ErrAddress(cpu.nextPc)
		return
	}

	cpu.Pc = cpu.nextPc
	cpu.Ticks++

	return
}

// instructions is the dispatch table, indexed by opcode.
var instructions = map[Opcode]func(cpu *Cpu, a, b byte) error{
	OP_NOP: func(*Cpu, byte, byte) error { return nil },
	OP_HLT: (*Cpu).opHlt,
	OP_LDI: (*Cpu).opLdi,
	OP_LD:  (*Cpu).opLd,
	OP_ST:  (*Cpu).opSt,
	OP_PRN: (*Cpu).opPrn,
	OP_PRA: (*Cpu).opPra,

	OP_PUSH: (*Cpu).opPush,
	OP_POP:  (*Cpu).opPop,
	OP_CALL: (*Cpu).opCall,
	OP_RET:  (*Cpu).opRet,

	OP_JMP: jumpIf(func(Flags) bool { return true }),
	OP_JEQ: jumpIf(Flags.Equal),
	OP_JNE: jumpIf(func(fl Flags) bool { return !fl.Equal() }),
	OP_JGT: jumpIf(Flags.Greater),
	OP_JLT: jumpIf(Flags.Less),
	OP_JLE: jumpIf(func(fl Flags) bool { return fl.Less() || fl.Equal() }),
	OP_JGE: jumpIf(func(fl Flags) bool { return fl.Greater() || fl.Equal() }),

	OP_ADD: aluOp(OP_ADD),
	OP_SUB: aluOp(OP_SUB),
	OP_MUL: aluOp(OP_MUL),
	OP_DIV: aluOp(OP_DIV),
	OP_MOD: aluOp(OP_MOD),
	OP_CMP: aluOp(OP_CMP),
	OP_AND: aluOp(OP_AND),
	OP_OR:  aluOp(OP_OR),
	OP_XOR: aluOp(OP_XOR),
	OP_NOT: aluOp(OP_NOT),
	OP_SHL: aluOp(OP_SHL),
	OP_SHR: aluOp(OP_SHR),
	OP_INC: aluOp(OP_INC),
	OP_DEC: aluOp(OP_DEC),
}

func aluOp(op Opcode) func(cpu *Cpu, a, b byte) error {
	return func(cpu *Cpu, a, b byte) error {
		return cpu.Alu(op, a, b)
	}
}

// jumpIf jumps to the address in register a when cond holds for the
// current flags, and falls through to the next instruction otherwise.
func jumpIf(cond func(fl Flags) bool) func(cpu *Cpu, a, b byte) error {
	return func(cpu *Cpu, a, _ byte) error {
		if !cond(cpu.Flags) {
			return nil
		}
		return cpu.jump(a)
	}
}

func (cpu *Cpu) jump(reg byte) (err error) {
	target, err := cpu.Register.Get(int(reg))
	if err != nil {
		return
	}

	cpu.nextPc = int(target)
	return
}

func (cpu *Cpu) opHlt(_, _ byte) error {
	cpu.Halted = true
	cpu.nextPc = cpu.Pc
	return nil
}

func (cpu *Cpu) opLdi(reg, value byte) error {
	return cpu.Register.Set(int(reg), uint(value))
}

func (cpu *Cpu) opLd(reg_a, reg_b byte) (err error) {
	addr, err := cpu.Register.Get(int(reg_b))
	if err != nil {
		return
	}
	value, err := cpu.Memory.Read(int(addr))
	if err != nil {
		return
	}
	return cpu.Register.Set(int(reg_a), uint(value))
}

func (cpu *Cpu) opSt(reg_a, reg_b byte) (err error) {
	addr, err := cpu.Register.Get(int(reg_a))
	if err != nil {
		return
	}
	value, err := cpu.Register.Get(int(reg_b))
	if err != nil {
		return
	}
	return cpu.Memory.Write(int(addr), value)
}

func (cpu *Cpu) opPrn(reg, _ byte) (err error) {
	value, err := cpu.Register.Get(int(reg))
	if err != nil || cpu.Output == nil {
		return
	}
	return cpu.Output.Print(value)
}

func (cpu *Cpu) opPra(reg, _ byte) (err error) {
	value, err := cpu.Register.Get(int(reg))
	if err != nil || cpu.Output == nil {
		return
	}
	return cpu.Output.PrintChar(value)
}

func (cpu *Cpu) opPush(reg, _ byte) (err error) {
	value, err := cpu.Register.Get(int(reg))
	if err != nil {
		return
	}
	return cpu.Stack.Push(value)
}

func (cpu *Cpu) opPop(reg, _ byte) (err error) {
	if _, err = cpu.Register.Get(int(reg)); err != nil {
		return
	}
	value, err := cpu.Stack.Pop()
	if err != nil {
		return
	}
	return cpu.Register.Set(int(reg), uint(value))
}

func (cpu *Cpu) opCall(reg, _ byte) (err error) {
	target, err := cpu.Register.Get(int(reg))
	if err != nil {
		return
	}
	if cpu.nextPc >= MEMORY_SIZE {
		err = ErrAddress(cpu.nextPc)
		return
	}
	err = cpu.Stack.Push(byte(cpu.nextPc))
	if err != nil {
		return
	}

	cpu.nextPc = int(target)
	return
}

func (cpu *Cpu) opRet(_, _ byte) (err error) {
	target, err := cpu.Stack.Pop()
	if err != nil {
		return
	}

	cpu.nextPc = int(target)
	return
}
