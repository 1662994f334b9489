package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrUnknownOpcode      = errors.New(f("unknown opcode"))
	ErrUnsupportedAluOp   = errors.New(f("unsupported alu operation"))
	ErrAddressOutOfRange  = errors.New(f("address out of range"))
	ErrRegisterOutOfRange = errors.New(f("register out of range"))
	ErrDivideByZero       = errors.New(f("divide by zero"))
	ErrHalted             = errors.New(f("cpu halted"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
)

// ErrAddress is a memory access outside of the address space.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %v out of range", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressOutOfRange
}

// ErrRegister is a register index outside of the register file.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %v out of range", int(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterOutOfRange || err == ErrAddressOutOfRange
}

// ErrOpcode locates a failing instruction.
type ErrOpcode struct {
	Pc int
	Op Opcode
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0b%08b %v at %v", byte(eo.Op), eo.Op.String(), eo.Pc)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
