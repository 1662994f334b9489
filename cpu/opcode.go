package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the leading byte of an LS8 instruction.
type Opcode byte

const (
	OP_NOP = Opcode(0b00000000)
	OP_HLT = Opcode(0b00000001)
	OP_RET = Opcode(0b00010001)

	OP_PUSH = Opcode(0b01000101)
	OP_POP  = Opcode(0b01000110)
	OP_PRN  = Opcode(0b01000111)
	OP_PRA  = Opcode(0b01001000)

	OP_CALL = Opcode(0b01010000)
	OP_JMP  = Opcode(0b01010100)
	OP_JEQ  = Opcode(0b01010101)
	OP_JNE  = Opcode(0b01010110)
	OP_JGT  = Opcode(0b01010111)
	OP_JLT  = Opcode(0b01011000)
	OP_JLE  = Opcode(0b01011001)
	OP_JGE  = Opcode(0b01011010)

	OP_INC = Opcode(0b01100101)
	OP_DEC = Opcode(0b01100110)
	OP_NOT = Opcode(0b01101001)

	OP_LDI = Opcode(0b10000010)
	OP_LD  = Opcode(0b10000011)
	OP_ST  = Opcode(0b10000100)

	OP_ADD = Opcode(0b10100000)
	OP_SUB = Opcode(0b10100001)
	OP_MUL = Opcode(0b10100010)
	OP_DIV = Opcode(0b10100011)
	OP_MOD = Opcode(0b10100100)
	OP_CMP = Opcode(0b10100111)
	OP_AND = Opcode(0b10101000)
	OP_OR  = Opcode(0b10101010)
	OP_XOR = Opcode(0b10101011)
	OP_SHL = Opcode(0b10101100)
	OP_SHR = Opcode(0b10101101)
)

// mnemonics names every opcode the processor decodes.
var mnemonics = map[Opcode]string{
	OP_NOP:  "NOP",
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_PRA:  "PRA",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_JGT:  "JGT",
	OP_JLT:  "JLT",
	OP_JLE:  "JLE",
	OP_JGE:  "JGE",
	OP_INC:  "INC",
	OP_DEC:  "DEC",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_ADD:  "ADD",
	OP_SUB:  "SUB",
	OP_MUL:  "MUL",
	OP_DIV:  "DIV",
	OP_MOD:  "MOD",
	OP_CMP:  "CMP",
	OP_AND:  "AND",
	OP_OR:   "OR",
	OP_XOR:  "XOR",
	OP_SHL:  "SHL",
	OP_SHR:  "SHR",
}

// opcodeOf is the reverse of mnemonics, used by the assembler.
var opcodeOf = func() map[string]Opcode {
	rev := make(map[string]Opcode, len(mnemonics))
	for op, name := range mnemonics {
		rev[name] = op
	}
	return rev
}()

// LookupOpcode finds the opcode for a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodeOf[strings.ToUpper(mnemonic)]
	return
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Len returns the encoded length of the instruction in bytes.
func (op Opcode) Len() int {
	return op.Operands() + 1
}

// IsAlu is true for opcodes executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// SetsPc is true for opcodes that assign the program counter themselves.
func (op Opcode) SetsPc() bool {
	return (op & 0b00010000) != 0
}

// Valid is true if the processor decodes the opcode.
func (op Opcode) Valid() bool {
	_, ok := instructions[op]
	return ok
}

// String returns the mnemonic, or the binary literal for unknown opcodes.
func (op Opcode) String() string {
	name, ok := mnemonics[op]
	if !ok {
		return fmt.Sprintf("0b%08b", byte(op))
	}
	return name
}
