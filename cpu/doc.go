// Package cpu implements the LS8 processor and its assembler.
//
// The LS8 is an 8-bit machine with 256 bytes of flat memory, eight
// general-purpose registers (R0-R7), a downward growing stack starting at
// STACK_INIT, and a flags register set by CMP and consumed by the
// conditional jumps.
//
// Each instruction is one opcode byte followed by zero to two operand bytes.
// The top two bits of the opcode (AA) give the operand count, bit 5 (B)
// marks an ALU operation, and bit 4 (C) marks an instruction that assigns
// the program counter itself.
//
// The assembler turns LS8 mnemonic source into a Program, supporting
// labels, equates, data bytes and compile-time $(...) expressions.
package cpu
