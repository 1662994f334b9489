package cpu

// Alu performs an arithmetic or comparison operation on registers reg_a
// and reg_b. Results are written back to reg_a, masked to 8 bits. CMP only
// updates the flags.
func (cpu *Cpu) Alu(op Opcode, reg_a, reg_b byte) (err error) {
	if !op.IsAlu() {
		err = ErrUnsupportedAluOp
		return
	}

	a, err := cpu.Register.Get(int(reg_a))
	if err != nil {
		return
	}

	// Single operand ops (INC, DEC, NOT) ignore reg_b.
	var b byte
	if op.Operands() == 2 {
		b, err = cpu.Register.Get(int(reg_b))
		if err != nil {
			return
		}
	}

	var output uint
	switch op {
	case OP_ADD:
		output = uint(a) + uint(b)
	case OP_SUB:
		output = uint(a) - uint(b)
	case OP_MUL:
		output = uint(a) * uint(b)
	case OP_DIV:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		output = uint(a) / uint(b)
	case OP_MOD:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		output = uint(a) % uint(b)
	case OP_AND:
		output = uint(a & b)
	case OP_OR:
		output = uint(a | b)
	case OP_XOR:
		output = uint(a ^ b)
	case OP_NOT:
		output = uint(^a)
	case OP_SHL:
		output = uint(a) << b
	case OP_SHR:
		output = uint(a) >> b
	case OP_INC:
		output = uint(a) + 1
	case OP_DEC:
		output = uint(a) - 1
	case OP_CMP:
		cpu.Flags = Compare(a, b)
		return
	default:
		err = ErrUnsupportedAluOp
		return
	}

	err = cpu.Register.Set(int(reg_a), output)
	return
}
