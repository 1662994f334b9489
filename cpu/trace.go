package cpu

import (
	"fmt"
	"strings"
)

// TraceEvent is a snapshot of the CPU taken just before an instruction
// executes.
type TraceEvent struct {
	Pc       int
	Op       Opcode
	A, B     byte // Operand bytes at pc+1 and pc+2.
	Register RegisterFile
	Flags    Flags
	Sp       int
}

func (cpu *Cpu) traceEvent(op Opcode, a, b byte) TraceEvent {
	return TraceEvent{
		Pc:       cpu.Pc,
		Op:       op,
		A:        a,
		B:        b,
		Register: cpu.Register,
		Flags:    cpu.Flags,
		Sp:       cpu.Stack.Sp,
	}
}

// String formats the event as 'TRACE: PC | IR A B | FL SP | R0 .. R7'.
func (ev TraceEvent) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X | %v %02X |", ev.Pc, byte(ev.Op), ev.A, ev.B, ev.Flags, ev.Sp)
	for _, val := range ev.Register {
		fmt.Fprintf(&sb, " %02X", val)
	}

	return sb.String()
}
