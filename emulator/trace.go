package emulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/ezrec/ls8/cpu"
)

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

// TraceWriter prints trace events, one per line. With Color set, values
// that changed since the previous event are highlighted.
type TraceWriter struct {
	Output io.Writer
	Color  bool

	last *cpu.TraceEvent
}

// Rewind forgets the previous event.
func (tw *TraceWriter) Rewind() {
	tw.last = nil
}

func (tw *TraceWriter) color(text string, changed bool) string {
	if !tw.Color {
		return text
	}
	if changed {
		return chNew + text + ansi.Reset
	}
	return chSame + text + ansi.Reset
}

// Format renders an event, comparing against the previous one.
func (tw *TraceWriter) Format(ev cpu.TraceEvent) string {
	if !tw.Color {
		return ev.String()
	}

	prev := ev
	if tw.last != nil {
		prev = *tw.last
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X | %v %v |", ev.Pc, byte(ev.Op), ev.A, ev.B,
		tw.color(ev.Flags.String(), ev.Flags != prev.Flags),
		tw.color(fmt.Sprintf("%02X", ev.Sp), ev.Sp != prev.Sp))
	for n, val := range ev.Register {
		sb.WriteString(" ")
		sb.WriteString(tw.color(fmt.Sprintf("%02X", val), val != prev.Register[n]))
	}
	fmt.Fprintf(&sb, " ; %v", ev.Op)

	return sb.String()
}

// Trace writes an event. It matches the cpu.Cpu Trace callback.
func (tw *TraceWriter) Trace(ev cpu.TraceEvent) {
	fmt.Fprintln(tw.Output, tw.Format(ev))
	tw.last = &ev
}
