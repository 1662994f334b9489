package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Line is one line of assembled source with the bytes it produced.
type Line struct {
	LineNo    int      // Source line number.
	Addr      int      // Address of the first byte.
	Words     []string // Source words after equate expansion.
	Bytes     []byte   // Encoded instruction or data.
	LinkLabel string   // Label to resolve at link time.
	LinkIndex int      // Index in Bytes that receives the label address.
}

// Program is an assembled LS8 program.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that produced the byte at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, line := range prog.Lines {
		if addr >= line.Addr && addr < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: addr - line.Addr,
			}
			break
		}
	}

	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[int, byte] {
	return func(yield func(addr int, value byte) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Addr+n, value) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (image []byte) {
	for addr, value := range prog.Bytes() {
		for len(image) <= addr {
			image = append(image, 0)
		}
		image[addr] = value
	}

	return
}

// WriteListing writes the program in the .ls8 text format, one binary
// literal per line, with the source of each instruction as a comment.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		for n, value := range line.Bytes {
			if n == 0 {
				_, err = fmt.Fprintf(w, "%08b # %02X: %v\n", value, line.Addr, strings.Join(line.Words, " "))
			} else {
				_, err = fmt.Fprintf(w, "%08b\n", value)
			}
			if err != nil {
				return
			}
		}
	}

	return
}
