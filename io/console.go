// Package io provides the output devices of the LS8 emulator.
package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
)

// Console writes the values printed by PRN and PRA to a byte stream.
// With no Output attached the values are discarded.
type Console struct {
	Output io.Writer

	Printed int // Values written since the last Rewind.
}

// Defines returns an iter of defines for the console.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"NEWLINE": "10",
	})
}

// Rewind clears the output counter.
func (con *Console) Rewind() {
	con.Printed = 0
}

// Print writes value in decimal followed by a newline.
func (con *Console) Print(value byte) (err error) {
	if con.Output == nil {
		return
	}

	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	if err != nil {
		return
	}

	con.Printed++
	return
}

// PrintChar writes value as a single raw byte.
func (con *Console) PrintChar(value byte) (err error) {
	if con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{value})
	if err != nil {
		return
	}

	con.Printed++
	return
}
