package cpu

import (
	"strings"
)

const (
	REGISTER_COUNT = 8 // General-purpose registers R0-R7.
)

// RegisterFile holds the general-purpose registers.
type RegisterFile [REGISTER_COUNT]byte

// Get returns the value of register index.
func (rf *RegisterFile) Get(index int) (value byte, err error) {
	if index < 0 || index >= REGISTER_COUNT {
		err = ErrRegister(index)
		return
	}

	value = rf[index]
	return
}

// Set stores the low 8 bits of value in register index.
func (rf *RegisterFile) Set(index int, value uint) (err error) {
	if index < 0 || index >= REGISTER_COUNT {
		err = ErrRegister(index)
		return
	}

	rf[index] = byte(value & 0xff)
	return
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}

// Flags is the condition code register, laid out as 00000LGE.
type Flags byte

const (
	FLAG_EQUAL   = Flags(1 << 0)
	FLAG_GREATER = Flags(1 << 1)
	FLAG_LESS    = Flags(1 << 2)
)

// Compare returns the one-hot flags for comparing a with b.
func Compare(a, b byte) Flags {
	switch {
	case a < b:
		return FLAG_LESS
	case a > b:
		return FLAG_GREATER
	default:
		return FLAG_EQUAL
	}
}

func (fl Flags) Equal() bool {
	return (fl & FLAG_EQUAL) != 0
}

func (fl Flags) Greater() bool {
	return (fl & FLAG_GREATER) != 0
}

func (fl Flags) Less() bool {
	return (fl & FLAG_LESS) != 0
}

// String returns the flags as LGE, with '-' for clear bits.
func (fl Flags) String() string {
	var sb strings.Builder
	for n, ch := range []byte{'L', 'G', 'E'} {
		if (fl & (1 << (2 - n))) != 0 {
			sb.WriteByte(ch)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
