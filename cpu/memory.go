package cpu

const (
	MEMORY_SIZE = 256  // Bytes of addressable memory.
	STACK_INIT  = 0xf4 // Initial stack pointer.
)

// Memory is the flat LS8 address space.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr int) (value byte, err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	value = mem.Data[addr]
	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr int, value byte) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	mem.Data[addr] = value
	return
}

// Load copies a program image into memory starting at start.
// Nothing is written unless the whole image fits.
func (mem *Memory) Load(image []byte, start int) (err error) {
	if start < 0 || start > MEMORY_SIZE {
		err = ErrAddress(start)
		return
	}
	if start+len(image) > MEMORY_SIZE {
		err = ErrAddress(start + len(image) - 1)
		return
	}

	copy(mem.Data[start:], image)
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}
