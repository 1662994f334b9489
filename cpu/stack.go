package cpu

// Stack is the downward growing stack kept in Memory.
// Sp addresses the most recently pushed byte.
type Stack struct {
	Memory *Memory
	Sp     int
}

// Push decrements the stack pointer and stores value there.
func (s *Stack) Push(value byte) (err error) {
	err = s.Memory.Write(s.Sp-1, value)
	if err != nil {
		return
	}

	s.Sp--
	return
}

// Pop reads the value at the stack pointer and increments it.
// The pointer never moves past the last memory address.
func (s *Stack) Pop() (value byte, err error) {
	if s.Sp+1 >= MEMORY_SIZE {
		err = ErrAddress(s.Sp + 1)
		return
	}

	value, err = s.Memory.Read(s.Sp)
	if err != nil {
		return
	}

	s.Sp++
	return
}

// Peek returns the value at the top of the stack without moving it.
func (s *Stack) Peek() (value byte, err error) {
	return s.Memory.Read(s.Sp)
}

// Reset moves the stack pointer back to STACK_INIT.
func (s *Stack) Reset() {
	s.Sp = STACK_INIT
}
