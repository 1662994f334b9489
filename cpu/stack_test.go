package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStack() *Stack {
	s := &Stack{Memory: &Memory{}}
	s.Reset()
	return s
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	assert.Equal(STACK_INIT, s.Sp)

	assert.NoError(s.Push(0x12))
	assert.Equal(STACK_INIT-1, s.Sp)
	assert.Equal(byte(0x12), s.Memory.Data[STACK_INIT-1])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	assert.NoError(s.Push(0x12))
	assert.NoError(s.Push(0xAB))

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(byte(0xAB), val)

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(byte(0x12), val)
	assert.Equal(STACK_INIT, s.Sp)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	assert.NoError(s.Push(0x34))

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(byte(0x34), val)
	assert.Equal(STACK_INIT-1, s.Sp)
}

func TestStack_Overflow(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	for range STACK_INIT {
		assert.NoError(s.Push(1))
	}
	assert.Equal(0, s.Sp)

	assert.ErrorIs(s.Push(1), ErrAddressOutOfRange)
	assert.Equal(0, s.Sp)
}

func TestStack_Underflow(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	for range MEMORY_SIZE - 1 - STACK_INIT {
		_, err := s.Pop()
		assert.NoError(err)
	}
	assert.Equal(MEMORY_SIZE-1, s.Sp)

	_, err := s.Pop()
	assert.ErrorIs(err, ErrAddressOutOfRange)
	assert.Equal(MEMORY_SIZE-1, s.Sp)
}

func TestCpu_PopUnderflowFaults(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, byte(OP_POP), 0, byte(OP_HLT))
	cpu.Stack.Sp = MEMORY_SIZE - 1

	term, err := cpu.Run()
	assert.Equal(TERM_FAULT, term)
	assert.ErrorIs(err, ErrAddressOutOfRange)
	assert.Equal(0, cpu.Pc)
}
