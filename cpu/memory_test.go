package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for addr := range MEMORY_SIZE {
		assert.NoError(mem.Write(addr, byte(addr^0x55)))
	}
	for addr := range MEMORY_SIZE {
		value, err := mem.Read(addr)
		assert.NoError(err)
		assert.Equal(byte(addr^0x55), value)
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for _, addr := range []int{-1, MEMORY_SIZE, 1000} {
		_, err := mem.Read(addr)
		assert.ErrorIs(err, ErrAddressOutOfRange)
		assert.Equal(ErrAddress(addr), err)

		assert.ErrorIs(mem.Write(addr, 1), ErrAddressOutOfRange)
	}
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.Load([]byte{1, 2, 3}, 0x10))
	assert.Equal([]byte{0, 1, 2, 3, 0}, mem.Data[0x0f:0x14])

	assert.NoError(mem.Load(make([]byte, MEMORY_SIZE), 0))
	assert.NoError(mem.Load(nil, MEMORY_SIZE))

	mem.Data[0xff] = 7
	assert.ErrorIs(mem.Load([]byte{1, 2}, 0xff), ErrAddressOutOfRange)
	assert.Equal(byte(7), mem.Data[0xff])
	assert.ErrorIs(mem.Load([]byte{1}, -1), ErrAddressOutOfRange)

	mem.Reset()
	assert.Equal([MEMORY_SIZE]byte{}, mem.Data)
}

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	var rf RegisterFile
	for n := range REGISTER_COUNT {
		assert.NoError(rf.Set(n, uint(0x100+n)))
		value, err := rf.Get(n)
		assert.NoError(err)
		assert.Equal(byte(n), value)
	}

	_, err := rf.Get(REGISTER_COUNT)
	assert.ErrorIs(err, ErrRegisterOutOfRange)
	assert.ErrorIs(rf.Set(-1, 0), ErrRegisterOutOfRange)

	rf.Reset()
	assert.Equal(RegisterFile{}, rf)
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FLAG_EQUAL, Compare(3, 3))
	assert.Equal(FLAG_LESS, Compare(2, 3))
	assert.Equal(FLAG_GREATER, Compare(4, 3))

	assert.Equal(Flags(0b001), FLAG_EQUAL)
	assert.Equal(Flags(0b010), FLAG_GREATER)
	assert.Equal(Flags(0b100), FLAG_LESS)

	assert.Equal("---", Flags(0).String())
	assert.Equal("--E", FLAG_EQUAL.String())
	assert.Equal("-G-", FLAG_GREATER.String())
	assert.Equal("L--", FLAG_LESS.String())
}

func TestOpcode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, OP_HLT.Operands())
	assert.Equal(1, OP_PRN.Operands())
	assert.Equal(2, OP_LDI.Operands())
	assert.Equal(3, OP_LDI.Len())

	assert.True(OP_ADD.IsAlu())
	assert.True(OP_INC.IsAlu())
	assert.False(OP_LDI.IsAlu())

	for _, op := range []Opcode{OP_CALL, OP_RET, OP_JMP, OP_JEQ, OP_JNE} {
		assert.True(op.SetsPc(), op.String())
	}
	assert.False(OP_PUSH.SetsPc())

	assert.Equal("LDI", OP_LDI.String())
	assert.Equal("0b11111111", Opcode(0xff).String())

	op, ok := LookupOpcode("jne")
	assert.True(ok)
	assert.Equal(OP_JNE, op)
	_, ok = LookupOpcode("INT")
	assert.False(ok)

	for op := range mnemonics {
		assert.True(op.Valid(), op.String())
	}
}
