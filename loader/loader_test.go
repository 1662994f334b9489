package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const print8 = `# print8.ls8: Print the number 8 on the screen

10000010 # LDI R0,8
00000000
00001000
01000111 # PRN R0
00000000
00000001 # HLT
`

func TestParse(t *testing.T) {
	assert := assert.New(t)

	image, err := Parse(strings.NewReader(print8))
	assert.NoError(err)
	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}, image)
}

func TestParse_Whitespace(t *testing.T) {
	assert := assert.New(t)

	image, err := Parse(strings.NewReader("  10100000\t; ADD\n\n   # indented comment\n00000001#HLT\n"))
	assert.NoError(err)
	assert.Equal([]byte{0xa0, 0x01}, image)
}

func TestParse_Empty(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "\n\n", "# only a comment\n   # another\n"} {
		image, err := Parse(strings.NewReader(text))
		assert.ErrorIs(err, ErrEmptyProgram)
		assert.Nil(image)
		assert.Equal(EXIT_EMPTY, ExitCode(err))
	}
}

func TestParse_InvalidLiteral(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text   string
		lineno int
	}){
		{"1000001", 1},
		{"00000001\n1000001x\n", 2},
		{"100000010", 1},
		{"LDI R0,8", 1},
		{"\n\n0000000 1", 3},
	}

	for _, entry := range table {
		_, err := Parse(strings.NewReader(entry.text))
		assert.ErrorIs(err, ErrInvalidInstructionLiteral, entry.text)
		assert.Equal(EXIT_LITERAL, ExitCode(err))

		var lit ErrLiteral
		if assert.True(errors.As(err, &lit), entry.text) {
			assert.Equal(entry.lineno, lit.LineNo, entry.text)
		}
	}
}

func TestParse_TooLarge(t *testing.T) {
	assert := assert.New(t)

	text := strings.Repeat("00000000\n", 256)
	image, err := Parse(strings.NewReader(text))
	assert.NoError(err)
	assert.Len(image, 256)

	_, err = Parse(strings.NewReader(text + "00000001\n"))
	assert.ErrorIs(err, ErrProgramTooLarge)
	assert.Equal(EXIT_TOO_LARGE, ExitCode(err))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "print8.ls8")
	require.NoError(t, os.WriteFile(path, []byte(print8), 0o644))

	image, err := Load(path)
	assert.NoError(err)
	assert.Len(image, 6)

	_, err = Load(filepath.Join(dir, "missing.ls8"))
	assert.ErrorIs(err, ErrProgramFileNotFound)
	assert.Equal(EXIT_NOT_FOUND, ExitCode(err))
	assert.Contains(err.Error(), "missing.ls8")

	empty := filepath.Join(dir, "empty.ls8")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty)
	assert.ErrorIs(err, ErrEmptyProgram)
}

func TestExitCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(EXIT_OK, ExitCode(nil))
	assert.Equal(EXIT_FAULT, ExitCode(errors.New("boom")))

	codes := map[int]bool{}
	for _, err := range []error{nil, errors.New("x"), ErrProgramFileNotFound, ErrInvalidInstructionLiteral, ErrEmptyProgram, ErrProgramTooLarge} {
		codes[ExitCode(err)] = true
	}
	assert.Len(codes, 6)
}
