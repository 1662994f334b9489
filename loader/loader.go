// Package loader reads LS8 programs in the .ls8 text format.
//
// Each instruction or operand byte is written on its own line as an
// 8 character binary literal. Blank lines and lines starting with '#' are
// skipped, and anything after the literal is a comment.
package loader

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ezrec/ls8/cpu"
)

const LITERAL_WIDTH = 8 // Digits in a binary literal.

// Parse reads a program image from input.
func Parse(input io.Reader) (image []byte, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var value byte
		value, err = parseLiteral(line)
		if err != nil {
			err = errors.WithStack(ErrLiteral{LineNo: lineno, Text: line})
			return
		}

		if len(image) == cpu.MEMORY_SIZE {
			err = errors.Wrapf(ErrProgramTooLarge, "line %d", lineno)
			return
		}
		image = append(image, value)
	}
	if err = scanner.Err(); err != nil {
		err = errors.Wrap(err, "read program")
		return
	}

	if len(image) == 0 {
		err = errors.WithStack(ErrEmptyProgram)
		return
	}

	return
}

// parseLiteral decodes the leading binary literal of a line.
func parseLiteral(line string) (value byte, err error) {
	if len(line) < LITERAL_WIDTH {
		err = ErrInvalidInstructionLiteral
		return
	}
	if len(line) > LITERAL_WIDTH {
		next := line[LITERAL_WIDTH]
		if next != ' ' && next != '\t' && next != '#' {
			err = ErrInvalidInstructionLiteral
			return
		}
	}

	for _, ch := range line[:LITERAL_WIDTH] {
		value <<= 1
		switch ch {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrInvalidInstructionLiteral
			return
		}
	}

	return
}

// Load reads a program image from a .ls8 file.
func Load(path string) (image []byte, err error) {
	inf, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = errors.Wrap(ErrProgramFileNotFound, path)
		return
	}
	if err != nil {
		err = errors.Wrap(err, path)
		return
	}
	defer inf.Close()

	image, err = Parse(inf)
	if err != nil {
		err = errors.Wrap(err, path)
		return
	}

	return
}
