package loader

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrProgramFileNotFound       = errors.New(f("program file not found"))
	ErrInvalidInstructionLiteral = errors.New(f("invalid instruction literal"))
	ErrEmptyProgram              = errors.New(f("empty program"))
	ErrProgramTooLarge           = errors.New(f("program too large"))
)

// ErrLiteral is a line that does not start with a binary literal.
type ErrLiteral struct {
	LineNo int
	Text   string
}

func (err ErrLiteral) Error() string {
	return f("line %v '%v' is not an 8-bit binary literal", err.LineNo, err.Text)
}

func (err ErrLiteral) Is(target error) bool {
	return target == ErrInvalidInstructionLiteral
}

// Process exit codes, one per failure kind.
const (
	EXIT_OK        = 0
	EXIT_FAULT     = 1
	EXIT_NOT_FOUND = 2
	EXIT_LITERAL   = 3
	EXIT_EMPTY     = 4
	EXIT_TOO_LARGE = 5
)

// ExitCode maps an error to the process exit status that reports it.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, ErrProgramFileNotFound):
		return EXIT_NOT_FOUND
	case errors.Is(err, ErrInvalidInstructionLiteral):
		return EXIT_LITERAL
	case errors.Is(err, ErrEmptyProgram):
		return EXIT_EMPTY
	case errors.Is(err, ErrProgramTooLarge):
		return EXIT_TOO_LARGE
	}
	return EXIT_FAULT
}
