// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for LS8 mnemonic source.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// valueOf returns the byte value of a numeric word.
// Negative values down to -128 are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrValueRange
		return
	}

	value = byte(v64)
	return
}

// registerOf returns the register index of a word such as 'R3'.
func registerOf(word string) (index byte, err error) {
	if len(word) != 2 || (word[0] != 'R' && word[0] != 'r') {
		err = ErrRegisterInvalid
		return
	}
	if word[1] < '0' || word[1] >= '0'+REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	index = word[1] - '0'
	return
}

// isLabel is true for words that can name a label.
func isLabel(word string) bool {
	if len(word) == 0 {
		return false
	}
	for n, ch := range word {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case n > 0 && ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return true
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces character literals with numbers and strips comments.
func (asm *Assembler) expand(text string) (line string) {
	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(text, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	line, _, _ = strings.Cut(line, ";")
	line, _, _ = strings.Cut(line, "#")

	line = strings.TrimSpace(line)
	return
}

// evaluate replaces $(...) expressions with their values.
func (asm *Assembler) evaluate(text string) (line string, err error) {
	line = reExpression.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})

	return
}

// currentAddr gets the address of the next assembled byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Addr + len(last.Bytes)
}

// parseLine parses a single line, defining labels and equates, and
// returns the remaining words.
func (asm *Assembler) parseLine(text string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line := asm.expand(text)

	for {
		label, rest, ok := strings.Cut(line, ":")
		if !ok {
			break
		}
		label = strings.TrimSpace(label)
		if !isLabel(label) {
			break
		}
		_, ok = asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentAddr()
		line = strings.TrimSpace(rest)
	}

	line, err = asm.evaluate(line)
	if err != nil {
		return
	}

	// DS keeps the rest of the line verbatim.
	if len(line) >= 2 && strings.EqualFold(line[:2], "DS") && (len(line) == 2 || line[2] == ' ') {
		words = []string{"DS", strings.TrimSpace(line[2:])}
		return
	}

	words = slices.DeleteFunc(strings.FieldsFunc(line, func(ch rune) bool {
		return ch == ' ' || ch == '\t' || ch == ','
	}), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		equate, ok := asm.Equate[word]
		if ok {
			words[n+1] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, line)
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}

		if asm.currentAddr() > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	line = ""
	lineno = 0

	// Final linking of labels.
	for n := range asm.Lines {
		ln := &asm.Lines[n]
		if len(ln.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[ln.LinkLabel]
		if !ok {
			lineno = ln.LineNo
			err = ErrLabelMissing(ln.LinkLabel)
			return
		}
		if addr >= MEMORY_SIZE {
			lineno = ln.LineNo
			err = ErrValueRange
			return
		}
		ln.Bytes[ln.LinkIndex] = byte(addr)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords encodes the words of a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string
	var link int

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		line := Line{LineNo: lineno, Addr: asm.currentAddr(), Words: words, Bytes: bytes, LinkLabel: label, LinkIndex: link}
		asm.Lines = append(asm.Lines, line)
	}()

	switch strings.ToUpper(words[0]) {
	case "DS":
		if len(words) < 2 || len(words[1]) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		bytes = []byte(words[1])
		return
	case "DB":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value byte
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			bytes = append(bytes, value)
		}
		return
	}

	op, ok := LookupOpcode(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Operands() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Operands() {
		err = ErrOpcodeExtraArgs
		return
	}

	bytes = append(bytes, byte(op))
	for n, arg := range args {
		var value byte
		if op == OP_LDI && n == 1 {
			value, err = asm.valueOf(arg)
			if err != nil && isLabel(arg) {
				// Resolved at link time.
				label = arg
				link = len(bytes)
				err = nil
			}
		} else {
			value, err = registerOf(arg)
		}
		if err != nil {
			return
		}
		bytes = append(bytes, value)
	}

	return
}
