package intcode

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrImmediateWrite  = errors.New(f("immediate mode write target"))
	ErrInputMissing    = errors.New(f("resumed without input"))
	ErrInputUnexpected = errors.New(f("input not awaited"))

	// Parameter decode errors
	ErrOpcodeArg1 = errors.New(f("arg1"))
	ErrOpcodeArg2 = errors.New(f("arg2"))
	ErrOpcodeArg3 = errors.New(f("arg3"))

	// Loader errors
	ErrProgramEmpty = errors.New(f("program empty"))
	ErrWordRange    = errors.New(f("word out of range"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// errOpcodeArg maps a parameter index to its decode error.
var errOpcodeArg = [3]error{ErrOpcodeArg1, ErrOpcodeArg2, ErrOpcodeArg3}

// ErrOpcode is an unrecognized opcode.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", int64(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrMode is an unrecognized parameter mode.
type ErrMode int

func (em ErrMode) Error() string {
	return f("bad parameter mode %v", int(em))
}

func (em ErrMode) Is(err error) (ok bool) {
	_, ok = err.(ErrMode)
	return
}

// ErrAddress is a negative memory address.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("invalid address %v", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrFault locates an execution fault.
type ErrFault struct {
	Ip   int
	Code int64
	Err  error
}

func (err *ErrFault) Error() string {
	return f("ip %v code %v: %v", err.Ip, err.Code, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrParse is an unparseable token in program text.
type ErrParse struct {
	Index int
	Token string
	Err   error
}

func (err *ErrParse) Error() string {
	return f("token %v '%v': %v", err.Index, err.Token, err.Err)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
