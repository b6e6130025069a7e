// Package intcode implements the Intcode virtual machine and its assembler.
//
// A Machine owns a word addressed memory that grows with zero fill, an
// instruction pointer, and a relative base register. Execution is
// cooperative: Run advances the machine until it halts, needs one input
// word, or has produced one output word, and reports which of those
// happened as an Interrupt. The caller supplies input with Input and
// resumes with Run again.
//
// The word width is a type parameter. Most programs fit in an int32, some
// need the range of an int64.
//
// The assembler accepts a small mnemonic language for the instruction set,
// supporting labels, equates, macros, and compile-time expression
// evaluation.
package intcode
