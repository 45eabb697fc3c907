// Package tag accumulates reader keystrokes into tag identifiers.
package tag

import "strings"

// Assembler collects the digits of a tag identifier until the reader sends
// its terminator. It is owned by a single goroutine.
type Assembler struct {
	buf strings.Builder
}

// Push appends r when it is a decimal digit. Anything else is ignored and
// reported as false.
func (a *Assembler) Push(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	a.buf.WriteRune(r)
	return true
}

// TakeAndReset returns the pending identifier and empties the buffer.
func (a *Assembler) TakeAndReset() string {
	id := a.buf.String()
	a.buf.Reset()
	return id
}

// Len reports the number of pending digits.
func (a *Assembler) Len() int {
	return a.buf.Len()
}
