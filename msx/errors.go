// errors.go - error taxonomy for the msx core.

package msx

import (
	"errors"
	"fmt"
)

// ErrROMOverflow is returned when a ROM image is larger than the
// destination slot; load errors never partially populate a slot.
var ErrROMOverflow = errors.New("msx: rom image larger than destination slot")

// ErrSlotIndex is returned when a slot index outside [0,3] is requested.
var ErrSlotIndex = errors.New("msx: slot index out of range")

// UnknownOpcodeError is fatal: the CPU encountered a byte sequence it has
// no decode entry for. Prefix holds the prefix bytes consumed before the
// unimplemented opcode, in the order they were fetched (e.g. []byte{0xED}).
type UnknownOpcodeError struct {
	PC     uint16
	Prefix []byte
	Opcode byte
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("msx: unknown opcode %02X (prefix % 02X) at PC=%04X", e.Opcode, e.Prefix, e.PC)
}
