package dir

import "fatfs/utils"

func (e *Entry) Readable() bool {
	return e.Access&utils.BitRead != 0
}

func (e *Entry) Writable() bool {
	return e.Access&utils.BitWrite != 0
}

// ToggleRead flips the read permission bit.
func (e *Entry) ToggleRead() {
	e.Access ^= utils.BitRead
}

// ToggleWrite flips the write permission bit.
func (e *Entry) ToggleWrite() {
	e.Access ^= utils.BitWrite
}
