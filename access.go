package fatfs

import (
	"fatfs/dir"

	"github.com/pkg/errors"
)

// ToggleRead flips the read permission of the file called name.
func (fs *FS) ToggleRead(name string) error {
	return fs.toggle(name, "toggle read", (*dir.Entry).ToggleRead)
}

// ToggleWrite flips the write permission of the file called name.
func (fs *FS) ToggleWrite(name string) error {
	return fs.toggle(name, "toggle write", (*dir.Entry).ToggleWrite)
}

// Readable reports whether name exists and may be read.
func (fs *FS) Readable(name string) bool {
	return fs.check(name, (*dir.Entry).Readable)
}

// Writable reports whether name exists and may be written.
func (fs *FS) Writable(name string) bool {
	return fs.check(name, (*dir.Entry).Writable)
}

func (fs *FS) toggle(name, op string, flip func(*dir.Entry)) error {
	fs.Lock()
	defer fs.Unlock()

	fd, err := fs.lookup(name)
	if err != nil {
		return fs.fail(errors.WithMessage(err, op))
	}
	e, _ := fs.dir.Entry(fd)
	flip(e)
	return nil
}

func (fs *FS) check(name string, bit func(*dir.Entry) bool) bool {
	fs.Lock()
	defer fs.Unlock()

	fd, ok := fs.dir.Lookup(name)
	if !ok {
		return false
	}
	e, _ := fs.dir.Entry(fd)
	return bit(e)
}
