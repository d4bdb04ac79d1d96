package dir

import (
	"fatfs/fat"
	"fatfs/utils"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// FD is a file descriptor: the index of a directory slot.
type FD uint32

type Status uint8

const (
	Unused Status = iota
	Closed
	Open
)

func (s Status) String() string {
	switch s {
	case Unused:
		return "unused"
	case Closed:
		return "closed"
	case Open:
		return "open"
	}
	return "invalid"
}

// Entry 目录项，描述一个文件
type Entry struct {
	Name       string
	Status     Status
	FirstBlock fat.BlockID // 没有数据块时为 fat.None
	Size       uint32
	Offset     uint32 // 读写游标，相对于文件开头
	Access     byte
}

// Active reports whether the slot holds a file.
func (e *Entry) Active() bool {
	return e.Status != Unused
}

// Directory 固定大小的目录表
type Directory struct {
	entries []Entry
	first   FD
	maxName int
	// 文件名的 xxhash -> 描述符，冲突时比较文件名
	index map[uint64][]FD
}

func New(numEntries, firstFD, maxName int) *Directory {
	return &Directory{
		entries: make([]Entry, numEntries),
		first:   FD(firstFD),
		maxName: maxName,
		index:   make(map[uint64][]FD),
	}
}

// First returns the lowest usable descriptor.
func (d *Directory) First() FD {
	return d.first
}

// Len returns the number of slots, reserved ones included.
func (d *Directory) Len() int {
	return len(d.entries)
}

func (d *Directory) InRange(fd FD) bool {
	return fd >= d.first && int(fd) < len(d.entries)
}

// ValidName reports whether name is acceptable for this directory.
func (d *Directory) ValidName(name string) bool {
	return utils.IsValidName(name, d.maxName)
}

// Entry returns the slot for fd.
func (d *Directory) Entry(fd FD) (*Entry, error) {
	if !d.InRange(fd) {
		return nil, errors.Wrapf(utils.ErrDescriptorOutOfRange, "fd %d", fd)
	}
	return &d.entries[fd], nil
}

// Lookup finds the active slot holding name.
func (d *Directory) Lookup(name string) (FD, bool) {
	if !d.ValidName(name) {
		return 0, false
	}
	for _, fd := range d.index[xxhash.Sum64String(name)] {
		if d.entries[fd].Name == name {
			return fd, true
		}
	}
	return 0, false
}

// AllocSlot returns the first unused slot.
func (d *Directory) AllocSlot() (FD, bool) {
	for fd := d.first; int(fd) < len(d.entries); fd++ {
		if d.entries[fd].Status == Unused {
			return fd, true
		}
	}
	return 0, false
}

// Bind gives the unused slot fd a fresh entry named name, open, empty and
// readable and writable.
func (d *Directory) Bind(fd FD, name string) *Entry {
	e := &d.entries[fd]
	utils.CondPanic(e.Active(), errors.Errorf("bind: slot %d already in use by %q", fd, e.Name))
	*e = Entry{
		Name:       name,
		Status:     Open,
		FirstBlock: fat.None,
		Access:     utils.DefaultAccess,
	}
	h := xxhash.Sum64String(name)
	d.index[h] = append(d.index[h], fd)
	return e
}

// Release returns fd to the unused state and drops it from the name index.
func (d *Directory) Release(fd FD) {
	e := &d.entries[fd]
	h := xxhash.Sum64String(e.Name)
	fds := d.index[h]
	for i, x := range fds {
		if x == fd {
			fds = append(fds[:i], fds[i+1:]...)
			break
		}
	}
	if len(fds) == 0 {
		delete(d.index, h)
	} else {
		d.index[h] = fds
	}
	*e = Entry{}
}

// Range calls fn for every usable slot in descriptor order until fn
// returns false.
func (d *Directory) Range(fn func(fd FD, e *Entry) bool) {
	for fd := d.first; int(fd) < len(d.entries); fd++ {
		if !fn(fd, &d.entries[fd]) {
			return
		}
	}
}
