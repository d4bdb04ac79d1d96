package fatfs

import (
	"sync"

	"fatfs/dir"
	"fatfs/fat"
	"fatfs/utils"

	"github.com/pkg/errors"
)

type FileAPI interface {
	Exists(name string) bool
	Create(name string) (dir.FD, error)
	Open(name string) (dir.FD, error)
	Close(fd dir.FD) error
	Delete(fd dir.FD) error
	Size(fd dir.FD) (uint32, error)
	Seek(fd dir.FD, offset uint32) error
	Read(fd dir.FD, buf []byte) (int, error)
	Write(fd dir.FD, data []byte) (int, error)
	Truncate(fd dir.FD, size uint32) error
	Info() *Stats
}

// FS 持有目录、分配表和块存储区，所有操作都在同一把锁下完成
type FS struct {
	sync.Mutex
	opt   *Options
	arena *utils.Arena
	fat   *fat.Table
	dir   *dir.Directory
	stats *Stats
}

// Open 按 opt 创建一个空的文件系统，opt 为 nil 时使用默认配置
func Open(opt *Options) (*FS, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	o := *opt
	return &FS{
		opt:   &o,
		arena: utils.NewArena(o.NumBlocks, o.BlockSize),
		fat:   fat.NewTable(o.NumBlocks),
		dir:   dir.New(o.NumDirEntries, o.FirstValidFD, o.FilenameLength),
		stats: newStats(),
	}, nil
}

// Options returns a copy of the configuration fs was opened with.
func (fs *FS) Options() Options {
	return *fs.opt
}

func (fs *FS) fail(err error) error {
	if fs.opt.Verbose {
		utils.Err(fs.opt.ErrOutput, err)
	}
	return err
}

// openEntry 返回已打开文件的目录项
func (fs *FS) openEntry(fd dir.FD) (*dir.Entry, error) {
	e, err := fs.dir.Entry(fd)
	if err != nil {
		return nil, err
	}
	if e.Status != dir.Open {
		return nil, errors.Wrapf(utils.ErrFileNotOpen, "fd %d", fd)
	}
	return e, nil
}

// Exists reports whether name belongs to an active file.
func (fs *FS) Exists(name string) bool {
	fs.Lock()
	defer fs.Unlock()
	_, ok := fs.dir.Lookup(name)
	return ok
}

// Lookup returns the descriptor of the file called name.
func (fs *FS) Lookup(name string) (dir.FD, error) {
	fs.Lock()
	defer fs.Unlock()
	return fs.lookup(name)
}

func (fs *FS) lookup(name string) (dir.FD, error) {
	if !fs.dir.ValidName(name) {
		return 0, errors.Wrapf(utils.ErrInvalidName, "%q", name)
	}
	fd, ok := fs.dir.Lookup(name)
	if !ok {
		return 0, errors.Wrapf(utils.ErrNameNotFound, "%q", name)
	}
	return fd, nil
}

// Create makes a new, empty, open file called name.
func (fs *FS) Create(name string) (dir.FD, error) {
	fs.Lock()
	defer fs.Unlock()

	if !fs.dir.ValidName(name) {
		return 0, fs.fail(errors.Wrapf(utils.ErrInvalidName, "create %q", name))
	}
	if _, ok := fs.dir.Lookup(name); ok {
		return 0, fs.fail(errors.Wrapf(utils.ErrNameAlreadyExists, "create %q", name))
	}
	fd, ok := fs.dir.AllocSlot()
	if !ok {
		return 0, fs.fail(errors.Wrapf(utils.ErrDirectoryFull, "create %q", name))
	}
	fs.dir.Bind(fd, name)
	return fd, nil
}

// Open reopens the closed file called name with its cursor at 0.
func (fs *FS) Open(name string) (dir.FD, error) {
	fs.Lock()
	defer fs.Unlock()

	fd, err := fs.lookup(name)
	if err != nil {
		return 0, fs.fail(errors.WithMessage(err, "open"))
	}
	e, _ := fs.dir.Entry(fd)
	if e.Status == dir.Open {
		return 0, fs.fail(errors.Wrapf(utils.ErrFileAlreadyOpen, "open %q", name))
	}
	e.Status = dir.Open
	e.Offset = 0
	return fd, nil
}

func (fs *FS) Close(fd dir.FD) error {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return fs.fail(errors.WithMessage(err, "close"))
	}
	e.Status = dir.Closed
	e.Offset = 0
	return nil
}

// Size returns the number of bytes stored in the file.
func (fs *FS) Size(fd dir.FD) (uint32, error) {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.dir.Entry(fd)
	if err != nil {
		return 0, fs.fail(errors.WithMessage(err, "size"))
	}
	if !e.Active() {
		return 0, fs.fail(errors.Wrapf(utils.ErrNameNotFound, "size: fd %d is unused", fd))
	}
	return e.Size, nil
}

// Tell returns the cursor of an open file.
func (fs *FS) Tell(fd dir.FD) (uint32, error) {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return 0, fs.fail(errors.WithMessage(err, "tell"))
	}
	return e.Offset, nil
}

// Seek moves the cursor to offset, which must lie inside the file.
func (fs *FS) Seek(fd dir.FD, offset uint32) error {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return fs.fail(errors.WithMessage(err, "seek"))
	}
	if offset >= e.Size {
		return fs.fail(errors.Wrapf(utils.ErrSeekOutOfBounds, "seek fd %d to %d, size %d", fd, offset, e.Size))
	}
	e.Offset = offset
	return nil
}

// Delete removes a closed file and frees its blocks.
func (fs *FS) Delete(fd dir.FD) error {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.dir.Entry(fd)
	if err != nil {
		return fs.fail(errors.WithMessage(err, "delete"))
	}
	switch e.Status {
	case dir.Unused:
		return fs.fail(errors.Wrapf(utils.ErrNameNotFound, "delete: fd %d is unused", fd))
	case dir.Open:
		return fs.fail(errors.Wrapf(utils.ErrFileMustBeClosed, "delete %q", e.Name))
	}
	n, err := fs.fat.FreeChain(e.FirstBlock)
	fs.stats.BlocksFreed += uint64(n)
	if err != nil {
		return fs.fail(errors.WithMessagef(err, "delete %q", e.Name))
	}
	fs.dir.Release(fd)
	return nil
}
