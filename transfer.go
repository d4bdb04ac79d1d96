package fatfs

import (
	"fatfs/dir"
	"fatfs/fat"
	"fatfs/utils"

	"github.com/pkg/errors"
)

// Read copies bytes from the cursor into buf and advances the cursor. It
// stops early at end of file, so n < len(buf) is not an error.
func (fs *FS) Read(fd dir.FD, buf []byte) (int, error) {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return 0, fs.fail(errors.WithMessage(err, "read"))
	}
	if !e.Readable() {
		return 0, fs.fail(errors.Wrapf(utils.ErrAccessDenied, "read %q", e.Name))
	}

	want := len(buf)
	if left := int(e.Size - e.Offset); want > left {
		want = left
	}
	if want == 0 {
		return 0, nil
	}

	bs := uint32(fs.arena.BlockSize())
	b, err := fs.skip(e.FirstBlock, e.Offset/bs)
	if err != nil {
		return 0, fs.fail(errors.WithMessagef(err, "read %q", e.Name))
	}

	pos := e.Offset
	n := 0
	for {
		c := copy(buf[n:want], fs.arena.Block(uint32(b))[pos%bs:])
		n += c
		pos += uint32(c)
		if n == want {
			break
		}
		nb, ok, err := fs.fat.Successor(b)
		if err == nil && !ok {
			err = errors.Wrapf(utils.ErrCorruptChain, "chain of %q ends at byte %d of %d", e.Name, pos, e.Size)
		}
		if err != nil {
			fs.advance(e, n, 0)
			return n, fs.fail(err)
		}
		b = nb
	}
	fs.advance(e, n, 0)
	return n, nil
}

// Write stores data at the cursor, allocating blocks as the file grows. It
// stops early only when the table runs out of free blocks; a write that
// could not place any byte returns utils.ErrStorageExhausted.
func (fs *FS) Write(fd dir.FD, data []byte) (int, error) {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return 0, fs.fail(errors.WithMessage(err, "write"))
	}
	if !e.Writable() {
		return 0, fs.fail(errors.Wrapf(utils.ErrAccessDenied, "write %q", e.Name))
	}
	if len(data) == 0 {
		return 0, nil
	}

	bs := uint32(fs.arena.BlockSize())
	b, err := fs.reach(e, e.Offset/bs)
	if err != nil {
		return 0, fs.fail(errors.WithMessagef(err, "write %q", e.Name))
	}

	pos := e.Offset
	n := 0
	for {
		c := copy(fs.arena.Block(uint32(b))[pos%bs:], data[n:])
		n += c
		pos += uint32(c)
		if n == len(data) {
			break
		}
		nb, err := fs.grow(b)
		if errors.Is(err, utils.ErrStorageExhausted) {
			// 空间不足，返回已写入的部分
			break
		}
		if err != nil {
			fs.advance(e, 0, n)
			return n, fs.fail(errors.WithMessagef(err, "write %q", e.Name))
		}
		b = nb
	}
	fs.advance(e, 0, n)
	return n, nil
}

// Truncate shrinks the file to size bytes and frees the blocks past the new
// end. The cursor is pulled back if it lay beyond it.
func (fs *FS) Truncate(fd dir.FD, size uint32) error {
	fs.Lock()
	defer fs.Unlock()

	e, err := fs.openEntry(fd)
	if err != nil {
		return fs.fail(errors.WithMessage(err, "truncate"))
	}
	if !e.Writable() {
		return fs.fail(errors.Wrapf(utils.ErrAccessDenied, "truncate %q", e.Name))
	}
	if size > e.Size {
		return fs.fail(errors.Wrapf(utils.ErrSeekOutOfBounds, "truncate %q to %d, size %d", e.Name, size, e.Size))
	}
	if size == e.Size {
		return nil
	}

	var freed int
	if size == 0 {
		freed, err = fs.fat.FreeChain(e.FirstBlock)
		if err == nil {
			e.FirstBlock = fat.None
		}
	} else {
		var b fat.BlockID
		b, err = fs.skip(e.FirstBlock, (size-1)/uint32(fs.arena.BlockSize()))
		if err == nil {
			freed, err = fs.fat.TruncateAfter(b)
		}
	}
	fs.stats.BlocksFreed += uint64(freed)
	if err != nil {
		return fs.fail(errors.WithMessagef(err, "truncate %q", e.Name))
	}
	e.Size = size
	if e.Offset > size {
		e.Offset = size
	}
	fs.assertBlocks(e)
	return nil
}

// skip follows k links from start. The chain must be long enough.
func (fs *FS) skip(start fat.BlockID, k uint32) (fat.BlockID, error) {
	if start == fat.None {
		return fat.None, errors.Wrap(utils.ErrCorruptChain, "file has data but no blocks")
	}
	b := start
	for i := uint32(0); i < k; i++ {
		nb, ok, err := fs.fat.Successor(b)
		if err != nil {
			return fat.None, err
		}
		if !ok {
			return fat.None, errors.Wrapf(utils.ErrCorruptChain, "chain %d has only %d blocks", start, i+1)
		}
		b = nb
	}
	return b, nil
}

// reach returns the k-th block of the file, giving the file its first block
// and extending the chain when the walk runs off its end.
func (fs *FS) reach(e *dir.Entry, k uint32) (fat.BlockID, error) {
	if e.FirstBlock == fat.None {
		b, err := fs.alloc()
		if err != nil {
			return fat.None, err
		}
		e.FirstBlock = b
	}
	b := e.FirstBlock
	for i := uint32(0); i < k; i++ {
		nb, err := fs.grow(b)
		if err != nil {
			return fat.None, err
		}
		b = nb
	}
	return b, nil
}

// grow returns the successor of b, allocating and linking a new block when b
// ends its chain.
func (fs *FS) grow(b fat.BlockID) (fat.BlockID, error) {
	nb, ok, err := fs.fat.Successor(b)
	if err != nil || ok {
		return nb, err
	}
	nb, err = fs.alloc()
	if err != nil {
		return fat.None, err
	}
	if err := fs.fat.Link(b, nb); err != nil {
		return fat.None, err
	}
	return nb, nil
}

func (fs *FS) alloc() (fat.BlockID, error) {
	b, err := fs.fat.Allocate()
	if err != nil {
		return fat.None, err
	}
	fs.arena.Reset(uint32(b))
	return b, nil
}

// advance moves the cursor past the bytes just transferred and grows the
// file when a write went beyond its end.
func (fs *FS) advance(e *dir.Entry, read, written int) {
	fs.stats.BytesRead += uint64(read)
	fs.stats.BytesWritten += uint64(written)
	e.Offset += uint32(read + written)
	if e.Offset > e.Size {
		e.Size = e.Offset
	}
	fs.assertBlocks(e)
}

// assertBlocks 空文件不占块，非空文件一定有首块
func (fs *FS) assertBlocks(e *dir.Entry) {
	utils.AssertTruef((e.FirstBlock == fat.None) == (e.Size == 0),
		"%q: first block %d with size %d", e.Name, e.FirstBlock, e.Size)
}
