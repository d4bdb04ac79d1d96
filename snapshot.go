package fatfs

import (
	"fatfs/dir"
	"fatfs/fat"
	"fatfs/utils"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// FileInfo 一个目录项的只读视图
type FileInfo struct {
	FD       dir.FD
	Name     string
	Status   dir.Status
	Size     uint32
	Offset   uint32
	Readable bool
	Writable bool
	Chain    []fat.BlockID
	ChainErr error  // 解析块链失败的原因
	Digest   uint64 // 文件内容的 xxhash
}

// Snapshot is a read-only copy of the table and directory, taken under the
// lock, for listings and reports.
type Snapshot struct {
	BlockSize  int
	NumBlocks  int
	FreeBlocks int
	Links      []fat.Link
	Files      []FileInfo // 每个可用的描述符一项，包括未使用的
}

func (fs *FS) Snapshot() *Snapshot {
	fs.Lock()
	defer fs.Unlock()

	s := &Snapshot{
		BlockSize:  fs.arena.BlockSize(),
		NumBlocks:  fs.arena.NumBlocks(),
		FreeBlocks: fs.fat.FreeCount(),
		Links:      fs.fat.Used(),
		Files:      make([]FileInfo, 0, fs.dir.Len()-int(fs.dir.First())),
	}
	fs.dir.Range(func(fd dir.FD, e *dir.Entry) bool {
		fi := FileInfo{FD: fd, Status: e.Status}
		if e.Active() {
			fi.Name = e.Name
			fi.Size = e.Size
			fi.Offset = e.Offset
			fi.Readable = e.Readable()
			fi.Writable = e.Writable()
			fi.Chain, fi.ChainErr = fs.fat.Chain(e.FirstBlock)
			if fi.ChainErr == nil {
				fi.Digest = fs.digest(fi.Chain, e.Size)
			}
		}
		s.Files = append(s.Files, fi)
		return true
	})
	return s
}

func (fs *FS) digest(chain []fat.BlockID, size uint32) uint64 {
	h := xxhash.New()
	left := int(size)
	for _, b := range chain {
		blk := fs.arena.Block(uint32(b))
		if left < len(blk) {
			blk = blk[:left]
		}
		h.Write(blk)
		left -= len(blk)
	}
	return h.Sum64()
}

// Check verifies that every used block belongs to exactly one file, that
// each chain is as long as its file needs and that no block is leaked.
func (fs *FS) Check() error {
	fs.Lock()
	defer fs.Unlock()

	bs := uint32(fs.arena.BlockSize())
	owner := make(map[fat.BlockID]dir.FD)
	reachable := 0
	var err error
	fs.dir.Range(func(fd dir.FD, e *dir.Entry) bool {
		if !e.Active() {
			return true
		}
		if (e.FirstBlock == fat.None) != (e.Size == 0) {
			err = errors.Wrapf(utils.ErrCorruptChain, "%q: first block %d with size %d", e.Name, e.FirstBlock, e.Size)
			return false
		}
		if e.Offset > e.Size {
			err = errors.Wrapf(utils.ErrCorruptChain, "%q: cursor %d past size %d", e.Name, e.Offset, e.Size)
			return false
		}
		chain, cerr := fs.fat.Chain(e.FirstBlock)
		if cerr != nil {
			err = errors.WithMessagef(cerr, "%q", e.Name)
			return false
		}
		if want := int((e.Size + bs - 1) / bs); len(chain) != want {
			err = errors.Wrapf(utils.ErrCorruptChain, "%q: %d blocks for %d bytes", e.Name, len(chain), e.Size)
			return false
		}
		for _, b := range chain {
			if other, dup := owner[b]; dup {
				err = errors.Wrapf(utils.ErrCorruptChain, "block %d shared by fd %d and fd %d", b, other, fd)
				return false
			}
			owner[b] = fd
		}
		reachable += len(chain)
		return true
	})
	if err != nil {
		return err
	}
	if used := fs.fat.UsedCount(); used != reachable {
		return errors.Wrapf(utils.ErrCorruptChain, "%d blocks in use, %d reachable from files", used, reachable)
	}
	return nil
}
