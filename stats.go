package fatfs

import "fatfs/dir"

// Stats 文件系统的使用情况
type Stats struct {
	Files       int // 活跃的文件数
	OpenFiles   int
	UsedBlocks  int
	FreeBlocks  int
	BytesStored uint64

	// 累计计数
	BytesRead    uint64
	BytesWritten uint64
	BlocksFreed  uint64
}

func newStats() *Stats {
	return &Stats{}
}

// Info 返回当前统计信息的副本
func (fs *FS) Info() *Stats {
	fs.Lock()
	defer fs.Unlock()

	s := *fs.stats
	s.UsedBlocks = fs.fat.UsedCount()
	s.FreeBlocks = fs.fat.FreeCount()
	fs.dir.Range(func(_ dir.FD, e *dir.Entry) bool {
		if !e.Active() {
			return true
		}
		s.Files++
		if e.Status == dir.Open {
			s.OpenFiles++
		}
		s.BytesStored += uint64(e.Size)
		return true
	})
	return &s
}
