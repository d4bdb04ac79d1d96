package fatfs

import (
	"io"

	"fatfs/utils"

	"github.com/pkg/errors"
)

// Options fatfs 总的配置
type Options struct {
	BlockSize      int  // 每个块的字节数
	NumBlocks      int  // 块的总数，包括保留的 0 和 1 号块
	NumDirEntries  int  // 目录项总数，包括保留的描述符
	FilenameLength int  // 文件名最大长度
	FirstValidFD   int  // 第一个可用的文件描述符
	Verbose        bool // 操作失败时打印错误
	// ErrOutput Verbose 时错误写到这里，为空时写到标准输出
	ErrOutput io.Writer
}

// NewDefaultOptions 返回默认的 options
func NewDefaultOptions() *Options {
	return &Options{
		BlockSize:      utils.DefaultBlockSize,
		NumBlocks:      utils.DefaultNumBlocks,
		NumDirEntries:  utils.DefaultNumDirEntries,
		FilenameLength: utils.DefaultFilenameLength,
		FirstValidFD:   utils.DefaultFirstValidFD,
	}
}

// MaxFileSize 所有数据块都属于同一个文件时的大小
func (opt *Options) MaxFileSize() uint32 {
	return uint32((opt.NumBlocks - utils.FirstValidBlock) * opt.BlockSize)
}

func (opt *Options) validate() error {
	switch {
	case opt.BlockSize <= 0:
		return errors.Wrapf(utils.ErrBadOptions, "block size %d", opt.BlockSize)
	case opt.NumBlocks <= utils.FirstValidBlock:
		return errors.Wrapf(utils.ErrBadOptions, "%d blocks leaves no data block", opt.NumBlocks)
	case opt.FirstValidFD < 1:
		return errors.Wrapf(utils.ErrBadOptions, "first fd %d, descriptor 0 is reserved", opt.FirstValidFD)
	case opt.NumDirEntries <= opt.FirstValidFD:
		return errors.Wrapf(utils.ErrBadOptions, "%d directory entries leaves no descriptor", opt.NumDirEntries)
	case opt.FilenameLength <= 0:
		return errors.Wrapf(utils.ErrBadOptions, "filename length %d", opt.FilenameLength)
	case uint64(opt.NumBlocks)*uint64(opt.BlockSize) > 1<<31:
		return errors.Wrapf(utils.ErrBadOptions, "arena of %d x %d bytes is too large", opt.NumBlocks, opt.BlockSize)
	}
	return nil
}
