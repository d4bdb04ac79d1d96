package utils

const (
	// DefaultBlockSize 每个文件块的字节数
	DefaultBlockSize = 128
	// DefaultNumBlocks 文件块总数，其中 0 和 1 保留
	DefaultNumBlocks = 256
	// DefaultNumDirEntries 目录项总数
	DefaultNumDirEntries = 64
	// DefaultFilenameLength 文件名最大长度
	DefaultFilenameLength = 15
	// DefaultFirstValidFD 第一个可用的文件描述符
	DefaultFirstValidFD = 2
)

// block
const (
	// FirstValidBlock is the lowest block index that may hold file data.
	// Indices below it are reserved so that 0 can mean "no block".
	FirstValidBlock = 2
)

// access
const (
	BitRead  byte = 1 << 0 // Set if the file may be read.
	BitWrite byte = 1 << 1 // Set if the file may be written.

	DefaultAccess = BitRead | BitWrite
)
