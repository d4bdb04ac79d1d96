package utils

import "fmt"

// Arena 文件块的存储区，所有块连续地放在同一个 buf 中
type Arena struct {
	blockSize int
	n         int
	buf       []byte
}

func NewArena(numBlocks, blockSize int) *Arena {
	return &Arena{
		blockSize: blockSize,
		n:         numBlocks,
		buf:       make([]byte, numBlocks*blockSize),
	}
}

func (a *Arena) BlockSize() int {
	return a.blockSize
}

// NumBlocks 返回块的数量（包含保留块）
func (a *Arena) NumBlocks() int {
	return a.n
}

// Size 返回存储区总字节数
func (a *Arena) Size() int {
	return len(a.buf)
}

// Block 返回第 b 块在 buf 上的切片，写入切片即写入存储区
func (a *Arena) Block(b uint32) []byte {
	CondPanic(int(b) >= a.n, fmt.Errorf("block %d out of arena (%d blocks)", b, a.n))
	off := int(b) * a.blockSize
	return a.buf[off : off+a.blockSize]
}

// Reset 将第 b 块清零，块被重新分配时调用
func (a *Arena) Reset(b uint32) {
	blk := a.Block(b)
	for i := range blk {
		blk[i] = 0
	}
}
