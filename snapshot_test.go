package fatfs

import (
	"testing"

	"fatfs/dir"
	"fatfs/fat"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	opt := smallOptions()
	fs := openFS(t, opt)

	a, err := fs.Create("a")
	require.NoError(t, err)
	b, err := fs.Create("b")
	require.NoError(t, err)
	_, err = fs.Write(a, pattern(16))
	require.NoError(t, err)
	_, err = fs.Write(b, []byte("hi"))
	require.NoError(t, err)
	_, err = fs.Write(a, pattern(9))
	require.NoError(t, err)
	require.NoError(t, fs.Close(b))
	require.NoError(t, fs.ToggleWrite("b"))

	// a 写满一个块后 b 拿到 3 号块，a 再追加时接上 4 号块
	s := fs.Snapshot()
	assert.Equal(t, opt.BlockSize, s.BlockSize)
	assert.Equal(t, opt.NumBlocks-2-3, s.FreeBlocks)
	assert.Equal(t, []fat.Link{
		{Block: 2, Next: 4},
		{Block: 3, Last: true},
		{Block: 4, Last: true},
	}, s.Links)

	require.Len(t, s.Files, opt.NumDirEntries-opt.FirstValidFD)
	fa := s.Files[0]
	assert.Equal(t, a, fa.FD)
	assert.Equal(t, "a", fa.Name)
	assert.Equal(t, dir.Open, fa.Status)
	assert.Equal(t, uint32(25), fa.Size)
	assert.Equal(t, []fat.BlockID{2, 4}, fa.Chain)
	want := append(pattern(16), pattern(9)...)
	assert.Equal(t, xxhash.Sum64(want), fa.Digest)

	fb := s.Files[1]
	assert.Equal(t, dir.Closed, fb.Status)
	assert.True(t, fb.Readable)
	assert.False(t, fb.Writable)
	assert.Equal(t, xxhash.Sum64String("hi"), fb.Digest)

	assert.Equal(t, dir.Unused, s.Files[2].Status)
	assert.Empty(t, s.Files[2].Chain)
}

func TestInfo(t *testing.T) {
	fs := openFS(t, nil)
	a, err := fs.Create("a")
	require.NoError(t, err)
	_, err = fs.Create("b")
	require.NoError(t, err)
	_, err = fs.Write(a, pattern(300))
	require.NoError(t, err)
	require.NoError(t, fs.Close(a))

	info := fs.Info()
	assert.Equal(t, 2, info.Files)
	assert.Equal(t, 1, info.OpenFiles)
	assert.Equal(t, 3, info.UsedBlocks)
	assert.Equal(t, 254-3, info.FreeBlocks)
	assert.Equal(t, uint64(300), info.BytesStored)
	assert.Equal(t, uint64(300), info.BytesWritten)

	require.NoError(t, fs.Delete(a))
	info = fs.Info()
	assert.Equal(t, uint64(3), info.BlocksFreed)
	assert.Equal(t, 254, info.FreeBlocks)
}
