package report

import (
	"bytes"
	"image/png"
	"testing"

	"fatfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFS(t *testing.T) *fatfs.FS {
	t.Helper()
	opt := fatfs.NewDefaultOptions()
	opt.BlockSize = 4
	opt.NumBlocks = 20
	opt.NumDirEntries = 5
	fs, err := fatfs.Open(opt)
	require.NoError(t, err)

	a, err := fs.Create("a.txt")
	require.NoError(t, err)
	b, err := fs.Create("b.txt")
	require.NoError(t, err)
	_, err = fs.Write(a, []byte("abcd"))
	require.NoError(t, err)
	_, err = fs.Write(b, []byte("xy"))
	require.NoError(t, err)
	_, err = fs.Write(a, []byte("ef"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(b))
	return fs
}

func TestListBlocks(t *testing.T) {
	fs := buildFS(t)
	var buf bytes.Buffer
	require.NoError(t, ListBlocks(&buf, fs.Snapshot()))
	assert.Equal(t, `-- file allocation table listing of used blocks --
  block   2 is used and points to   4
  block   3 is used and ends its chain
  block   4 is used and ends its chain
-- end --
`, buf.String())
}

func TestListDirectory(t *testing.T) {
	fs := buildFS(t)
	var buf bytes.Buffer
	require.NoError(t, ListDirectory(&buf, fs.Snapshot()))
	assert.Equal(t, `-- directory listing --
  fd =  2: a.txt, currently open, 6 bytes in size
           FAT: 2 4
  fd =  3: b.txt, currently closed, 2 bytes in size
           FAT: 3
  fd =  4: unused
-- end --
`, buf.String())
}

func TestListEmptyFile(t *testing.T) {
	fs, err := fatfs.Open(nil)
	require.NoError(t, err)
	_, err = fs.Create("empty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ListDirectory(&buf, fs.Snapshot()))
	assert.Contains(t, buf.String(), "  fd =  2: empty, currently open, 0 bytes in size\n           FAT: no blocks in use\n")
}

func TestBlockMap(t *testing.T) {
	fs := buildFS(t)
	var buf bytes.Buffer
	require.NoError(t, BlockMap(&buf, fs.Snapshot(), 10))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// 20 个块，每行 16 个
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	center := func(b int) [3]uint32 {
		r, g, bl, _ := img.At((b%BlockMapColumns)*10+5, (b/BlockMapColumns)*10+5).RGBA()
		return [3]uint32{r, g, bl}
	}
	reserved, usedA, usedB, free := center(0), center(2), center(3), center(5)
	assert.NotEqual(t, free, usedA)
	assert.NotEqual(t, usedA, usedB)
	assert.NotEqual(t, reserved, free)
	assert.Equal(t, usedA, center(4), "blocks of one file share a colour")
	assert.Equal(t, free, center(19))
}
