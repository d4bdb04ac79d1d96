package report

import (
	"io"

	"fatfs"
	"fatfs/fat"
	"fatfs/utils"

	"github.com/fogleman/gg"
)

// BlockMapColumns is the number of blocks drawn per row.
const BlockMapColumns = 16

// DefaultCellSize is the cell edge in pixels used when none is given.
const DefaultCellSize = 24

var palette = [][3]float64{
	{0.4, 0.6, 1},
	{0.6, 1, 0.6},
	{1, 0.6, 0.6},
	{1, 0.85, 0.4},
	{0.75, 0.55, 1},
	{0.4, 0.9, 0.9},
}

// BlockMap draws the block pool as a PNG grid, one cell per block: reserved
// blocks dark, free blocks light grey, used blocks coloured by owning file.
func BlockMap(w io.Writer, s *fatfs.Snapshot, cell int) error {
	if cell <= 0 {
		cell = DefaultCellSize
	}
	owner := make(map[fat.BlockID]int)
	i := 0
	for _, f := range s.Files {
		if len(f.Chain) == 0 {
			continue
		}
		for _, b := range f.Chain {
			owner[b] = i
		}
		i++
	}

	rows := (s.NumBlocks + BlockMapColumns - 1) / BlockMapColumns
	dc := gg.NewContext(BlockMapColumns*cell, rows*cell)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for b := 0; b < s.NumBlocks; b++ {
		x := float64((b % BlockMapColumns) * cell)
		y := float64((b / BlockMapColumns) * cell)
		idx, used := owner[fat.BlockID(b)]
		switch {
		case b < utils.FirstValidBlock:
			dc.SetRGB(0.3, 0.3, 0.3)
		case used:
			c := palette[idx%len(palette)]
			dc.SetRGB(c[0], c[1], c[2])
		default:
			dc.SetRGB(0.9, 0.9, 0.9)
		}
		dc.DrawRectangle(x, y, float64(cell), float64(cell))
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, float64(cell), float64(cell))
		dc.Stroke()
	}
	return dc.EncodePNG(w)
}
