package report

import (
	"bufio"
	"fmt"
	"io"

	"fatfs"
	"fatfs/dir"
)

// ListBlocks writes the used entries of the allocation table.
func ListBlocks(w io.Writer, s *fatfs.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "-- file allocation table listing of used blocks --")
	for _, l := range s.Links {
		if l.Last {
			fmt.Fprintf(bw, "  block %3d is used and ends its chain\n", l.Block)
		} else {
			fmt.Fprintf(bw, "  block %3d is used and points to %3d\n", l.Block, l.Next)
		}
	}
	fmt.Fprintln(bw, "-- end --")
	return bw.Flush()
}

// ListDirectory writes every directory slot with its size and block chain.
func ListDirectory(w io.Writer, s *fatfs.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "-- directory listing --")
	for _, f := range s.Files {
		fmt.Fprintf(bw, "  fd = %2d: ", f.FD)
		if f.Status == dir.Unused {
			fmt.Fprintln(bw, "unused")
			continue
		}
		fmt.Fprintf(bw, "%s, currently %s, %d bytes in size\n", f.Name, f.Status, f.Size)
		fmt.Fprint(bw, "           FAT:")
		switch {
		case f.ChainErr != nil:
			fmt.Fprintf(bw, " %v\n", f.ChainErr)
		case len(f.Chain) == 0:
			fmt.Fprintln(bw, " no blocks in use")
		default:
			for _, b := range f.Chain {
				fmt.Fprintf(bw, " %d", b)
			}
			fmt.Fprintln(bw)
		}
	}
	fmt.Fprintln(bw, "-- end --")
	return bw.Flush()
}
