package main

import (
	"fmt"
	"log"
	"os"

	"fatfs"
	"fatfs/report"

	"github.com/pkg/errors"
)

// 演示一个文件的完整生命周期：
/*
	create -> write -> seek -> read -> close -> delete
	过程中打印分配表和目录，可选地把块分布画成 png
	用法: go run ./demo [blockmap.png]
*/
func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run() error {
	fs, err := fatfs.Open(nil)
	if err != nil {
		return err
	}

	fd, err := fs.Create("a.txt")
	if err != nil {
		return err
	}
	n, err := fs.Write(fd, []byte("hello"))
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes to fd %d\n", n, fd)

	big, err := fs.Create("big.dat")
	if err != nil {
		return err
	}
	if _, err := fs.Write(big, make([]byte, 3*fs.Options().BlockSize+10)); err != nil {
		return err
	}

	if err := fs.Seek(fd, 0); err != nil {
		return err
	}
	buf := make([]byte, 5)
	n, err = fs.Read(fd, buf)
	if err != nil {
		return err
	}
	fmt.Printf("read %d bytes: %q\n", n, buf[:n])

	snap := fs.Snapshot()
	if err := report.ListBlocks(os.Stdout, snap); err != nil {
		return err
	}
	if err := report.ListDirectory(os.Stdout, snap); err != nil {
		return err
	}
	if len(os.Args) > 1 {
		f, err := os.Create(os.Args[1])
		if err != nil {
			return errors.Wrap(err, "block map")
		}
		defer f.Close()
		if err := report.BlockMap(f, snap, report.DefaultCellSize); err != nil {
			return errors.Wrap(err, "block map")
		}
	}

	if err := fs.Close(fd); err != nil {
		return err
	}
	if err := fs.Delete(fd); err != nil {
		return err
	}
	fmt.Printf("a.txt exists after delete: %v\n", fs.Exists("a.txt"))
	return fs.Check()
}
