package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
)

// 文件系统对外暴露的错误类型
var (
	ErrInvalidName          = errors.New("invalid file name")
	ErrNameNotFound         = errors.New("file name not found")
	ErrNameAlreadyExists    = errors.New("file name already exists")
	ErrDescriptorOutOfRange = errors.New("file descriptor out of range")
	ErrDirectoryFull        = errors.New("directory is full")
	ErrFileNotOpen          = errors.New("file is not open")
	ErrFileAlreadyOpen      = errors.New("file is already open")
	ErrFileMustBeClosed     = errors.New("file must be closed")
	ErrSeekOutOfBounds      = errors.New("offset out of bounds")
	ErrAccessDenied         = errors.New("access denied")
	ErrStorageExhausted     = errors.New("no free block available")
	// ErrCorruptChain is returned when a block chain points at a free or
	// out-of-range block, loops, or is shorter than the file it backs.
	ErrCorruptChain = errors.New("corrupt block chain")
	ErrBadOptions   = errors.New("bad options")
)

func Panic(err error) {
	if err != nil {
		panic(err)
	}
}
func CondPanic(condition bool, err error) {
	if condition {
		Panic(err)
	}
}
func AssertTruef(b bool, fmt string, args ...interface{}) {
	if !b {
		log.Fatalf("%+v", errors.Errorf(fmt, args...))
	}
}
func location(deep int) string {
	_, file, line, ok := runtime.Caller(deep)
	if !ok {
		file = "???"
		line = 0
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// Err 把错误以及上上层调用者的位置写到 w，w 为 nil 时写到标准输出，原样返回 err
func Err(w io.Writer, err error) error {
	if err != nil {
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintf(w, "*** %s %s\n", location(3), err)
	}
	return err
}
