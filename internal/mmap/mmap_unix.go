//go:build !windows
// +build !windows

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func Mmap(fd *os.File, write bool, offset int64, size int64) ([]byte, error) {
	prot := unix.PROT_READ
	flags := unix.MAP_SHARED
	if write {
		prot |= unix.PROT_WRITE
	}
	if size == 0 {
		return []byte{}, nil
	}
	b, err := unix.Mmap(int(fd.Fd()), offset, int(size), prot, flags)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}
	return b, nil
}

func Munmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munmap(b)
}

func Madvise(b []byte, readahead bool) error {
	if len(b) == 0 {
		return nil
	}
	advice := unix.MADV_RANDOM
	if readahead {
		advice = unix.MADV_SEQUENTIAL
	}
	return unix.Madvise(b, advice)
}
