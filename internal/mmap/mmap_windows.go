//go:build windows
// +build windows

package mmap

import (
	"os"
	"syscall"
	"unsafe"
)

// Mmap maps size bytes of fd starting at offset. Trie files are only ever
// mapped read-only, so write mappings never grow the file.
func Mmap(fd *os.File, write bool, offset int64, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	protect := uint32(syscall.PAGE_READONLY)
	access := uint32(syscall.FILE_MAP_READ)
	if write {
		protect = syscall.PAGE_READWRITE
		access = syscall.FILE_MAP_WRITE
	}

	maxsize := size + offset
	handle, err := syscall.CreateFileMapping(syscall.Handle(fd.Fd()), nil,
		protect, uint32(maxsize>>32), uint32(maxsize&0xffffffff), nil)
	if err != nil {
		return nil, os.NewSyscallError("CreateFileMapping", err)
	}
	defer syscall.CloseHandle(handle)

	addr, err := syscall.MapViewOfFile(handle, access,
		uint32(offset>>32), uint32(offset&0xffffffff), uintptr(size))
	if addr == 0 {
		return nil, os.NewSyscallError("MapViewOfFile", err)
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

func Munmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return syscall.UnmapViewOfFile(uintptr(unsafe.Pointer(&b[0])))
}

func Madvise(b []byte, readahead bool) error {
	// not supported on windows
	return nil
}
