//go:build windows

package mmap

import (
	"io"
	"os"
)

func mmap(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func munmap([]byte) error { return nil }

func adviseSequential([]byte) {}
