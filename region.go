// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringmesh

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// region owns one memory-mapped backing file. It never interprets the
// bytes it maps; the layout.go views and the Context built on top of it do
// that.
type region struct {
	file   *os.File
	data   []byte
	closed bool
}

// createRegion creates path exclusively, sizes it to size bytes, maps it
// PROT_READ|PROT_WRITE/MAP_SHARED, and zero-fills it.
func createRegion(path string, size int) (*region, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: truncate %s to %d bytes: %v", ErrIO, path, size, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrMapFailed, path, err)
	}

	clear(data)

	return &region{file: f, data: data}, nil
}

// openRegion opens an existing file read/write and maps it at its current
// size. Returns an error satisfying errors.Is(err, os.ErrNotExist) if path
// does not exist, so callers can fall back to createRegion.
func openRegion(path string) (*region, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}
	size := int(st.Size())
	if size < headerSize {
		f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, too small for a header", ErrIO, path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrMapFailed, path, err)
	}

	return &region{file: f, data: data}, nil
}

// close unmaps the region and closes the backing file descriptor. It does
// not unlink the file: that remains the caller's responsibility for as
// long as other processes may still be attached.
func (r *region) close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := unix.Munmap(r.data); err != nil {
		r.file.Close()
		return fmt.Errorf("%w: munmap: %v", ErrIO, err)
	}
	return r.file.Close()
}
