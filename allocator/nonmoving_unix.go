//go:build unix

package allocator

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"

	"github.com/wasilibs/fallible/internal/bounds"
)

var pageSize = unix.Getpagesize()

func reserve(max uint64) (region, error) {
	// Round up to the page size because recommitting must be page-aligned.
	reserved, ok := bounds.RoundUp(max, uint64(pageSize))
	if !ok || reserved > math.MaxInt {
		return nil, fmt.Errorf("allocator_unix: failed to reserve memory: %w", ErrCapacityOverflow)
	}
	if reserved == 0 {
		return &mmappedMemory{}, nil
	}

	// Reserve max bytes of address space, to ensure we won't need to move it.
	// A protected, private, anonymous mapping should not commit memory.
	b, err := unix.Mmap(-1, 0, int(reserved), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("allocator_unix: failed to reserve memory: %w", err)
	}
	return &mmappedMemory{buf: b[:0], max: max}, nil
}

// The slice covers the entire mmapped memory:
//   - len(buf) is the already committed memory,
//   - cap(buf) is the reserved address space, which is max rounded up to a page.
type mmappedMemory struct {
	buf []byte
	max uint64
}

func (m *mmappedMemory) commit(size uint64) ([]byte, error) {
	if size > m.max {
		return nil, errInvalidReallocation
	}

	com := uint64(len(m.buf))
	if com < size {
		next, _ := bounds.RoundUp(size, uint64(pageSize))

		// Commit additional memory up to next bytes.
		if err := unix.Mprotect(m.buf[com:next], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return nil, fmt.Errorf("allocator_unix: failed to commit memory: %w", err)
		}
		m.buf = m.buf[:next]
	}
	// Limit returned capacity because bytes beyond
	// len(m.buf) have not yet been committed.
	return m.buf[:size:len(m.buf)], nil
}

func (m *mmappedMemory) release() error {
	if cap(m.buf) == 0 {
		return nil
	}
	err := unix.Munmap(m.buf[:cap(m.buf)])
	m.buf = nil
	if err != nil {
		return fmt.Errorf("allocator_unix: failed to release memory: %w", err)
	}
	return nil
}
