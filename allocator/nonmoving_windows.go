//go:build windows

package allocator

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wasilibs/fallible/internal/bounds"
)

// https://cs.opensource.google/go/x/sys/+/refs/tags/v0.20.0:windows/syscall_windows.go;l=131
const pageSize = 4096

func reserve(max uint64) (region, error) {
	// Round up to the page size because recommitting must be page-aligned.
	reserved, ok := bounds.RoundUp(max, pageSize)
	if !ok || reserved > math.MaxInt {
		return nil, fmt.Errorf("allocator_windows: failed to reserve memory: %w", ErrCapacityOverflow)
	}
	if reserved == 0 {
		return &virtualMemory{}, nil
	}

	// Reserve max bytes of address space, to ensure we won't need to move it.
	// This does not commit memory.
	addr, err := windows.VirtualAlloc(0, uintptr(reserved), windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("allocator_windows: failed to reserve memory: %w", err)
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(reserved))
	return &virtualMemory{buf: buf[:0], addr: addr, max: max}, nil
}

// The slice covers the entire reserved memory:
//   - len(buf) is the already committed memory,
//   - cap(buf) is the reserved address space, which is max rounded up to a page.
type virtualMemory struct {
	buf  []byte
	addr uintptr
	max  uint64

	// Buffers are single-owner, but a wazero guest may call Reallocate from
	// another goroutine than the one that frees it; the lock keeps the race
	// detector able to confirm that.
	mu sync.Mutex
}

func (m *virtualMemory) commit(size uint64) ([]byte, error) {
	if size > m.max {
		return nil, errInvalidReallocation
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	com := uint64(len(m.buf))
	if com < size {
		next, _ := bounds.RoundUp(size, pageSize)

		// Commit additional memory up to next bytes.
		if _, err := windows.VirtualAlloc(m.addr, uintptr(next), windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
			return nil, fmt.Errorf("allocator_windows: failed to commit memory: %w", err)
		}
		m.buf = m.buf[:next]
	}
	// Limit returned capacity because bytes beyond
	// len(m.buf) have not yet been committed.
	return m.buf[:size:len(m.buf)], nil
}

func (m *virtualMemory) release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.addr == 0 {
		return nil
	}
	if err := windows.VirtualFree(m.addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("allocator_windows: failed to release memory: %w", err)
	}
	m.addr = 0
	m.buf = nil
	return nil
}
