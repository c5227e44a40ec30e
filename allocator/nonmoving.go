package allocator

import (
	"github.com/tetratelabs/wazero/experimental"
)

// region is a reservation whose committed prefix can grow up to max bytes.
// On unix and windows the committed bytes never move.
type region interface {
	commit(size uint64) ([]byte, error)
	release() error
}

// NewNonMoving returns a wazero memory allocator backed by the same
// reservations as Mapped, so guest memory is never copied when it grows.
func NewNonMoving() experimental.MemoryAllocator {
	return experimental.MemoryAllocatorFunc(func(_, max uint64) experimental.LinearMemory {
		m, err := reserve(max)
		if err != nil {
			panic(err)
		}
		return &linearMemory{mem: m}
	})
}

type linearMemory struct {
	mem region
}

func (l *linearMemory) Reallocate(size uint64) []byte {
	b, err := l.mem.commit(size)
	if err != nil {
		panic(err)
	}
	return b
}

func (l *linearMemory) Free() {
	if err := l.mem.release(); err != nil {
		panic(err)
	}
}

// sliceMemory is the portable fallback. It moves when it grows.
type sliceMemory struct {
	buf []byte
	max uint64
}

func (b *sliceMemory) commit(size uint64) ([]byte, error) {
	if size > b.max {
		return nil, errInvalidReallocation
	}
	if c := uint64(cap(b.buf)); size > c {
		b.buf = append(b.buf[:c], make([]byte, size-c)...)
	} else {
		b.buf = b.buf[:size]
	}
	return b.buf, nil
}

func (b *sliceMemory) release() error {
	b.buf = nil
	return nil
}
