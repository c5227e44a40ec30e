package vec

// lenGuard tracks the initialized extent of a buffer during an incremental
// fill. Slots are written first and counted afterwards, so a panic between
// the two never exposes a slot that was not written.
//
// Callers must defer commit right after creating the guard:
//
//	g := guardLen(b)
//	defer g.commit()
type lenGuard[T any] struct {
	b     *Buffer[T]
	local int
}

func guardLen[T any](b *Buffer[T]) lenGuard[T] {
	return lenGuard[T]{b: b, local: b.length}
}

func (g *lenGuard[T]) increment(k int) {
	g.local += k
}

func (g *lenGuard[T]) current() int {
	return g.local
}

// push writes v at the guarded end. The slot must already be backed by storage.
func (g *lenGuard[T]) push(v T) {
	g.b.data[g.local] = v
	g.increment(1)
}

func (g *lenGuard[T]) commit() {
	g.b.length = g.local
}
