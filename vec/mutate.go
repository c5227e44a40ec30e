package vec

// Push appends v.
func (b *Buffer[T]) Push(v T) error {
	if err := b.Reserve(1); err != nil {
		return err
	}
	b.data[b.length] = v
	b.length++
	return nil
}

// Insert places v at index i, shifting the elements at i and after it right
// by one. It panics with ErrIndexOutOfRange unless 0 <= i <= Len().
func (b *Buffer[T]) Insert(i int, v T) error {
	if i < 0 || i > b.length {
		indexPanic("insert", i, b.length)
	}
	if err := b.moveTail(i, 1); err != nil {
		return err
	}
	b.data[i] = v
	b.length++
	return nil
}

// Extend appends every element src produces. The lower size hint is
// reserved up front.
//
// If src panics while producing an element, every element it produced before
// stays appended. If the allocator refuses to grow past the hint, the element
// that did not fit is disposed and the error returned; elements before it stay.
func (b *Buffer[T]) Extend(src Source[T]) error {
	lower, _, _ := src.SizeHint()
	if err := b.Reserve(lower); err != nil {
		return err
	}

	g := guardLen(b)
	defer g.commit()
	for {
		v, ok := src.Next()
		if !ok {
			return nil
		}
		if g.current() == len(b.data) {
			if err := b.reserveFrom(g.current(), 1); err != nil {
				dispose(v)
				return err
			}
		}
		g.push(v)
	}
}

// ExtendFromSlice appends a duplicate of every element of s, in order.
// s must not alias b's storage.
//
// If duplicating s[i] panics, s[:i] stays appended.
func (b *Buffer[T]) ExtendFromSlice(s []T) error {
	if err := b.Reserve(len(s)); err != nil {
		return err
	}

	g := guardLen(b)
	defer g.commit()
	for _, v := range s {
		g.push(duplicate(v))
	}
	return nil
}

// Resize changes the length to n. Growing appends duplicates of v; v itself
// fills the last new slot. Shrinking destroys the elements past n. The buffer
// owns v: when it is not stored, it is disposed.
//
// If duplicating v panics, the duplicates made before the panic stay appended.
func (b *Buffer[T]) Resize(n int, v T) error {
	if n <= b.length {
		b.Truncate(n)
		dispose(v)
		return nil
	}
	if err := b.Reserve(n - b.length); err != nil {
		dispose(v)
		return err
	}
	b.fillValue(n, v)
	return nil
}

// fillValue fills up to length n, which must already be backed by storage,
// with duplicates of v and then v itself. v is disposed if the fill panics.
func (b *Buffer[T]) fillValue(n int, v T) {
	stored := false
	defer func() {
		if !stored {
			dispose(v)
		}
	}()

	g := guardLen(b)
	defer g.commit()
	for g.current() < n-1 {
		g.push(duplicate(v))
	}
	g.push(v)
	stored = true
}

// ResizeFunc changes the length to n. Growing appends the results of calling
// gen once per new slot, in call order. Shrinking destroys the elements past n.
//
// If gen panics on its j-th call, the first j-1 generated values stay appended.
func (b *Buffer[T]) ResizeFunc(n int, gen func() T) error {
	if n <= b.length {
		b.Truncate(n)
		return nil
	}
	if err := b.Reserve(n - b.length); err != nil {
		return err
	}

	g := guardLen(b)
	defer g.commit()
	for g.current() < n {
		g.push(gen())
	}
	return nil
}
