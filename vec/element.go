package vec

// Cloner is implemented by element types that need more than an assignment
// to be duplicated. Clone may panic; the buffer stays consistent if it does.
type Cloner[T any] interface {
	Clone() T
}

// Disposer is implemented by element types that release resources when the
// buffer destroys them.
type Disposer interface {
	Dispose()
}

func duplicate[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func dispose[T any](v T) {
	if d, ok := any(v).(Disposer); ok {
		d.Dispose()
	}
}

func disposeAll[T any](vs []T) {
	for _, v := range vs {
		dispose(v)
	}
}
