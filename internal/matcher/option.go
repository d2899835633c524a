package matcher

// Option represents a container type for a value that may be absent,
// or the error that prevented computing it.
type Option[T any] struct {
	value T
	ok    bool
	err   error
}

// Some wraps a present value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Fail returns an empty Option carrying err.
func Fail[T any](err error) Option[T] {
	return Option[T]{err: err}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Err returns the error that left the Option empty, if any.
func (o Option[T]) Err() error {
	return o.err
}

// Filter drops the value when keep reports false.
func (o Option[T]) Filter(keep func(T) bool) Option[T] {
	if !o.ok || keep(o.value) {
		return o
	}
	return None[T]()
}
