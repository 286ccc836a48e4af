package utils

// FetchResult carries either a value from an external data provider or the
// reason the lookup failed. Value may still hold a usable fallback when Err is
// set, e.g. an empty list.
type FetchResult[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) FetchResult[T] {
	return FetchResult[T]{Value: v}
}

func Fail[T any](err error) FetchResult[T] {
	return FetchResult[T]{Err: err}
}

func (r FetchResult[T]) OK() bool { return r.Err == nil }

// OrElse returns the value on success and fallback otherwise.
func (r FetchResult[T]) OrElse(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}
