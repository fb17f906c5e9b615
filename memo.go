package lrufile

// Memoize wraps fn so that results are cached by argument. A hit touches the
// key like any read; a miss calls fn and stores the result. Errors from fn
// are returned without being cached, so a failed call is retried next time.
func Memoize[K comparable, V any](c Cache[K, V], fn func(K) (V, error)) func(K) (V, error) {
	return func(key K) (V, error) {
		return c.GetOrLoad(key, func() (V, error) { return fn(key) })
	}
}
