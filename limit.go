package lrufile

// Limit bounds one dimension of the cache (entry count or serialized
// bytes). The zero value is unbounded: a cache configured with zero-value
// limits never evicts. That is an explicit configuration state, not a
// default to be inferred, so Options documents it on each field.
//
// Bound(0) is the other extreme: the dimension admits nothing, and every
// write is evicted before the operation returns.
type Limit struct {
	bounded bool
	max     int64
}

// Bound returns a Limit capping a dimension at max. Negative values are
// rejected at Open with *CapacityError, never clamped.
func Bound(max int64) Limit {
	return Limit{bounded: true, max: max}
}

// Bounded reports whether the limit is set.
func (l Limit) Bounded() bool { return l.bounded }

// Max returns the configured cap. Meaningless unless Bounded.
func (l Limit) Max() int64 { return l.max }

// exceeded reports whether n violates the limit.
func (l Limit) exceeded(n int64) bool {
	return l.bounded && n > l.max
}
