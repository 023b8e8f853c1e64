package scale

// Band maps each distinct domain value to an equal-width slot of a pixel
// range. Slots have no inner or outer padding.
type Band[T comparable] struct {
	domain []T
	index  map[T]int
	start  float64
	step   float64
}

// NewBand creates a band scale over [r0, r1]. Repeated domain values keep the
// slot of their first occurrence.
func NewBand[T comparable](domain []T, r0, r1 float64) *Band[T] {
	b := &Band[T]{
		index: make(map[T]int, len(domain)),
		start: r0,
	}
	for _, v := range domain {
		if _, ok := b.index[v]; ok {
			continue
		}
		b.index[v] = len(b.domain)
		b.domain = append(b.domain, v)
	}
	if len(b.domain) > 0 {
		b.step = (r1 - r0) / float64(len(b.domain))
	}
	return b
}

// Map returns the start of v's slot. It reports false for values outside the
// domain.
func (b *Band[T]) Map(v T) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.start + float64(i)*b.step, true
}

// Bandwidth returns the width of every slot.
func (b *Band[T]) Bandwidth() float64 { return b.step }

// Domain returns the distinct domain values in slot order.
func (b *Band[T]) Domain() []T {
	out := make([]T, len(b.domain))
	copy(out, b.domain)
	return out
}
