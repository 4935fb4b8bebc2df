package quotes

import "math/rand/v2"

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type uniformPicker struct{}

func (uniformPicker) IntN(n int) int {
	return rand.IntN(n)
}

// NewRandomPicker returns a Picker with a uniform distribution.
func NewRandomPicker() Picker {
	return uniformPicker{}
}

// Pick returns a uniformly chosen element of items. Callers are expected to
// check for an empty list first; ErrEmpty is returned if they do not.
func Pick[T any](p Picker, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmpty
	}
	return items[p.IntN(len(items))], nil
}
