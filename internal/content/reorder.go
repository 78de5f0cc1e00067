// internal/content/reorder.go
//
// Pure sequence-move helper backing drag-and-drop reordering.
//
// The UI layer owns the gesture (pointer deltas, visual transform); the model
// exposes only this function, so reordering is testable without any UI
// harness.  A drop commits exactly one UpdatePage with the moved sequence.
package content

// Move returns a copy of seq with the element at from reinserted at to, all
// intervening elements shifted by one.  The result is always a permutation of
// the input: no element is duplicated or lost.  Equal or out-of-range indexes
// return the input unchanged.
func Move[T any](seq []T, from, to int) []T {
	if from == to || from < 0 || to < 0 || from >= len(seq) || to >= len(seq) {
		return seq
	}

	out := make([]T, 0, len(seq))
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)

	moved := seq[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}
