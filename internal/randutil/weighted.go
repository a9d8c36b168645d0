package randutil

import rand "math/rand/v2"

// Weighted pairs an outcome with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// W is shorthand for building a Weighted value.
func W[T any](value T, weight int) Weighted[T] {
	return Weighted[T]{Value: value, Weight: weight}
}

// Pick draws one outcome with probability proportional to its weight.
// Non-positive weights are never selected. ok is false when no outcome
// has a positive weight.
func Pick[T any](rng *rand.Rand, choices ...Weighted[T]) (value T, ok bool) {
	total := 0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total == 0 {
		return value, false
	}

	r := rng.IntN(total)
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		if r < c.Weight {
			return c.Value, true
		}
		r -= c.Weight
	}
	// unreachable: r < total
	return value, false
}

// Uniform picks one of values with equal probability.
func Uniform[T any](rng *rand.Rand, values ...T) T {
	return values[rng.IntN(len(values))]
}
