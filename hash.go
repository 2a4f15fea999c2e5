package intmap

import "math/bits"

// Golden ratio multiplier. Odd, so multiplication is a bijection on uint32.
const hashMultiplier = 0x9E3779B9

// Hash mixes key so that dense runs of keys, including negative ones, spread over the
// low bits that a table mask keeps. It depends only on key.
func Hash(key int32) uint32 {
	h := uint32(key) * hashMultiplier
	return h ^ (h >> 16)
}

// home is the first bucket probed for key in a table of mask+1 slots.
func home(key int32, mask int) int {
	return int(Hash(key)) & mask
}

// next is the linear probe step. Starting anywhere, mask+1 steps visit every bucket
// exactly once.
func next(cursor, mask int) int {
	return (cursor + 1) & mask
}

// roundCapacity returns the smallest power of two that is >= capacity and >= MinCapacity.
func roundCapacity(capacity int) int {
	if capacity <= MinCapacity {
		return MinCapacity
	}
	return 1 << uint(bits.Len(uint(capacity-1)))
}
