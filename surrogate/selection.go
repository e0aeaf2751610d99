// SPDX-License-Identifier: MIT

package surrogate

// selectK reorders idx so that idx[:k] reference the k smallest key values
// (in no particular order). It is an iterative quickselect with a
// median-of-three pivot: O(n) expected, no allocation.
func selectK(idx []int, key []float64, k int) {
	if k <= 0 || k >= len(idx) {
		return
	}
	target := k - 1
	lo, hi := 0, len(idx)-1
	for lo < hi {
		p := partition(idx, key, lo, hi)
		switch {
		case p == target:
			return
		case p < target:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition places a median-of-three pivot at its final position within
// idx[lo..hi] and returns that position. Entries left of it have smaller
// keys, entries right of it have keys >= the pivot.
func partition(idx []int, key []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if key[idx[mid]] < key[idx[lo]] {
		idx[mid], idx[lo] = idx[lo], idx[mid]
	}
	if key[idx[hi]] < key[idx[lo]] {
		idx[hi], idx[lo] = idx[lo], idx[hi]
	}
	if key[idx[hi]] < key[idx[mid]] {
		idx[hi], idx[mid] = idx[mid], idx[hi]
	}
	// median now at mid; park it at hi
	idx[mid], idx[hi] = idx[hi], idx[mid]
	pivot := key[idx[hi]]

	store := lo
	for i := lo; i < hi; i++ {
		if key[idx[i]] < pivot {
			idx[i], idx[store] = idx[store], idx[i]
			store++
		}
	}
	idx[store], idx[hi] = idx[hi], idx[store]

	return store
}
