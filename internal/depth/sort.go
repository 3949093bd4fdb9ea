package depth

// Sort orders items in place so they can be drawn back to front.
// box returns the bounding box of an item; it is called on every comparison,
// so it should be a field access.
//
// The algorithm is a recursive quicksort with the leftmost element as pivot
// and a Lomuto partition driven by DrawsBefore. For the same input it always
// produces the same output.
func Sort[T any](items []T, box func(*T) Box) {
	quicksort(items, 0, len(items)-1, box)
}

func quicksort[T any](items []T, left, right int, box func(*T) Box) {
	for right > left {
		r := partition(items, left, right, box)
		// Recurse into the smaller half to bound stack depth.
		if r-left < right-r {
			quicksort(items, left, r-1, box)
			left = r + 1
		} else {
			quicksort(items, r+1, right, box)
			right = r - 1
		}
	}
}

func partition[T any](items []T, left, right int, box func(*T) Box) int {
	i := left
	pivot := box(&items[left])
	for j := left + 1; j <= right; j++ {
		if DrawsBefore(pivot, box(&items[j])) {
			i++
			items[i], items[j] = items[j], items[i]
		}
	}
	items[left], items[i] = items[i], items[left]
	return i
}
