// Package ordering computes order indexes for sibling sets: columns within a
// board and tasks within a column. All functions work on copies; callers
// persist whatever comes back.
package ordering

import "errors"

var ErrNegativeIndex = errors.New("ordering: negative target index")

// Item is one sibling: a row id and its current order index.
type Item struct {
	ID    int64
	Index int
}

// Next returns the order index for an item appended after items.
// Empty sibling sets start at 1.
func Next(items []Item) int {
	if len(items) == 0 {
		return 1
	}
	max := items[0].Index
	for _, it := range items[1:] {
		if it.Index > max {
			max = it.Index
		}
	}
	return max + 1
}

// Swap returns copies of a and b with their order indexes exchanged.
func Swap(a, b Item) (Item, Item) {
	a.Index, b.Index = b.Index, a.Index
	return a, b
}

// Reinsert renumbers items around a hole at target. items must be the
// siblings of the moved item, excluding it, sorted by current index. Siblings
// before target keep their rank, siblings at or after it shift up by one, so
// the moved item can take target and the whole set stays dense. A target past
// the end leaves every rank untouched, which amounts to appending.
func Reinsert(items []Item, target int) ([]Item, error) {
	if target < 0 {
		return nil, ErrNegativeIndex
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if i >= target {
			it.Index = i + 1
		} else {
			it.Index = i
		}
		out[i] = it
	}
	return out, nil
}
