// Package order decides sort_order values for images within an album (and for
// albums within an owner's list). It is a pure data transform: no I/O, no
// clock, no randomness.
//
// sort_order values live on an unbounded integer line. Appended items land
// above the current maximum, prepended items below the current minimum, so a
// batch never interleaves with existing items. Any manual reorder collapses
// the whole list back to dense 0..N-1 values.
package order

// Item pairs a row id with its persisted sort order.
type Item struct {
	ID        string
	SortOrder int
}

// InsertOrders returns sort_order values for count new items about to be
// inserted into a list with the given existing orders. With addFirst the k-th
// new item gets min-(k+1), otherwise max+(k+1); relative order of the batch is
// preserved either way. An empty list starts from base 0, so the first
// appended item gets 1 and the first prepended item gets -1.
func InsertOrders(existing []Item, addFirst bool, count int) []int {
	min, max := 0, 0
	if len(existing) > 0 {
		min, max = existing[0].SortOrder, existing[0].SortOrder
		for _, item := range existing[1:] {
			if item.SortOrder < min {
				min = item.SortOrder
			}
			if item.SortOrder > max {
				max = item.SortOrder
			}
		}
	}
	orders := make([]int, count)
	for i := range orders {
		if addFirst {
			orders[i] = min - (i + 1)
		} else {
			orders[i] = max + (i + 1)
		}
	}
	return orders
}

// Reorder moves the item at index from to index to (a single-element splice:
// the removal shifts later items down before the insertion happens) and then
// renumbers every item to its dense 0-based position, discarding any sparse
// gaps left over from front/back insertions. The result is deterministic in
// (from, to, input order). Indices must be valid positions in items; an
// out-of-range index returns the input order unchanged.
func Reorder(items []Item, from, to int) []Item {
	result := make([]Item, 0, len(items))
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return append(result, items...)
	}
	moved := items[from]
	rest := make([]Item, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	result = append(result, rest[:to]...)
	result = append(result, moved)
	result = append(result, rest[to:]...)
	for i := range result {
		result[i].SortOrder = i
	}
	return result
}
