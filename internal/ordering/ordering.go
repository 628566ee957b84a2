// Package ordering assigns and repairs the integer order values that
// position columns within a board and tasks within a column. Order
// values are non-negative and unique by convention only; every sort
// breaks ties by creation time so display order stays deterministic
// even when callers hand in sparse or duplicate values.
package ordering

import (
	"sort"
	"time"
)

// Item is the minimal view of an orderable sibling.
type Item struct {
	ID        string
	Order     int
	CreatedAt time.Time
}

// Placement is one write produced by a renumbering pass.
type Placement struct {
	ID    string
	Order int
}

// Sort orders items in place by (Order asc, CreatedAt asc) with the id
// as the final tiebreak, yielding a total order.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// NextOrder returns the order value for a sibling appended to the end
// of a set that currently has count members.
func NextOrder(count int) int {
	if count < 0 {
		return 0
	}
	return count
}

// Renumber moves the sibling movedID to position target within items
// and returns contiguous zero-based order assignments for the whole
// set. Target positions outside the set are clamped. If movedID is not
// present the set is still normalized to contiguous values.
func Renumber(items []Item, movedID string, target int) []Placement {
	if len(items) == 0 {
		return nil
	}

	Sort(items)

	moved := -1
	for i, it := range items {
		if it.ID == movedID {
			moved = i
			break
		}
	}

	ordered := make([]Item, 0, len(items))
	if moved >= 0 {
		ordered = append(ordered, items[:moved]...)
		ordered = append(ordered, items[moved+1:]...)
		if target < 0 {
			target = 0
		}
		if target > len(ordered) {
			target = len(ordered)
		}
		ordered = append(ordered[:target:target], append([]Item{items[moved]}, ordered[target:]...)...)
	} else {
		ordered = append(ordered, items...)
	}

	placements := make([]Placement, len(ordered))
	for i, it := range ordered {
		placements[i] = Placement{ID: it.ID, Order: i}
	}
	return placements
}

// Insert places a new sibling with the given id at position target
// among existing items and returns assignments for the combined set.
func Insert(items []Item, newID string, target int, createdAt time.Time) []Placement {
	combined := append(append([]Item(nil), items...), Item{ID: newID, Order: len(items), CreatedAt: createdAt})
	return Renumber(combined, newID, target)
}
