package itinerary

import (
	"slices"
	"sort"
)

// Move asks for a visit to sit at a position.
type Move struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"order_index"`
}

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// SwapNeighbor swaps the item at index with the one above or below it. It
// reports false, leaving ids untouched, when there is no such neighbour.
func SwapNeighbor(ids []string, index int, dir Direction) ([]string, bool) {
	other := index + 1
	if dir == Up {
		other = index - 1
	}
	if index < 0 || index >= len(ids) || other < 0 || other >= len(ids) {
		return ids, false
	}
	out := append([]string(nil), ids...)
	out[index], out[other] = out[other], out[index]
	return out, true
}

// MoveItem removes the item at from and reinserts it at to. A target past
// either end lands on that end.
func MoveItem(ids []string, from, to int) ([]string, bool) {
	if from < 0 || from >= len(ids) {
		return ids, false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(ids) {
		to = len(ids) - 1
	}
	if from == to {
		return ids, false
	}
	out := slices.Delete(slices.Clone(ids), from, from+1)
	return slices.Insert(out, to, ids[from]), true
}

// Normalize turns a requested ordering into a full permutation of current.
// Moves naming ids outside current are dropped, duplicates keep their first
// position, and ids the moves leave out follow in their current order.
func Normalize(current []string, moves []Move) []string {
	known := make(map[string]bool, len(current))
	for _, id := range current {
		known[id] = true
	}

	wanted := make([]Move, 0, len(moves))
	seen := make(map[string]bool, len(moves))
	for _, m := range moves {
		if !known[m.ID] || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		wanted = append(wanted, m)
	}
	sort.SliceStable(wanted, func(i, j int) bool { return wanted[i].OrderIndex < wanted[j].OrderIndex })

	out := make([]string, 0, len(current))
	for _, m := range wanted {
		out = append(out, m.ID)
	}
	for _, id := range current {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// Assign numbers ids densely from zero.
func Assign(ids []string) []Move {
	moves := make([]Move, len(ids))
	for i, id := range ids {
		moves[i] = Move{ID: id, OrderIndex: i}
	}
	return moves
}
