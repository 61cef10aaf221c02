// Package presentation holds display-only logic: room ordering, table
// layout and printable output. Nothing here is part of the storage
// contract.
package presentation

import (
	"sort"
	"strconv"
	"strings"

	"roomledger/internal/common"
	"roomledger/internal/models"
)

// floorOrder ranks the leading floor marker of a room label: ground, first,
// second, third. Unknown markers sort after all of them.
var floorOrder = map[byte]int{
	'G': 0,
	'F': 1,
	'S': 2,
	'T': 3,
}

// FloorRank returns the sort rank of the label's floor marker.
func FloorRank(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return len(floorOrder)
	}
	if rank, ok := floorOrder[strings.ToUpper(name[:1])[0]]; ok {
		return rank
	}
	return len(floorOrder)
}

// RoomNumber is the integer formed by the digits of the label, 0 when the
// label has none.
func RoomNumber(name string) int {
	n, err := strconv.Atoi(common.DigitsOnly(name))
	if err != nil {
		return 0
	}
	return n
}

// LessForDisplay orders room labels by floor marker, then room number, then
// the raw label.
func LessForDisplay(a, b string) bool {
	if ra, rb := FloorRank(a), FloorRank(b); ra != rb {
		return ra < rb
	}
	if na, nb := RoomNumber(a), RoomNumber(b); na != nb {
		return na < nb
	}
	return a < b
}

// SortRoomsForDisplay returns a sorted copy of rooms.
func SortRoomsForDisplay(rooms []*models.Room) []*models.Room {
	sorted := make([]*models.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return LessForDisplay(sorted[i].Name, sorted[j].Name)
	})
	return sorted
}
