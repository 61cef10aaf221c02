package presentation

import (
	"testing"

	"roomledger/internal/models"

	"github.com/stretchr/testify/assert"
)

func roomsNamed(names ...string) []*models.Room {
	rooms := make([]*models.Room, 0, len(names))
	for _, n := range names {
		rooms = append(rooms, &models.Room{Name: n})
	}
	return rooms
}

func names(rooms []*models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Name)
	}
	return out
}

func TestSortRoomsForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "floor prefix then numeric suffix",
			input: []string{"F2", "G1", "S1", "F10", "F1"},
			want:  []string{"G1", "F1", "F2", "F10", "S1"},
		},
		{
			name:  "lowercase markers",
			input: []string{"s2", "g10", "g2"},
			want:  []string{"g2", "g10", "s2"},
		},
		{
			name:  "unknown markers last",
			input: []string{"Office", "T1", "G3"},
			want:  []string{"G3", "T1", "Office"},
		},
		{
			name:  "non numeric names default to zero",
			input: []string{"F3", "F-Annex", "F1"},
			want:  []string{"F-Annex", "F1", "F3"},
		},
		{
			name:  "empty",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(SortRoomsForDisplay(roomsNamed(tt.input...))))
		})
	}
}

func TestSortRoomsForDisplay_DoesNotMutateInput(t *testing.T) {
	input := roomsNamed("F2", "G1")
	_ = SortRoomsForDisplay(input)
	assert.Equal(t, []string{"F2", "G1"}, names(input))
}

func TestRoomNumber(t *testing.T) {
	assert.Equal(t, 10, RoomNumber("F10"))
	assert.Equal(t, 12, RoomNumber("G-1/2"))
	assert.Equal(t, 0, RoomNumber("Annex"))
	assert.Equal(t, 0, RoomNumber(""))
}

func TestFloorRank(t *testing.T) {
	assert.Equal(t, 0, FloorRank("G1"))
	assert.Equal(t, 1, FloorRank("f7"))
	assert.Equal(t, 2, FloorRank("S1"))
	assert.Equal(t, 3, FloorRank("T4"))
	assert.Equal(t, 4, FloorRank("B1"))
	assert.Equal(t, 4, FloorRank(""))
}
