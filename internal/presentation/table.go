package presentation

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"roomledger/internal/common"
	"roomledger/internal/models"

	"github.com/google/uuid"
)

// Header is one rendered column heading.
type Header struct {
	Key   Column `json:"key"`
	Label string `json:"label"`
}

// Row is one line of the occupancy table. Vacant rooms get a single row
// with empty tenant cells.
type Row struct {
	RoomID   uuid.UUID  `json:"roomId"`
	TenantID *uuid.UUID `json:"tenantId,omitempty"`
	Cells    []string   `json:"cells"`
}

type Table struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	Simplified  bool      `json:"simplified"`
	Headers     []Header  `json:"headers"`
	Rows        []Row     `json:"rows"`
}

// BuildOccupancyTable lays out rooms in display order with their tenants
// sorted by name.
func BuildOccupancyTable(rooms []*models.Room, tenants []*models.Tenant, opts TableOptions, generatedAt time.Time) *Table {
	cols := opts.Columns()

	table := &Table{
		Title:       "Tenant Register",
		GeneratedAt: generatedAt,
		Simplified:  opts.Simplified,
		Headers:     make([]Header, 0, len(cols)),
		Rows:        []Row{},
	}
	for _, c := range cols {
		table.Headers = append(table.Headers, Header{Key: c, Label: c.Label()})
	}

	byRoom := make(map[uuid.UUID][]*models.Tenant)
	for _, t := range tenants {
		byRoom[t.RoomID] = append(byRoom[t.RoomID], t)
	}

	for _, room := range SortRoomsForDisplay(rooms) {
		occupants := byRoom[room.ID]
		sort.SliceStable(occupants, func(i, j int) bool {
			return occupants[i].Name < occupants[j].Name
		})

		if len(occupants) == 0 {
			table.Rows = append(table.Rows, Row{RoomID: room.ID, Cells: cells(cols, room, nil)})
			continue
		}
		for _, t := range occupants {
			id := t.ID
			table.Rows = append(table.Rows, Row{RoomID: room.ID, TenantID: &id, Cells: cells(cols, room, t)})
		}
	}

	return table
}

func cells(cols []Column, room *models.Room, t *models.Tenant) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, cell(c, room, t))
	}
	return out
}

func cell(c Column, room *models.Room, t *models.Tenant) string {
	switch c {
	case ColumnRoom:
		return room.Name
	case ColumnRent:
		return strconv.Itoa(room.RentAmount)
	case ColumnPeriodFrom:
		return formatDate(room.PeriodFrom)
	case ColumnPeriodTo:
		return formatDate(room.PeriodTo)
	}

	if t == nil {
		if c == ColumnName {
			return "(vacant)"
		}
		return ""
	}

	switch c {
	case ColumnName:
		return t.Name
	case ColumnFatherName:
		return t.FatherName
	case ColumnAddress:
		return address(t)
	case ColumnAadhar:
		return common.FormatAadharNumber(t.AadharNumber)
	case ColumnPhone:
		return t.PhoneNumber
	case ColumnFatherPhone:
		return t.FatherPhoneNumber
	case ColumnEmail:
		if t.Email != nil {
			return *t.Email
		}
	}
	return ""
}

func address(t *models.Tenant) string {
	parts := []string{t.VillageName, t.Tehsil, t.PoliceStation, t.District, t.State}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	addr := strings.Join(kept, ", ")
	if t.Pincode != "" {
		addr += " - " + t.Pincode
	}
	return addr
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("02-01-2006")
}
