package presentation

import (
	"errors"
	"fmt"
	"strings"
)

// Column identifies one column of the occupancy table.
type Column string

const (
	ColumnRoom        Column = "room"
	ColumnRent        Column = "rent"
	ColumnPeriodFrom  Column = "periodFrom"
	ColumnPeriodTo    Column = "periodTo"
	ColumnName        Column = "name"
	ColumnFatherName  Column = "fatherName"
	ColumnAddress     Column = "address"
	ColumnAadhar      Column = "aadhar"
	ColumnPhone       Column = "phone"
	ColumnFatherPhone Column = "fatherPhone"
	ColumnEmail       Column = "email"
)

// AllColumns is the full table layout in display order.
var AllColumns = []Column{
	ColumnRoom, ColumnName, ColumnFatherName, ColumnAddress, ColumnAadhar,
	ColumnPhone, ColumnFatherPhone, ColumnEmail, ColumnRent, ColumnPeriodFrom, ColumnPeriodTo,
}

var columnLabels = map[Column]string{
	ColumnRoom:        "Room",
	ColumnRent:        "Rent",
	ColumnPeriodFrom:  "From",
	ColumnPeriodTo:    "To",
	ColumnName:        "Name",
	ColumnFatherName:  "Father's Name",
	ColumnAddress:     "Address",
	ColumnAadhar:      "Aadhar",
	ColumnPhone:       "Phone",
	ColumnFatherPhone: "Father's Phone",
	ColumnEmail:       "Email",
}

// simplifiedColumns is the reduced set used for quick printouts.
var simplifiedColumns = map[Column]bool{
	ColumnRoom:       true,
	ColumnName:       true,
	ColumnPhone:      true,
	ColumnRent:       true,
	ColumnPeriodFrom: true,
	ColumnPeriodTo:   true,
}

func (c Column) Label() string {
	return columnLabels[c]
}

// TableOptions is the per-request display state of the occupancy table.
// The zero value shows every column.
type TableOptions struct {
	Visible    map[Column]bool
	Simplified bool
}

// ParseTableOptions builds options from comma separated column lists. An
// empty show list means all columns.
func ParseTableOptions(show, hide string, simplified bool) (TableOptions, error) {
	opts := TableOptions{Visible: make(map[Column]bool, len(AllColumns)), Simplified: simplified}

	shown, err := parseColumns(show)
	if err != nil {
		return TableOptions{}, err
	}
	if len(shown) == 0 {
		shown = AllColumns
	}
	for _, c := range shown {
		opts.Visible[c] = true
	}

	hidden, err := parseColumns(hide)
	if err != nil {
		return TableOptions{}, err
	}
	for _, c := range hidden {
		delete(opts.Visible, c)
	}

	if len(opts.Columns()) == 0 {
		return TableOptions{}, errors.New("no columns left to show")
	}
	return opts, nil
}

func parseColumns(list string) ([]Column, error) {
	var cols []Column
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c := Column(part)
		if _, ok := columnLabels[c]; !ok {
			return nil, fmt.Errorf("unknown column %q", part)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// Columns returns the visible columns in display order.
func (o TableOptions) Columns() []Column {
	cols := make([]Column, 0, len(AllColumns))
	for _, c := range AllColumns {
		if o.Visible != nil && !o.Visible[c] {
			continue
		}
		if o.Simplified && !simplifiedColumns[c] {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
