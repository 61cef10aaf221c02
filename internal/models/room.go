package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a rentable unit. Rent and lease period are shared by every tenant
// occupying it.
type Room struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	RentAmount int        `json:"rentAmount" db:"rent_amount"`
	PeriodFrom *time.Time `json:"periodFrom" db:"period_from"`
	PeriodTo   *time.Time `json:"periodTo" db:"period_to"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`

	Tenants []*Tenant `json:"tenants,omitempty" db:"-"`
}

// RoomPatch carries the fields of a partial room update. Nil means "keep".
type RoomPatch struct {
	RentAmount *int
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}
