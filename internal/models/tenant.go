package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a person registered as an occupant of exactly one room.
type Tenant struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	FatherName        string    `json:"fatherName" db:"father_name"`
	VillageName       string    `json:"villageName" db:"village_name"`
	Tehsil            string    `json:"tehsil" db:"tehsil"`
	PoliceStation     string    `json:"policeStation" db:"police_station"`
	District          string    `json:"district" db:"district"`
	Pincode           string    `json:"pincode" db:"pincode"`
	State             string    `json:"state" db:"state"`
	Email             *string   `json:"email" db:"email"`
	AadharNumber      string    `json:"aadharNumber" db:"aadhar_number"`
	PhoneNumber       string    `json:"phoneNumber" db:"phone_number"`
	FatherPhoneNumber string    `json:"fatherPhoneNumber" db:"father_phone_number"`
	RoomID            uuid.UUID `json:"roomId" db:"room_id"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`

	Room *Room `json:"room,omitempty" db:"-"`
}
