package testhelpers

import (
	"context"
	"io"
	"os"
	"testing"

	"roomledger/internal/models"
	"roomledger/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// the rooms and tenants tables. The test is skipped when the variable is
// unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	pool, err := database.NewPool(ctx, database.PoolConfig{URL: connString}, logger)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if _, err := database.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE tenants, rooms"); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	db := &TestDB{Pool: pool, Cleanup: pool.Close}
	t.Cleanup(db.Cleanup)
	return db
}

// SetupTestRoom inserts an empty room with the given name.
func SetupTestRoom(t *testing.T, db *TestDB, name string) *models.Room {
	t.Helper()

	room := &models.Room{ID: uuid.New(), Name: name, RentAmount: 4000}
	query := `
		INSERT INTO rooms (id, name, rent_amount, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query, room.ID, room.Name, room.RentAmount).
		Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test room: %v", err)
	}
	return room
}

// SetupTestTenant inserts a tenant into roomID. aadhar must be unique
// across the test.
func SetupTestTenant(t *testing.T, db *TestDB, roomID uuid.UUID, name, aadhar string) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		ID:                uuid.New(),
		Name:              name,
		FatherName:        "Test Father",
		VillageName:       "Rampur",
		Tehsil:            "Sadar",
		PoliceStation:     "Kotwali",
		District:          "Varanasi",
		Pincode:           "221001",
		State:             "Uttar Pradesh",
		AadharNumber:      aadhar,
		PhoneNumber:       "9876543210",
		FatherPhoneNumber: "9876501234",
		RoomID:            roomID,
	}

	query := `
		INSERT INTO tenants (
			id, name, father_name, village_name, tehsil, police_station, district,
			pincode, state, aadhar_number, phone_number, father_phone_number, room_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		tenant.ID, tenant.Name, tenant.FatherName, tenant.VillageName, tenant.Tehsil,
		tenant.PoliceStation, tenant.District, tenant.Pincode, tenant.State,
		tenant.AadharNumber, tenant.PhoneNumber, tenant.FatherPhoneNumber, tenant.RoomID).
		Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}
	return tenant
}
