package repositories

import (
	"context"

	"roomledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
}

const tenantColumns = `t.id, t.name, t.father_name, t.village_name, t.tehsil, t.police_station, t.district,
		t.pincode, t.state, t.email, t.aadhar_number, t.phone_number, t.father_phone_number, t.room_id,
		t.created_at, t.updated_at`

const joinedRoomColumns = `r.id, r.name, r.rent_amount, r.period_from, r.period_to, r.created_at, r.updated_at`

type tenantRepo struct {
	db DBTX
}

func NewTenantRepository(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

func tenantDest(t *models.Tenant) []any {
	return []any{
		&t.ID, &t.Name, &t.FatherName, &t.VillageName, &t.Tehsil, &t.PoliceStation, &t.District,
		&t.Pincode, &t.State, &t.Email, &t.AadharNumber, &t.PhoneNumber, &t.FatherPhoneNumber, &t.RoomID,
		&t.CreatedAt, &t.UpdatedAt,
	}
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	if err := row.Scan(tenantDest(tenant)...); err != nil {
		return nil, mapPgError(err)
	}
	return tenant, nil
}

func scanTenantWithRoom(row pgx.Row) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	room := &models.Room{}
	dest := append(tenantDest(tenant),
		&room.ID, &room.Name, &room.RentAmount, &room.PeriodFrom, &room.PeriodTo, &room.CreatedAt, &room.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, mapPgError(err)
	}
	tenant.Room = room
	return tenant, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, father_name, village_name, tehsil, police_station, district,
			pincode, state, email, aadhar_number, phone_number, father_phone_number, room_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		tenant.ID, tenant.Name, tenant.FatherName, tenant.VillageName, tenant.Tehsil, tenant.PoliceStation,
		tenant.District, tenant.Pincode, tenant.State, tenant.Email, tenant.AadharNumber, tenant.PhoneNumber,
		tenant.FatherPhoneNumber, tenant.RoomID,
	).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	return mapPgError(err)
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `, ` + joinedRoomColumns + `
		FROM tenants t
		JOIN rooms r ON r.id = t.room_id
		WHERE t.id = $1
	`
	return scanTenantWithRoom(r.db.QueryRow(ctx, query, id))
}

// List returns tenants newest first, each with its room. A non-nil roomID
// restricts the listing to that room without changing the order.
func (r *tenantRepo) List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `, ` + joinedRoomColumns + `
		FROM tenants t
		JOIN rooms r ON r.id = t.room_id
		WHERE ($1::uuid IS NULL OR t.room_id = $1)
		ORDER BY t.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	tenants := []*models.Tenant{}
	for rows.Next() {
		tenant, err := scanTenantWithRoom(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, mapPgError(rows.Err())
}

// ListByRoom returns the tenants of one room ordered by name.
func (r *tenantRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants t
		WHERE t.room_id = $1
		ORDER BY t.name ASC
	`
	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	tenants := []*models.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, mapPgError(rows.Err())
}

// Update replaces every mutable column of the tenant.
func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, father_name = $3, village_name = $4, tehsil = $5, police_station = $6,
			district = $7, pincode = $8, state = $9, email = $10, aadhar_number = $11,
			phone_number = $12, father_phone_number = $13, room_id = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		tenant.ID, tenant.Name, tenant.FatherName, tenant.VillageName, tenant.Tehsil, tenant.PoliceStation,
		tenant.District, tenant.Pincode, tenant.State, tenant.Email, tenant.AadharNumber, tenant.PhoneNumber,
		tenant.FatherPhoneNumber, tenant.RoomID,
	).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	return mapPgError(err)
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tenants WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tenantRepo) DeleteByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	query := `DELETE FROM tenants WHERE room_id = $1`
	tag, err := r.db.Exec(ctx, query, roomID)
	if err != nil {
		return 0, mapPgError(err)
	}
	return tag.RowsAffected(), nil
}
