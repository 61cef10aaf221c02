package repositories

import (
	"context"
	"time"

	"roomledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	CreateIfMissing(ctx context.Context, room *models.Room) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context) ([]*models.Room, error)
	Update(ctx context.Context, id uuid.UUID, patch models.RoomPatch) (*models.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LockByID(ctx context.Context, id uuid.UUID) error
	ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Room, error)
}

const roomColumns = `id, name, rent_amount, period_from, period_to, created_at, updated_at`

type roomRepo struct {
	db DBTX
}

func NewRoomRepository(db DBTX) RoomRepository {
	return &roomRepo{db: db}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(&room.ID, &room.Name, &room.RentAmount, &room.PeriodFrom, &room.PeriodTo, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return room, nil
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, name, rent_amount, period_from, period_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, room.ID, room.Name, room.RentAmount, room.PeriodFrom, room.PeriodTo).
		Scan(&room.CreatedAt, &room.UpdatedAt)
	return mapPgError(err)
}

// CreateIfMissing inserts room unless a room with the same name exists and
// reports whether a row was written.
func (r *roomRepo) CreateIfMissing(ctx context.Context, room *models.Room) (bool, error) {
	query := `
		INSERT INTO rooms (id, name, rent_amount, period_from, period_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (name) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, room.ID, room.Name, room.RentAmount, room.PeriodFrom, room.PeriodTo)
	if err != nil {
		return false, mapPgError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE id = $1
	`
	return scanRoom(r.db.QueryRow(ctx, query, id))
}

func (r *roomRepo) List(ctx context.Context) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		ORDER BY name ASC
	`
	return r.queryRooms(ctx, query)
}

// Update applies the non-nil fields of patch in a single statement, so a
// missing room yields ErrNotFound without any write.
func (r *roomRepo) Update(ctx context.Context, id uuid.UUID, patch models.RoomPatch) (*models.Room, error) {
	query := `
		UPDATE rooms
		SET rent_amount = COALESCE($2, rent_amount),
			period_from = COALESCE($3, period_from),
			period_to = COALESCE($4, period_to),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + roomColumns
	return scanRoom(r.db.QueryRow(ctx, query, id, patch.RentAmount, patch.PeriodFrom, patch.PeriodTo))
}

// Delete removes the room. The tenants.room_id foreign key rejects the
// delete while tenants still reference it.
func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LockByID takes a row lock on the room for the rest of the transaction.
func (r *roomRepo) LockByID(ctx context.Context, id uuid.UUID) error {
	query := `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`
	var locked uuid.UUID
	return mapPgError(r.db.QueryRow(ctx, query, id).Scan(&locked))
}

func (r *roomRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE period_to BETWEEN $1 AND $2
		ORDER BY period_to ASC, name ASC
	`
	return r.queryRooms(ctx, query, from, to)
}

func (r *roomRepo) queryRooms(ctx context.Context, query string, args ...any) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	rooms := []*models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, mapPgError(rows.Err())
}
