package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database is a DBTX that can open transactions.
type Database interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Rooms   RoomRepository
	Tenants TenantRepository
}

// TxRunner runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(repos Repos) error) error
}

// Store owns the pool-bound repositories and opens transactions.
type Store struct {
	db Database

	Rooms   RoomRepository
	Tenants TenantRepository
	Users   UserRepository
}

func NewStore(db Database) *Store {
	return &Store{
		db:      db,
		Rooms:   NewRoomRepository(db),
		Tenants: NewTenantRepository(db),
		Users:   NewUserRepository(db),
	}
}

func (s *Store) InTx(ctx context.Context, fn func(repos Repos) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := Repos{
		Rooms:   NewRoomRepository(tx),
		Tenants: NewTenantRepository(tx),
	}
	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", mapPgError(err))
	}
	return nil
}
