package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"roomledger/internal/models"
	"roomledger/internal/presentation"
	"roomledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RoomService interface {
	List(ctx context.Context) ([]*models.Room, error)
	ListForDisplay(ctx context.Context) ([]*models.Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Create(ctx context.Context, req *CreateRoomRequest) (*models.Room, error)
	Seed(ctx context.Context, names []string) (int, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExpiringLeases(ctx context.Context, withinDays int) ([]*models.Room, error)
}

type CreateRoomRequest struct {
	Name       string  `json:"name"`
	RentAmount *int    `json:"rentAmount"`
	PeriodFrom *string `json:"periodFrom"`
	PeriodTo   *string `json:"periodTo"`
}

// UpdateRoomRequest is a partial update; nil fields keep their stored value.
type UpdateRoomRequest struct {
	RentAmount *int    `json:"rentAmount"`
	PeriodFrom *string `json:"periodFrom"`
	PeriodTo   *string `json:"periodTo"`
}

// toPatch validates the request and derives periodTo when only periodFrom
// is supplied.
func (req *UpdateRoomRequest) toPatch() (models.RoomPatch, error) {
	if err := validateRent(req.RentAmount); err != nil {
		return models.RoomPatch{}, err
	}
	from, to, err := ResolvePeriod(req.PeriodFrom, req.PeriodTo)
	if err != nil {
		return models.RoomPatch{}, err
	}
	return models.RoomPatch{RentAmount: req.RentAmount, PeriodFrom: from, PeriodTo: to}, nil
}

type roomService struct {
	roomRepo   repositories.RoomRepository
	tenantRepo repositories.TenantRepository
	logger     logrus.FieldLogger
	now        func() time.Time
}

func NewRoomService(roomRepo repositories.RoomRepository, tenantRepo repositories.TenantRepository, logger logrus.FieldLogger) RoomService {
	return &roomService{
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *roomService) List(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.List(ctx)
}

// ListForDisplay orders rooms by floor marker and room number.
func (s *roomService) ListForDisplay(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return presentation.SortRoomsForDisplay(rooms), nil
}

func (s *roomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRoomError(err)
	}

	tenants, err := s.tenantRepo.ListByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Tenants = tenants
	return room, nil
}

func (s *roomService) Create(ctx context.Context, req *CreateRoomRequest) (*models.Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidf("name", "name is required")
	}
	if err := validateRent(req.RentAmount); err != nil {
		return nil, err
	}
	from, to, err := ResolvePeriod(req.PeriodFrom, req.PeriodTo)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		ID:         uuid.New(),
		Name:       name,
		PeriodFrom: from,
		PeriodTo:   to,
	}
	if req.RentAmount != nil {
		room.RentAmount = *req.RentAmount
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrDuplicateRoom
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"room_id": room.ID, "name": room.Name}).Info("room created")
	return room, nil
}

// Seed creates a room for every name that does not exist yet and returns
// how many were created.
func (s *roomService) Seed(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		ok, err := s.roomRepo.CreateIfMissing(ctx, &models.Room{ID: uuid.New(), Name: name})
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.logger.WithFields(logrus.Fields{"requested": len(names), "created": created}).Info("rooms seeded")
	return created, nil
}

func (s *roomService) Update(ctx context.Context, id uuid.UUID, req *UpdateRoomRequest) (*models.Room, error) {
	patch, err := req.toPatch()
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapRoomError(err)
	}
	return room, nil
}

// Delete removes an empty room. Occupied rooms are rejected by the tenants
// foreign key, leaving room and tenants untouched.
func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.roomRepo.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.WithField("room_id", id).Info("room deleted")
		return nil
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return ErrRoomOccupied
	case errors.Is(err, repositories.ErrNotFound):
		return ErrRoomNotFound
	}
	return err
}

// ExpiringLeases lists rooms whose lease ends within the next withinDays
// days, today included.
func (s *roomService) ExpiringLeases(ctx context.Context, withinDays int) ([]*models.Room, error) {
	if withinDays < 0 {
		return nil, invalidf("days", "days must not be negative")
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.roomRepo.ListExpiring(ctx, today, today.AddDate(0, 0, withinDays))
}
