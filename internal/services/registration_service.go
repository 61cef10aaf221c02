package services

import (
	"context"
	"fmt"

	"roomledger/internal/models"
	"roomledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RegistrationService handles the registration form: one room's rent and
// period plus the tenants moving in, written all-or-nothing.
type RegistrationService interface {
	Register(ctx context.Context, roomID uuid.UUID, req *RegistrationRequest) (*models.Room, error)
}

type RegistrationRequest struct {
	RentAmount *int            `json:"rentAmount"`
	PeriodFrom *string         `json:"periodFrom"`
	PeriodTo   *string         `json:"periodTo"`
	Tenants    []TenantRequest `json:"tenants"`
}

type registrationService struct {
	tx     repositories.TxRunner
	logger logrus.FieldLogger
}

func NewRegistrationService(tx repositories.TxRunner, logger logrus.FieldLogger) RegistrationService {
	return &registrationService{tx: tx, logger: logger}
}

func (s *registrationService) Register(ctx context.Context, roomID uuid.UUID, req *RegistrationRequest) (*models.Room, error) {
	roomReq := UpdateRoomRequest{RentAmount: req.RentAmount, PeriodFrom: req.PeriodFrom, PeriodTo: req.PeriodTo}
	patch, err := roomReq.toPatch()
	if err != nil {
		return nil, err
	}

	if len(req.Tenants) == 0 {
		return nil, invalidf("tenants", "at least one tenant is required")
	}

	tenants := make([]*models.Tenant, 0, len(req.Tenants))
	seen := make(map[string]int, len(req.Tenants))
	for i := range req.Tenants {
		prefix := fmt.Sprintf("tenants[%d].", i)
		tenant, err := req.Tenants[i].toTenant(prefix)
		if err != nil {
			return nil, err
		}
		if j, dup := seen[tenant.AadharNumber]; dup {
			return nil, invalidf(prefix+"aadharNumber", "%saadharNumber repeats tenants[%d]", prefix, j)
		}
		seen[tenant.AadharNumber] = i

		tenant.ID = uuid.New()
		tenant.RoomID = roomID
		tenants = append(tenants, tenant)
	}

	var room *models.Room
	err = s.tx.InTx(ctx, func(repos repositories.Repos) error {
		updated, err := repos.Rooms.Update(ctx, roomID, patch)
		if err != nil {
			return mapRoomError(err)
		}

		for _, tenant := range tenants {
			if err := repos.Tenants.Create(ctx, tenant); err != nil {
				return mapTenantWriteError(err)
			}
		}

		updated.Tenants, err = repos.Tenants.ListByRoom(ctx, roomID)
		if err != nil {
			return err
		}
		room = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"room_id": roomID,
		"tenants": len(tenants),
	}).Info("tenants registered")
	return room, nil
}
