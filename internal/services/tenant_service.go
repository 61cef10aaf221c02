package services

import (
	"context"
	"errors"
	"strings"

	"roomledger/internal/common"
	"roomledger/internal/models"
	"roomledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TenantService interface {
	List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Create(ctx context.Context, req *TenantRequest) (*models.Tenant, error)
	Update(ctx context.Context, id uuid.UUID, req *TenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	EmptyRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
}

// TenantRequest is the full set of tenant fields. Create and update both
// require every field except email; update and registration may omit roomId.
type TenantRequest struct {
	Name              string  `json:"name"`
	FatherName        string  `json:"fatherName"`
	VillageName       string  `json:"villageName"`
	Tehsil            string  `json:"tehsil"`
	PoliceStation     string  `json:"policeStation"`
	District          string  `json:"district"`
	Pincode           string  `json:"pincode"`
	State             string  `json:"state"`
	Email             *string `json:"email"`
	AadharNumber      string  `json:"aadharNumber"`
	PhoneNumber       string  `json:"phoneNumber"`
	FatherPhoneNumber string  `json:"fatherPhoneNumber"`
	RoomID            string  `json:"roomId"`
}

// toTenant validates every field and returns the normalised tenant. prefix
// is prepended to field names, e.g. "tenants[2].".
func (req *TenantRequest) toTenant(prefix string) (*models.Tenant, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"fatherName", req.FatherName},
		{"villageName", req.VillageName},
		{"tehsil", req.Tehsil},
		{"policeStation", req.PoliceStation},
		{"district", req.District},
		{"pincode", req.Pincode},
		{"state", req.State},
		{"aadharNumber", req.AadharNumber},
		{"phoneNumber", req.PhoneNumber},
		{"fatherPhoneNumber", req.FatherPhoneNumber},
	}
	for _, r := range required {
		if err := common.ValidateRequiredString(r.value, prefix+r.field); err != nil {
			return nil, invalid(prefix+r.field, err)
		}
	}

	if !common.IsValidAadharNumber(req.AadharNumber) {
		return nil, invalidf(prefix+"aadharNumber", "%saadharNumber must be exactly %d digits", prefix, common.AadharDigits)
	}
	if !common.IsValidPhoneNumber(req.PhoneNumber) {
		return nil, invalidf(prefix+"phoneNumber", "%sphoneNumber must be exactly %d digits", prefix, common.PhoneDigits)
	}
	if !common.IsValidPhoneNumber(req.FatherPhoneNumber) {
		return nil, invalidf(prefix+"fatherPhoneNumber", "%sfatherPhoneNumber must be exactly %d digits", prefix, common.PhoneDigits)
	}
	if !common.IsValidPincode(req.Pincode) {
		return nil, invalidf(prefix+"pincode", "%spincode must be exactly %d digits", prefix, common.PincodeDigits)
	}

	tenant := &models.Tenant{
		Name:              strings.TrimSpace(req.Name),
		FatherName:        strings.TrimSpace(req.FatherName),
		VillageName:       strings.TrimSpace(req.VillageName),
		Tehsil:            strings.TrimSpace(req.Tehsil),
		PoliceStation:     strings.TrimSpace(req.PoliceStation),
		District:          strings.TrimSpace(req.District),
		Pincode:           common.DigitsOnly(req.Pincode),
		State:             strings.TrimSpace(req.State),
		AadharNumber:      common.DigitsOnly(req.AadharNumber),
		PhoneNumber:       common.DigitsOnly(req.PhoneNumber),
		FatherPhoneNumber: common.DigitsOnly(req.FatherPhoneNumber),
	}
	if req.Email != nil {
		if email := strings.TrimSpace(*req.Email); email != "" {
			tenant.Email = &email
		}
	}

	if strings.TrimSpace(req.RoomID) != "" {
		roomID, err := common.ValidateUUID(req.RoomID, prefix+"roomId")
		if err != nil {
			return nil, invalid(prefix+"roomId", err)
		}
		tenant.RoomID = roomID
	}

	return tenant, nil
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	roomRepo   repositories.RoomRepository
	tx         repositories.TxRunner
	logger     logrus.FieldLogger
}

func NewTenantService(tenantRepo repositories.TenantRepository, roomRepo repositories.RoomRepository, tx repositories.TxRunner, logger logrus.FieldLogger) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
		tx:         tx,
		logger:     logger,
	}
}

func (s *tenantService) List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error) {
	return s.tenantRepo.List(ctx, roomID)
}

func (s *tenantService) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error) {
	return s.tenantRepo.ListByRoom(ctx, roomID)
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTenantNotFound
	}
	return tenant, err
}

// Create writes the tenant and relies on the room foreign key rather than a
// prior existence check.
func (s *tenantService) Create(ctx context.Context, req *TenantRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.RoomID) == "" {
		return nil, invalidf("roomId", "roomId is required")
	}

	tenant, err := req.toTenant("")
	if err != nil {
		return nil, err
	}
	tenant.ID = uuid.New()

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, mapTenantWriteError(err)
	}

	room, err := s.roomRepo.GetByID(ctx, tenant.RoomID)
	if err != nil {
		return nil, mapRoomError(err)
	}
	tenant.Room = room

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenant.ID,
		"room_id":   tenant.RoomID,
	}).Info("tenant created")
	return tenant, nil
}

// Update replaces every field of an existing tenant. Omitting roomId keeps
// the current room.
func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req *TenantRequest) (*models.Tenant, error) {
	tenant, err := req.toTenant("")
	if err != nil {
		return nil, err
	}

	existing, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTenantWriteError(err)
	}

	tenant.ID = id
	if tenant.RoomID == uuid.Nil {
		tenant.RoomID = existing.RoomID
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, mapTenantWriteError(err)
	}

	if tenant.RoomID == existing.RoomID {
		tenant.Room = existing.Room
		return tenant, nil
	}

	room, err := s.roomRepo.GetByID(ctx, tenant.RoomID)
	if err != nil {
		return nil, mapRoomError(err)
	}
	tenant.Room = room
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tenantRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTenantNotFound
	}
	return err
}

// EmptyRoom deletes every tenant of the room. The room row is locked for
// the duration so the count reflects exactly what was removed.
func (s *tenantService) EmptyRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := s.tx.InTx(ctx, func(repos repositories.Repos) error {
		if err := repos.Rooms.LockByID(ctx, roomID); err != nil {
			return mapRoomError(err)
		}

		deleted, err := repos.Tenants.DeleteByRoom(ctx, roomID)
		if err != nil {
			return err
		}
		count = deleted
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"room_id": roomID,
		"count":   count,
	}).Info("room emptied")
	return count, nil
}
