package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"roomledger/internal/caching"
	"roomledger/internal/models"
	"roomledger/internal/presentation"
	"roomledger/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ErrStorageUnavailable is returned by publishing when no object store is
// configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

type ReportConfig struct {
	Bucket          string
	LinkExpiry      time.Duration
	LeaseWindowDays int
	SummaryTTL      time.Duration
}

// PublishedReport points at an uploaded occupancy PDF.
type PublishedReport struct {
	Bucket    string    `json:"bucket"`
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ReportService interface {
	OccupancyTable(ctx context.Context, opts presentation.TableOptions) (*presentation.Table, error)
	OccupancyPDF(ctx context.Context, opts presentation.TableOptions) ([]byte, error)
	PublishOccupancyPDF(ctx context.Context, opts presentation.TableOptions) (*PublishedReport, error)
	ExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error)
	RefreshExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error)
}

type reportService struct {
	roomRepo   repositories.RoomRepository
	tenantRepo repositories.TenantRepository
	rooms      RoomService
	storage    StorageService
	cache      caching.CacheService
	cfg        ReportConfig
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewReportService builds the report service. storage and cache may be nil;
// publishing then fails with ErrStorageUnavailable and lease summaries are
// always computed live.
func NewReportService(
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
	rooms RoomService,
	storage StorageService,
	cache caching.CacheService,
	cfg ReportConfig,
	logger logrus.FieldLogger,
) ReportService {
	if cfg.Bucket == "" {
		cfg.Bucket = "reports"
	}
	if cfg.LinkExpiry <= 0 {
		cfg.LinkExpiry = 24 * time.Hour
	}
	if cfg.LeaseWindowDays <= 0 {
		cfg.LeaseWindowDays = 30
	}
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 24 * time.Hour
	}
	return &reportService{
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		rooms:      rooms,
		storage:    storage,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *reportService) OccupancyTable(ctx context.Context, opts presentation.TableOptions) (*presentation.Table, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	tenants, err := s.tenantRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return presentation.BuildOccupancyTable(rooms, tenants, opts, s.now().UTC()), nil
}

func (s *reportService) OccupancyPDF(ctx context.Context, opts presentation.TableOptions) ([]byte, error) {
	table, err := s.OccupancyTable(ctx, opts)
	if err != nil {
		return nil, err
	}
	return presentation.RenderPDF(table)
}

func (s *reportService) PublishOccupancyPDF(ctx context.Context, opts presentation.TableOptions) (*PublishedReport, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	pdf, err := s.OccupancyPDF(ctx, opts)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	object := fmt.Sprintf("occupancy-%s.pdf", now.Format("20060102T150405Z"))

	if err := s.storage.EnsureBucketExists(ctx, s.cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket: %w", err)
	}
	if err := s.storage.Upload(ctx, s.cfg.Bucket, object, "application/pdf", bytes.NewReader(pdf), int64(len(pdf))); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, object, s.cfg.LinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign report link: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"bucket": s.cfg.Bucket, "object": object, "bytes": len(pdf)}).Info("occupancy report published")
	return &PublishedReport{
		Bucket:    s.cfg.Bucket,
		Object:    object,
		URL:       url,
		ExpiresAt: now.Add(s.cfg.LinkExpiry),
	}, nil
}

// ExpiringLeases serves the cached summary and computes it live on a miss.
// Cache failures are logged and never fail the request.
func (s *reportService) ExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error) {
	if s.cache != nil {
		summary, err := s.cache.GetLeaseSummary(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("lease summary cache read failed")
		} else if summary != nil {
			return summary, nil
		}
	}
	return s.RefreshExpiringLeases(ctx)
}

// RefreshExpiringLeases recomputes the summary and stores it in the cache.
func (s *reportService) RefreshExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error) {
	rooms, err := s.rooms.ExpiringLeases(ctx, s.cfg.LeaseWindowDays)
	if err != nil {
		return nil, err
	}

	summary := &models.LeaseExpirySummary{
		GeneratedAt: s.now().UTC(),
		WindowDays:  s.cfg.LeaseWindowDays,
		Rooms:       presentation.SortRoomsForDisplay(rooms),
	}

	if s.cache != nil {
		if err := s.cache.SetLeaseSummary(ctx, summary, s.cfg.SummaryTTL); err != nil {
			s.logger.WithError(err).Warn("lease summary cache write failed")
		}
	}
	return summary, nil
}
