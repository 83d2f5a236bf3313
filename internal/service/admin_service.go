package service

import (
	"context"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/pkg/mailer"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/pkg/admin/mapper"
	"featured-listing-be/pkg/admin/overview"
	"featured-listing-be/pkg/events"
	pktNats "featured-listing-be/pkg/nats"

	"github.com/google/uuid"
)

// defaultExtendDays backs the dashboard quick-extend button.
const defaultExtendDays = 7

type IAdminService interface {
	Overview(ctx context.Context) (*dto.AdminOverviewResponse, error)
	List(ctx context.Context, filter ListFeaturesFilter, page, pageSize int) (*dto.FeatureListResponse, error)
	CreateFeature(ctx context.Context, req dto.AdminCreateFeatureRequest) (*entity.FeatureRecord, error)
	ExtendFeature(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error)
	UnfeatureFeature(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	features       IFeatureService
	resourceDir    contract.ResourceDirectory
	vendorDir      contract.VendorDirectory
	aggregator     *overview.Aggregator
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	features IFeatureService,
	resourceDir contract.ResourceDirectory,
	vendorDir contract.VendorDirectory,
	aggregator *overview.Aggregator,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		features:       features,
		resourceDir:    resourceDir,
		vendorDir:      vendorDir,
		aggregator:     aggregator,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *adminService) Overview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetOverview(ctx, uow)
}

func (s *adminService) List(ctx context.Context, filter ListFeaturesFilter, page, pageSize int) (*dto.FeatureListResponse, error) {
	rows, total, err := s.features.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.FeatureListResponse{
		Rows:  s.aggregator.Decorate(ctx, rows, time.Now()),
		Total: total,
		Page:  page,
		Limit: pageSize,
	}, nil
}

// CreateFeature opens a window without a payment, for partnerships and promo
// campaigns. Unlike the paid path, the listing must exist up front; there is
// no settled money forcing us to accept a dangling id.
func (s *adminService) CreateFeature(ctx context.Context, req dto.AdminCreateFeatureRequest) (*entity.FeatureRecord, error) {
	resourceType := entity.ResourceType(req.ResourceType)
	if !resourceType.Valid() {
		return nil, apperror.InvalidArgument("unknown resource type %q", req.ResourceType)
	}
	if _, err := s.resourceDir.FindById(ctx, resourceType, req.ResourceId); err != nil {
		return nil, err
	}
	if _, err := s.vendorDir.FindById(ctx, req.VendorId); err != nil {
		return nil, err
	}

	return s.features.Create(ctx, CreateFeatureParams{
		ResourceType: resourceType,
		ResourceId:   req.ResourceId,
		VendorId:     req.VendorId,
		Scope:        entity.FeatureScope(req.FeatureType),
		ScopeState:   req.State,
		DurationDays: req.DurationDays,
	})
}

func (s *adminService) ExtendFeature(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error) {
	if days == 0 {
		days = defaultExtendDays
	}
	record, err := s.features.Extend(ctx, id, days)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "FEATURE_EXTENDED", record, map[string]interface{}{"days": days})
	return record, nil
}

func (s *adminService) UnfeatureFeature(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error) {
	record, err := s.features.Unfeature(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "FEATURE_UNFEATURED", record, nil)
	s.notifyUnfeatured(ctx, record)
	return record, nil
}

func (s *adminService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	return s.features.Delete(ctx, id)
}

func (s *adminService) emitEvent(ctx context.Context, eventType string, record *entity.FeatureRecord, extra map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	data := map[string]interface{}{
		"feature_record_id": record.Id,
		"vendor_id":         record.VendorId,
		"resource_type":     record.ResourceType,
		"resource_id":       record.ResourceId,
		"featured_to":       record.FeaturedTo,
	}
	for k, v := range extra {
		data[k] = v
	}
	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("AdminService", "failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// notifyUnfeatured emails the vendor that their placement was ended early.
// Best effort: the window is already closed, a mail failure must not surface.
func (s *adminService) notifyUnfeatured(ctx context.Context, record *entity.FeatureRecord) {
	if s.emailService == nil {
		return
	}

	vendor, err := s.vendorDir.FindById(ctx, record.VendorId)
	if err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) {
			s.logger.Warn("AdminService", "failed to resolve vendor for unfeature notice", map[string]interface{}{
				"vendor_id": record.VendorId.String(),
				"error":     err.Error(),
			})
		}
		return
	}

	resourceName := mapper.DeletedResourceName
	if resource, err := s.resourceDir.FindById(ctx, record.ResourceType, record.ResourceId); err == nil {
		resourceName = resource.Name
	}

	if err := s.emailService.SendUnfeatureNotice(vendor.Email, resourceName, record.FeaturedTo); err != nil {
		s.logger.Warn("AdminService", "failed to send unfeature notice", map[string]interface{}{
			"vendor_id": record.VendorId.String(),
			"error":     err.Error(),
		})
	}
}
