// FILE: internal/service/feature_service.go
package service

import (
	"context"
	"errors"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateFeatureParams is everything needed to open a placement window.
// TransactionRef/Provider are set on the paid path and nil for admin creates.
type CreateFeatureParams struct {
	ResourceType   entity.ResourceType
	ResourceId     string
	VendorId       uuid.UUID
	Scope          entity.FeatureScope
	ScopeState     string
	DurationDays   int
	TransactionRef *string
	Provider       *string
}

// ListFeaturesFilter narrows the admin listing. Status accepts
// active/scheduled/expired/all; Query matches vendor name/email (via the
// vendor directory) or the resource id.
type ListFeaturesFilter struct {
	Status       string
	ResourceType string
	Query        string
}

type IFeatureService interface {
	Create(ctx context.Context, params CreateFeatureParams) (*entity.FeatureRecord, error)
	Extend(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error)
	Unfeature(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error)
	List(ctx context.Context, filter ListFeaturesFilter, page, pageSize int) ([]*entity.FeatureRecord, int64, error)
}

type featureService struct {
	uowFactory unitofwork.RepositoryFactory
	vendorDir  vendorSearcher
}

// vendorSearcher is the slice of the vendor directory List needs.
type vendorSearcher interface {
	SearchIds(ctx context.Context, query string) ([]uuid.UUID, error)
}

func NewFeatureService(uowFactory unitofwork.RepositoryFactory, vendorDir vendorSearcher) IFeatureService {
	return &featureService{
		uowFactory: uowFactory,
		vendorDir:  vendorDir,
	}
}

func validateCreateParams(params CreateFeatureParams) error {
	if !params.ResourceType.Valid() {
		return apperror.InvalidArgument("unknown resource type %q", params.ResourceType)
	}
	if params.ResourceId == "" {
		return apperror.InvalidArgument("resource id is required")
	}
	if !params.Scope.Valid() {
		return apperror.InvalidArgument("feature type must be local or global")
	}
	if params.Scope == entity.FeatureScopeLocal && params.ScopeState == "" {
		return apperror.InvalidArgument("state is required for local features")
	}
	if params.Scope == entity.FeatureScopeGlobal && params.ScopeState != "" {
		return apperror.InvalidArgument("state is not allowed for global features")
	}
	if params.DurationDays <= 0 {
		return apperror.InvalidArgument("duration must be at least one day")
	}
	return nil
}

func (s *featureService) Create(ctx context.Context, params CreateFeatureParams) (*entity.FeatureRecord, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	// One live window per resource. A second purchase goes through extend;
	// silent overlap is never allowed.
	live, err := uow.FeatureRecordRepository().FindOne(ctx,
		specification.ByResource{ResourceType: params.ResourceType, ResourceId: params.ResourceId},
		specification.LiveAt{Now: now},
	)
	if err != nil {
		return nil, err
	}
	if live != nil {
		return nil, apperror.Conflict("%s %s is already featured until %s",
			params.ResourceType, params.ResourceId, live.FeaturedTo.Format(time.RFC3339))
	}

	record := &entity.FeatureRecord{
		Id:             uuid.New(),
		ResourceType:   params.ResourceType,
		ResourceId:     params.ResourceId,
		VendorId:       params.VendorId,
		Scope:          params.Scope,
		ScopeState:     params.ScopeState,
		FeaturedFrom:   now,
		FeaturedTo:     now.AddDate(0, 0, params.DurationDays),
		TransactionRef: params.TransactionRef,
		Provider:       params.Provider,
	}

	if err := uow.FeatureRecordRepository().Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *featureService) Extend(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error) {
	if days <= 0 {
		return nil, apperror.InvalidArgument("extension must be at least one day")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.FeatureRecordRepository().ExtendWindow(ctx, id, days)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("feature record %s not found", id)
		}
		return nil, err
	}
	return record, nil
}

func (s *featureService) Unfeature(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.FeatureRecordRepository().CloseWindow(ctx, id, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("feature record %s not found", id)
		}
		return nil, err
	}
	return record, nil
}

func (s *featureService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeatureRecordRepository().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("feature record %s not found", id)
		}
		return err
	}
	return nil
}

func (s *featureService) Get(ctx context.Context, id uuid.UUID) (*entity.FeatureRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.FeatureRecordRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("feature record %s not found", id)
	}
	return record, nil
}

func (s *featureService) List(ctx context.Context, filter ListFeaturesFilter, page, pageSize int) ([]*entity.FeatureRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters, err := s.buildFilterSpecs(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.FeatureRecordRepository()

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	pageSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	rows, err := repo.FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *featureService) buildFilterSpecs(ctx context.Context, filter ListFeaturesFilter) ([]specification.Specification, error) {
	var specs []specification.Specification
	now := time.Now()

	switch filter.Status {
	case "", "all":
	case string(entity.FeatureStatusActive):
		specs = append(specs, specification.ActiveAt{Now: now})
	case string(entity.FeatureStatusScheduled):
		specs = append(specs, specification.ScheduledAt{Now: now})
	case string(entity.FeatureStatusExpired):
		specs = append(specs, specification.ExpiredAt{Now: now})
	default:
		return nil, apperror.InvalidArgument("unknown status filter %q", filter.Status)
	}

	if filter.ResourceType != "" {
		rt := entity.ResourceType(filter.ResourceType)
		if !rt.Valid() {
			return nil, apperror.InvalidArgument("unknown resource type %q", filter.ResourceType)
		}
		specs = append(specs, specification.Filter("resource_type", filter.ResourceType))
	}

	if filter.Query != "" {
		vendorIds, err := s.vendorDir.SearchIds(ctx, filter.Query)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.MatchQuery{Text: filter.Query, VendorIds: vendorIds})
	}

	return specs, nil
}
