// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/pkg/events"
	pktNats "featured-listing-be/pkg/nats"
	"featured-listing-be/pkg/payment"

	"github.com/google/uuid"
)

type IPaymentService interface {
	// CompleteFeaturePurchase verifies a gateway transaction reference and, on
	// first success, opens (or extends) the resource's placement window.
	// Idempotent on the reference: duplicate webhook deliveries return the
	// record created by the first delivery.
	CompleteFeaturePurchase(ctx context.Context, providerName, transactionRef string, params CreateFeatureParams) (*entity.FeatureRecord, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	providers      *payment.Registry
	pricing        IPricingService
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	verifyTimeout  time.Duration
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	providers *payment.Registry,
	pricing IPricingService,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	verifyTimeout time.Duration,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		providers:      providers,
		pricing:        pricing,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		verifyTimeout:  verifyTimeout,
	}
}

func (s *paymentService) CompleteFeaturePurchase(ctx context.Context, providerName, transactionRef string, params CreateFeatureParams) (*entity.FeatureRecord, error) {
	if transactionRef == "" {
		return nil, apperror.InvalidArgument("transaction reference is required")
	}
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}
	provider, err := s.providers.Get(providerName)
	if err != nil {
		return nil, err
	}

	// Fast path: the reference was already processed.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if existing, err := s.findProcessed(ctx, uow, transactionRef); err != nil || existing != nil {
		return existing, err
	}

	// Verify before any mutation and without holding any store lock. A
	// timeout here surfaces as TransientError; retrying with the same
	// reference is safe.
	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()
	verification, err := provider.VerifyTransaction(vctx, transactionRef)
	if err != nil {
		return nil, err
	}
	if !verification.Success {
		return nil, apperror.PaymentFailed("provider %s reports reference %s unpaid", providerName, transactionRef)
	}
	s.checkAmount(ctx, params, verification, transactionRef)

	record, extended, err := s.activate(ctx, providerName, transactionRef, params, verification)
	if err != nil {
		return nil, err
	}

	s.emitActivated(ctx, record, providerName, transactionRef, verification.Amount, extended)
	return record, nil
}

// findProcessed returns the record already linked to the reference, if any.
func (s *paymentService) findProcessed(ctx context.Context, uow unitofwork.UnitOfWork, transactionRef string) (*entity.FeatureRecord, error) {
	attempt, err := uow.PaymentAttemptRepository().FindByRef(ctx, transactionRef)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, nil
	}
	if attempt.FeatureRecordId != nil {
		record, err := uow.FeatureRecordRepository().FindOne(ctx, specification.ByID{ID: *attempt.FeatureRecordId})
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}
	}
	// Attempt row without a surviving record: the record was hard-deleted by
	// an admin afterwards. The payment is still settled, so report success
	// by falling back to the ref tag on records.
	record, err := uow.FeatureRecordRepository().FindOne(ctx, specification.ByTransactionRef{Ref: transactionRef})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.Conflict("transaction %s was processed but its placement no longer exists", transactionRef)
	}
	return record, nil
}

// activate claims the reference and opens or extends the window in one
// transaction. The unique index on payment_attempts.transaction_ref makes the
// claim atomic: a concurrent duplicate gets a conflict and reads the winner.
func (s *paymentService) activate(ctx context.Context, providerName, transactionRef string, params CreateFeatureParams, verification *entity.Verification) (*entity.FeatureRecord, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer uow.Rollback()

	attempt := &entity.PaymentAttempt{
		Id:             uuid.New(),
		Provider:       providerName,
		TransactionRef: transactionRef,
		Amount:         verification.Amount,
		PayerIdentity:  verification.PayerIdentity,
		Status:         entity.PaymentAttemptStatusVerified,
		RawPayload:     verification.RawPayload,
	}
	if err := uow.PaymentAttemptRepository().Create(ctx, attempt); err != nil {
		uow.Rollback()
		if apperror.IsKind(err, apperror.KindConflict) {
			// Lost the race; the winner has committed by the time the unique
			// index released our insert.
			fresh := s.uowFactory.NewUnitOfWork(ctx)
			record, ferr := s.findProcessed(ctx, fresh, transactionRef)
			if ferr != nil {
				return nil, false, ferr
			}
			if record != nil {
				return record, false, nil
			}
		}
		return nil, false, err
	}

	now := time.Now()
	recordRepo := uow.FeatureRecordRepository()

	// A paid purchase never collides into an error: if the resource already
	// holds a live window, the purchase extends it instead.
	live, err := recordRepo.FindOne(ctx,
		specification.ByResource{ResourceType: params.ResourceType, ResourceId: params.ResourceId},
		specification.LiveAt{Now: now},
	)
	if err != nil {
		return nil, false, err
	}

	var record *entity.FeatureRecord
	extended := false
	if live != nil {
		record, err = recordRepo.ExtendWindow(ctx, live.Id, params.DurationDays)
		extended = true
	} else {
		record = &entity.FeatureRecord{
			Id:             uuid.New(),
			ResourceType:   params.ResourceType,
			ResourceId:     params.ResourceId,
			VendorId:       params.VendorId,
			Scope:          params.Scope,
			ScopeState:     params.ScopeState,
			FeaturedFrom:   now,
			FeaturedTo:     now.AddDate(0, 0, params.DurationDays),
			TransactionRef: &transactionRef,
			Provider:       &providerName,
		}
		err = recordRepo.Create(ctx, record)
	}
	if err != nil {
		return nil, false, err
	}

	if err := uow.PaymentAttemptRepository().LinkFeatureRecord(ctx, attempt.Id, record.Id); err != nil {
		return nil, false, err
	}

	if err := uow.Commit(); err != nil {
		return nil, false, err
	}
	return record, extended, nil
}

// checkAmount flags underpayment for the ops team without blocking
// activation; the gateway has already settled the money.
func (s *paymentService) checkAmount(ctx context.Context, params CreateFeatureParams, verification *entity.Verification, transactionRef string) {
	code, ok := durationDaysToCode(params.DurationDays)
	if !ok {
		return
	}
	expected, err := s.pricing.GetPrice(ctx, params.Scope, code)
	if err != nil || expected == 0 {
		return
	}
	if verification.Amount < expected {
		s.logger.Warn("PaymentService", "verified amount below price table", map[string]interface{}{
			"transaction_ref": transactionRef,
			"amount":          verification.Amount,
			"expected":        expected,
		})
	}
}

func durationDaysToCode(days int) (entity.DurationCode, bool) {
	switch days {
	case entity.DurationCode7Days.Days():
		return entity.DurationCode7Days, true
	case entity.DurationCode1Month.Days():
		return entity.DurationCode1Month, true
	case entity.DurationCode6Months.Days():
		return entity.DurationCode6Months, true
	case entity.DurationCode1Year.Days():
		return entity.DurationCode1Year, true
	}
	return "", false
}

func (s *paymentService) emitActivated(ctx context.Context, record *entity.FeatureRecord, providerName, transactionRef string, amount int64, extended bool) {
	if s.publisher != nil {
		msg := &dto.PublishFeatureActivatedMessage{
			FeatureRecordId: record.Id,
			VendorId:        record.VendorId,
			ResourceType:    string(record.ResourceType),
			ResourceId:      record.ResourceId,
			Provider:        providerName,
			TransactionRef:  transactionRef,
			Amount:          amount,
			FeaturedTo:      record.FeaturedTo,
			Extended:        extended,
		}
		if err := s.publisher.PublishFeatureActivated(ctx, msg); err != nil {
			s.logger.Warn("PaymentService", "failed to publish receipt message", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "FEATURE_ACTIVATED",
			Data: map[string]interface{}{
				"feature_record_id": record.Id,
				"vendor_id":         record.VendorId,
				"resource_type":     record.ResourceType,
				"resource_id":       record.ResourceId,
				"provider":          providerName,
				"transaction_ref":   transactionRef,
				"amount":            amount,
				"featured_to":       record.FeaturedTo,
				"extended":          extended,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("PaymentService", "failed to publish FEATURE_ACTIVATED event", map[string]interface{}{"error": err.Error()})
		}
	}
}
