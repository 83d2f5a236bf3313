// FILE: internal/service/payment_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- in-memory fakes ---

type fakeFeatureRecordRepo struct {
	records map[uuid.UUID]*entity.FeatureRecord
}

func newFakeFeatureRecordRepo() *fakeFeatureRecordRepo {
	return &fakeFeatureRecordRepo{records: make(map[uuid.UUID]*entity.FeatureRecord)}
}

func (r *fakeFeatureRecordRepo) matches(rec *entity.FeatureRecord, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if rec.Id != s.ID {
				return false
			}
		case specification.ByTransactionRef:
			if rec.TransactionRef == nil || *rec.TransactionRef != s.Ref {
				return false
			}
		case specification.ByResource:
			if rec.ResourceType != s.ResourceType || rec.ResourceId != s.ResourceId {
				return false
			}
		case specification.LiveAt:
			if !s.Now.Before(rec.FeaturedTo) {
				return false
			}
		}
	}
	return true
}

func (r *fakeFeatureRecordRepo) Create(ctx context.Context, record *entity.FeatureRecord) error {
	cp := *record
	r.records[record.Id] = &cp
	return nil
}

func (r *fakeFeatureRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *fakeFeatureRecordRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureRecord, error) {
	for _, rec := range r.records {
		if r.matches(rec, specs) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFeatureRecordRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureRecord, error) {
	var out []*entity.FeatureRecord
	for _, rec := range r.records {
		if r.matches(rec, specs) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFeatureRecordRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if r.matches(rec, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeFeatureRecordRepo) CountActiveByType(ctx context.Context, now time.Time) (map[entity.ResourceType]int64, error) {
	out := make(map[entity.ResourceType]int64)
	for _, rec := range r.records {
		if rec.StatusAt(now) == entity.FeatureStatusActive {
			out[rec.ResourceType]++
		}
	}
	return out, nil
}

func (r *fakeFeatureRecordRepo) ExtendWindow(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, apperror.NotFound("feature record %s not found", id)
	}
	rec.FeaturedTo = rec.FeaturedTo.AddDate(0, 0, days)
	cp := *rec
	return &cp, nil
}

func (r *fakeFeatureRecordRepo) CloseWindow(ctx context.Context, id uuid.UUID, now time.Time) (*entity.FeatureRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, apperror.NotFound("feature record %s not found", id)
	}
	if now.Before(rec.FeaturedTo) {
		rec.FeaturedTo = now
	}
	cp := *rec
	return &cp, nil
}

type fakePaymentAttemptRepo struct {
	byRef map[string]*entity.PaymentAttempt
}

func newFakePaymentAttemptRepo() *fakePaymentAttemptRepo {
	return &fakePaymentAttemptRepo{byRef: make(map[string]*entity.PaymentAttempt)}
}

func (r *fakePaymentAttemptRepo) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	if _, exists := r.byRef[attempt.TransactionRef]; exists {
		return apperror.Conflict("transaction %s already claimed", attempt.TransactionRef)
	}
	cp := *attempt
	r.byRef[attempt.TransactionRef] = &cp
	return nil
}

func (r *fakePaymentAttemptRepo) FindByRef(ctx context.Context, transactionRef string) (*entity.PaymentAttempt, error) {
	attempt, ok := r.byRef[transactionRef]
	if !ok {
		return nil, nil
	}
	cp := *attempt
	return &cp, nil
}

func (r *fakePaymentAttemptRepo) LinkFeatureRecord(ctx context.Context, attemptId, recordId uuid.UUID) error {
	for _, attempt := range r.byRef {
		if attempt.Id == attemptId {
			rid := recordId
			attempt.FeatureRecordId = &rid
			return nil
		}
	}
	return apperror.NotFound("payment attempt %s not found", attemptId)
}

type fakeUnitOfWork struct {
	features *fakeFeatureRecordRepo
	attempts *fakePaymentAttemptRepo
	prices   contract.PriceRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }
func (u *fakeUnitOfWork) FeatureRecordRepository() contract.FeatureRecordRepository {
	return u.features
}
func (u *fakeUnitOfWork) PriceRepository() contract.PriceRepository { return u.prices }
func (u *fakeUnitOfWork) PaymentAttemptRepository() contract.PaymentAttemptRepository {
	return u.attempts
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeProvider struct {
	name         string
	verification *entity.Verification
	err          error
	calls        int
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) VerifyTransaction(ctx context.Context, transactionRef string) (*entity.Verification, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.verification, nil
}

type fakePricingService struct{}

func (f *fakePricingService) EnsureDefaults(ctx context.Context) error { return nil }
func (f *fakePricingService) GetPrice(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (int64, error) {
	return DefaultPriceTable[scope][code], nil
}
func (f *fakePricingService) SetPrice(ctx context.Context, req *dto.SetPriceRequest) (*dto.PriceEntryResponse, error) {
	return nil, nil
}
func (f *fakePricingService) ListAll(ctx context.Context) ([]*dto.PriceEntryResponse, error) {
	return nil, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- tests ---

func newTestPaymentService(provider *fakeProvider) (IPaymentService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		features: newFakeFeatureRecordRepo(),
		attempts: newFakePaymentAttemptRepo(),
	}
	svc := NewPaymentService(
		&fakeRepositoryFactory{uow: uow},
		payment.NewRegistry(provider),
		&fakePricingService{},
		nil,
		nil,
		noopLogger{},
		time.Second,
	)
	return svc, uow
}

func purchaseParams() CreateFeatureParams {
	return CreateFeatureParams{
		ResourceType: entity.ResourceTypeRestaurant,
		ResourceId:   "rest-001",
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeLocal,
		ScopeState:   "Lagos",
		DurationDays: 30,
	}
}

func TestCompleteFeaturePurchase_CreatesRecord(t *testing.T) {
	provider := &fakeProvider{
		name:         "paystack",
		verification: &entity.Verification{Success: true, Amount: 15000, PayerIdentity: "vendor@example.com"},
	}
	svc, uow := newTestPaymentService(provider)

	record, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-001", purchaseParams())
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, entity.ResourceTypeRestaurant, record.ResourceType)
	assert.NotNil(t, record.TransactionRef)
	assert.Equal(t, "ref-001", *record.TransactionRef)

	gap := record.FeaturedTo.Sub(record.FeaturedFrom)
	assert.InDelta(t, 30*24, gap.Hours(), 25, "window should span roughly 30 days")

	attempt, _ := uow.attempts.FindByRef(context.Background(), "ref-001")
	assert.NotNil(t, attempt)
	assert.NotNil(t, attempt.FeatureRecordId)
	assert.Equal(t, record.Id, *attempt.FeatureRecordId)
}

func TestCompleteFeaturePurchase_IdempotentOnRef(t *testing.T) {
	provider := &fakeProvider{
		name:         "paystack",
		verification: &entity.Verification{Success: true, Amount: 15000},
	}
	svc, uow := newTestPaymentService(provider)

	first, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-dup", purchaseParams())
	assert.NoError(t, err)

	second, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-dup", purchaseParams())
	assert.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	assert.Equal(t, 1, provider.calls, "duplicate delivery must not hit the gateway again")
	assert.Len(t, uow.features.records, 1)
}

func TestCompleteFeaturePurchase_ExtendsLiveWindow(t *testing.T) {
	provider := &fakeProvider{
		name:         "paystack",
		verification: &entity.Verification{Success: true, Amount: 15000},
	}
	svc, uow := newTestPaymentService(provider)

	params := purchaseParams()
	first, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-a", params)
	assert.NoError(t, err)

	second, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-b", params)
	assert.NoError(t, err)

	assert.Equal(t, first.Id, second.Id, "second purchase extends the live window")
	assert.Len(t, uow.features.records, 1)
	assert.True(t, second.FeaturedTo.After(first.FeaturedTo))

	gap := second.FeaturedTo.Sub(first.FeaturedTo)
	assert.InDelta(t, 30*24, gap.Hours(), 25)
}

func TestCompleteFeaturePurchase_ProviderDecline(t *testing.T) {
	provider := &fakeProvider{
		name:         "paystack",
		verification: &entity.Verification{Success: false},
	}
	svc, uow := newTestPaymentService(provider)

	record, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-bad", purchaseParams())
	assert.Nil(t, record)
	assert.True(t, apperror.IsKind(err, apperror.KindPaymentFailed))
	assert.Empty(t, uow.features.records)
	assert.Empty(t, uow.attempts.byRef, "a declined reference stays unclaimed")
}

func TestCompleteFeaturePurchase_TransientThenRetry(t *testing.T) {
	provider := &fakeProvider{
		name: "paystack",
		err:  apperror.Transient(context.DeadlineExceeded, "paystack verify timed out"),
	}
	svc, uow := newTestPaymentService(provider)

	record, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-retry", purchaseParams())
	assert.Nil(t, record)
	assert.True(t, apperror.IsKind(err, apperror.KindTransient))
	assert.Empty(t, uow.attempts.byRef)

	// Retry with the same reference after the gateway recovers.
	provider.err = nil
	provider.verification = &entity.Verification{Success: true, Amount: 15000}

	record, err = svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-retry", purchaseParams())
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 2, provider.calls)
}

func TestCompleteFeaturePurchase_UnknownProvider(t *testing.T) {
	provider := &fakeProvider{name: "paystack"}
	svc, _ := newTestPaymentService(provider)

	_, err := svc.CompleteFeaturePurchase(context.Background(), "flutterwave", "ref-x", purchaseParams())
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
	assert.Equal(t, 0, provider.calls)
}

func TestCompleteFeaturePurchase_ValidatesParams(t *testing.T) {
	provider := &fakeProvider{name: "paystack"}
	svc, _ := newTestPaymentService(provider)

	params := purchaseParams()
	params.Scope = entity.FeatureScopeGlobal // global must not carry a state

	_, err := svc.CompleteFeaturePurchase(context.Background(), "paystack", "ref-y", params)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, err = svc.CompleteFeaturePurchase(context.Background(), "paystack", "", purchaseParams())
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}
