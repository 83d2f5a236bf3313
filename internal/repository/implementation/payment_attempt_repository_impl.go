package implementation

import (
	"context"
	"errors"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/mapper"
	"featured-listing-be/internal/model"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type PaymentAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentAttemptMapper
}

func NewPaymentAttemptRepository(db *gorm.DB) contract.PaymentAttemptRepository {
	return &PaymentAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentAttemptMapper(),
	}
}

func (r *PaymentAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	m := r.mapper.ToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("transaction reference %s already recorded", attempt.TransactionRef)
		}
		return err
	}
	*attempt = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentAttemptRepositoryImpl) LinkFeatureRecord(ctx context.Context, attemptId, recordId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.PaymentAttempt{}).
		Where("id = ?", attemptId).
		Update("feature_record_id", recordId).Error
}

func (r *PaymentAttemptRepositoryImpl) FindByRef(ctx context.Context, transactionRef string) (*entity.PaymentAttempt, error) {
	var m model.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("transaction_ref = ?", transactionRef).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
