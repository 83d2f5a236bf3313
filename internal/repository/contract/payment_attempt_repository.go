package contract

import (
	"context"

	"featured-listing-be/internal/entity"

	"github.com/google/uuid"
)

type PaymentAttemptRepository interface {
	// Create inserts the attempt. A second insert with the same transaction
	// reference fails with an apperror.KindConflict error; callers treat that
	// as "already processed" and fetch the existing attempt instead.
	Create(ctx context.Context, attempt *entity.PaymentAttempt) error
	FindByRef(ctx context.Context, transactionRef string) (*entity.PaymentAttempt, error)
	// LinkFeatureRecord points a claimed attempt at the record it produced.
	LinkFeatureRecord(ctx context.Context, attemptId, recordId uuid.UUID) error
}
