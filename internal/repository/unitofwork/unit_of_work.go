package unitofwork

import (
	"context"

	"featured-listing-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FeatureRecordRepository() contract.FeatureRecordRepository
	PriceRepository() contract.PriceRepository
	PaymentAttemptRepository() contract.PaymentAttemptRepository
}
