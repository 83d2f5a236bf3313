package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentAttempt is the idempotency ledger for gateway verifications. The
// unique transaction_ref index turns check-then-create into insert-or-fetch:
// duplicate webhook deliveries collide here instead of creating two records.
type PaymentAttempt struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider        string         `gorm:"type:varchar(32);not null"`
	TransactionRef  string         `gorm:"type:varchar(128);not null;uniqueIndex"`
	Amount          int64          `gorm:"not null;default:0"`
	PayerIdentity   string         `gorm:"type:varchar(255)"`
	Status          string         `gorm:"type:varchar(16);not null"`
	FeatureRecordId *uuid.UUID     `gorm:"type:uuid;index"`
	RawPayload      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}
