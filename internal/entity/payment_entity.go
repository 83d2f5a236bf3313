package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentAttemptStatus string

const (
	PaymentAttemptStatusVerified PaymentAttemptStatus = "verified"
	PaymentAttemptStatusFailed   PaymentAttemptStatus = "failed"
)

// PaymentAttempt records the outcome of one gateway transaction reference.
// TransactionRef is unique: the insert is what makes CompleteFeaturePurchase
// idempotent under duplicate webhook deliveries.
type PaymentAttempt struct {
	Id              uuid.UUID
	Provider        string
	TransactionRef  string
	Amount          int64
	PayerIdentity   string
	Status          PaymentAttemptStatus
	FeatureRecordId *uuid.UUID
	RawPayload      []byte // provider response as returned, for dispute audits
	CreatedAt       time.Time
}

// Verification is a provider's verdict on a transaction reference.
type Verification struct {
	Success       bool
	Amount        int64
	PayerIdentity string
	RawPayload    []byte
}
