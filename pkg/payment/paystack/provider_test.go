package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"featured-listing-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestVerifyTransactionSuccess(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"amount": 1500000,
				"customer": {"email": "vendor@example.com"}
			}
		}`))
	}))
	defer srv.Close()

	p := NewWithBaseURL("sk_test_x", srv.URL, 5*time.Second)
	v, err := p.VerifyTransaction(context.Background(), "ref-123")

	assert.NoError(t, err)
	assert.Equal(t, "/transaction/verify/ref-123", gotPath)
	assert.Equal(t, "Bearer sk_test_x", gotAuth)
	assert.True(t, v.Success)
	assert.Equal(t, int64(15000), v.Amount, "kobo converts to naira")
	assert.Equal(t, "vendor@example.com", v.PayerIdentity)
	assert.NotEmpty(t, v.RawPayload)
}

func TestVerifyTransactionAbandoned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": true, "data": {"status": "abandoned", "amount": 0}}`))
	}))
	defer srv.Close()

	p := NewWithBaseURL("sk_test_x", srv.URL, 5*time.Second)
	v, err := p.VerifyTransaction(context.Background(), "ref-abandoned")

	// The API call succeeded but the transaction was never paid.
	assert.NoError(t, err)
	assert.False(t, v.Success)
}

func TestVerifyTransactionUnknownRef(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	p := NewWithBaseURL("sk_test_x", srv.URL, 5*time.Second)
	_, err := p.VerifyTransaction(context.Background(), "ref-missing")

	assert.True(t, apperror.IsKind(err, apperror.KindPaymentFailed))
}

func TestVerifyTransactionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWithBaseURL("sk_test_x", srv.URL, 5*time.Second)
	_, err := p.VerifyTransaction(context.Background(), "ref-500")

	assert.True(t, apperror.IsKind(err, apperror.KindTransient), "5xx must be retryable")
}

func TestVerifyTransactionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewWithBaseURL("sk_test_x", srv.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.VerifyTransaction(ctx, "ref-slow")
	assert.True(t, apperror.IsKind(err, apperror.KindTransient))
}
