package midtranspay

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

const ProviderName = "midtrans"

type Provider struct {
	client coreapi.Client
}

func New(serverKey string, production bool, timeout time.Duration) *Provider {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	// The SDK routes everything through this shared client; the bounded
	// timeout keeps a stalled gateway from pinning request handlers.
	midtrans.DefaultGoHttpClient = &http.Client{Timeout: timeout}

	var c coreapi.Client
	c.New(serverKey, env)
	return &Provider{client: c}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) VerifyTransaction(ctx context.Context, transactionRef string) (*entity.Verification, error) {
	resp, mErr := p.client.CheckTransaction(transactionRef)
	if mErr != nil {
		if mErr.StatusCode == 0 || mErr.StatusCode >= 500 {
			return nil, apperror.Transient(mErr, "midtrans verification unavailable")
		}
		return nil, apperror.PaymentFailed("midtrans rejected reference %s: %s", transactionRef, mErr.Message)
	}

	raw, _ := json.Marshal(resp)
	verification := &entity.Verification{
		Amount:        parseGrossAmount(resp.GrossAmount),
		PayerIdentity: resp.TransactionID,
		RawPayload:    raw,
	}

	switch resp.TransactionStatus {
	case "capture", "settlement":
		verification.Success = true
	default:
		verification.Success = false
	}
	return verification, nil
}

// parseGrossAmount converts midtrans' "15000.00" strings to whole units.
func parseGrossAmount(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}
