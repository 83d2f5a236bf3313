package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
)

const ProviderName = "paystack"

const defaultBaseURL = "https://api.paystack.co"

type Provider struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func New(secretKey string, timeout time.Duration) *Provider {
	return &Provider{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// NewWithBaseURL exists for tests pointing at a stub server.
func NewWithBaseURL(secretKey, baseURL string, timeout time.Duration) *Provider {
	p := New(secretKey, timeout)
	p.baseURL = baseURL
	return p
}

func (p *Provider) Name() string {
	return ProviderName
}

// verifyResponse mirrors Paystack's GET /transaction/verify/:reference shape.
// Amounts arrive in kobo.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

func (p *Provider) VerifyTransaction(ctx context.Context, transactionRef string) (*entity.Verification, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, transactionRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.Transient(err, "paystack verification unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Transient(err, "paystack response unreadable")
	}

	if resp.StatusCode >= 500 {
		return nil, apperror.Transient(fmt.Errorf("paystack status %d", resp.StatusCode), "paystack verification unavailable")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.PaymentFailed("paystack rejected reference %s (status %d)", transactionRef, resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, apperror.Transient(err, "paystack response malformed")
	}
	if !vr.Status {
		return nil, apperror.PaymentFailed("paystack rejected reference %s: %s", transactionRef, vr.Message)
	}

	return &entity.Verification{
		Success:       vr.Data.Status == "success",
		Amount:        vr.Data.Amount / 100, // kobo -> naira
		PayerIdentity: vr.Data.Customer.Email,
		RawPayload:    body,
	}, nil
}
