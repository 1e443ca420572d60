package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a payment gateway client against the provider's
// REST API
func NewHTTPGateway(baseURL, apiKey string) domainRepo.PaymentGateway {
	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type chargePayload struct {
	OrderCode   string `json:"order_code"`
	PaymentCode string `json:"payment_code"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	ReturnURL   string `json:"return_url,omitempty"`
}

type chargeResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
	Status        string `json:"status"`
}

func (g *httpGateway) Charge(ctx context.Context, req domainRepo.ChargeRequest) (*domainRepo.ChargeResult, error) {
	payload := chargePayload{
		OrderCode:   req.OrderCode,
		PaymentCode: req.PaymentCode,
		Amount:      req.Amount,
		Currency:    "VND",
		Method:      req.Method,
		ReturnURL:   req.ReturnURL,
	}

	var resp chargeResponse
	if err := g.post(ctx, "/v1/charges", payload, &resp); err != nil {
		return nil, err
	}

	return &domainRepo.ChargeResult{
		TransactionID: resp.TransactionID,
		PaymentURL:    resp.PaymentURL,
		Succeeded:     resp.Status == "succeeded",
	}, nil
}

func (g *httpGateway) Refund(ctx context.Context, transactionID string, amount int64) error {
	payload := map[string]interface{}{
		"transaction_id": transactionID,
		"amount":         amount,
		"currency":       "VND",
	}
	return g.post(ctx, "/v1/refunds", payload, nil)
}

func (g *httpGateway) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 500 {
			return apperror.NewAppError(resp.StatusCode, fmt.Sprintf("payment provider error: %s", string(raw)))
		}
		return apperror.ErrPaymentFailed
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}
