package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/internal/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client is a thin JSON client for the Mercado Pago /v1/payments API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *logrus.Logger
}

func NewClient(cfg config.MercadoPagoConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         log,
	}
}

type payerRequest struct {
	Email          string               `json:"email"`
	FirstName      string               `json:"first_name,omitempty"`
	LastName       string               `json:"last_name,omitempty"`
	Identification *identificationBlock `json:"identification,omitempty"`
}

type identificationBlock struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type createPaymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	Token             string       `json:"token,omitempty"`
	Installments      int          `json:"installments,omitempty"`
	Payer             payerRequest `json:"payer"`
}

func (c *Client) CreatePayment(ctx context.Context, req *gateway.ChargeRequest) (*gateway.Charge, error) {
	body := createPaymentRequest{
		TransactionAmount: req.Amount.InexactFloat64(),
		Description:       req.Description,
		Payer: payerRequest{
			Email: req.PayerEmail,
		},
	}

	switch req.Method {
	case "pix":
		body.PaymentMethodID = "pix"
		body.Payer.FirstName = req.PayerFirstName
		body.Payer.LastName = req.PayerLastName
	default:
		body.PaymentMethodID = req.CardMethodID
		body.Token = req.CardToken
		body.Installments = req.Installments
		if body.Installments == 0 {
			body.Installments = 1
		}
		body.Payer.Identification = &identificationBlock{
			Type:   req.PayerDocType,
			Number: req.PayerDocNumber,
		}
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/payments", body)
	if err != nil {
		return nil, err
	}
	return chargeFromRaw(raw), nil
}

func (c *Client) GetPayment(ctx context.Context, externalID string) (*gateway.Charge, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v1/payments/"+externalID, nil)
	if err != nil {
		return nil, err
	}
	return chargeFromRaw(raw), nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// Mercado Pago deduplicates retried charges by this header
		req.Header.Set("X-Idempotency-Key", uuid.New().String())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debugf("mercadopago %s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mercadopago %s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}

// chargeFromRaw maps the gateway response onto the port type. The payment id
// comes back as a JSON number; it is normalized to a string.
func chargeFromRaw(raw map[string]interface{}) *gateway.Charge {
	charge := &gateway.Charge{Raw: raw}

	switch id := raw["id"].(type) {
	case float64:
		charge.ExternalID = fmt.Sprintf("%.0f", id)
	case string:
		charge.ExternalID = id
	}

	if status, ok := raw["status"].(string); ok {
		charge.Status = status
	}
	if method, ok := raw["payment_method_id"].(string); ok {
		charge.Method = method
	}

	// point_of_interaction.transaction_data carries the PIX QR payloads
	if poi, ok := raw["point_of_interaction"].(map[string]interface{}); ok {
		if td, ok := poi["transaction_data"].(map[string]interface{}); ok {
			if qr, ok := td["qr_code"].(string); ok {
				charge.PixQRCode = qr
			}
			if qr64, ok := td["qr_code_base64"].(string); ok {
				charge.PixQRCodeBase64 = qr64
			}
		}
	}

	return charge
}
