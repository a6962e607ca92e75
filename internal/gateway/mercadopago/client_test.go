package mercadopago

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/internal/gateway"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.MercadoPagoConfig{
		BaseURL:     serverURL,
		AccessToken: "TEST-token",
		Timeout:     5 * time.Second,
	}, log)
}

func TestCreatePayment_CreditCard(t *testing.T) {
	var captured struct {
		method        string
		path          string
		authorization string
		idempotency   string
		body          map[string]interface{}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.authorization = r.Header.Get("Authorization")
		captured.idempotency = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 12345678, "status": "approved", "payment_method_id": "visa"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	charge, err := client.CreatePayment(context.Background(), &gateway.ChargeRequest{
		Amount:         decimal.NewFromFloat(180.50),
		Description:    "Dermatology",
		Method:         "credit_card",
		PayerEmail:     "ana.lima@example.com",
		CardToken:      "tok-abc",
		CardMethodID:   "visa",
		PayerDocType:   "CPF",
		PayerDocNumber: "12345678900",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/v1/payments", captured.path)
	assert.Equal(t, "Bearer TEST-token", captured.authorization)
	assert.NotEmpty(t, captured.idempotency)

	assert.Equal(t, 180.50, captured.body["transaction_amount"])
	assert.Equal(t, "visa", captured.body["payment_method_id"])
	assert.Equal(t, "tok-abc", captured.body["token"])
	assert.Equal(t, float64(1), captured.body["installments"], "installments default to 1")
	payer := captured.body["payer"].(map[string]interface{})
	assert.Equal(t, "ana.lima@example.com", payer["email"])
	identification := payer["identification"].(map[string]interface{})
	assert.Equal(t, "CPF", identification["type"])
	assert.Equal(t, "12345678900", identification["number"])

	assert.Equal(t, "12345678", charge.ExternalID)
	assert.Equal(t, "approved", charge.Status)
	assert.Equal(t, "visa", charge.Method)
}

func TestCreatePayment_Pix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pix", body["payment_method_id"])
		payer := body["payer"].(map[string]interface{})
		assert.Equal(t, "Ana", payer["first_name"])
		assert.Equal(t, "Lima", payer["last_name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 987654,
			"status": "pending",
			"payment_method_id": "pix",
			"point_of_interaction": {
				"transaction_data": {
					"qr_code": "00020126pix-payload",
					"qr_code_base64": "aW1hZ2U="
				}
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	charge, err := client.CreatePayment(context.Background(), &gateway.ChargeRequest{
		Amount:         decimal.NewFromInt(180),
		Description:    "Dermatology",
		Method:         "pix",
		PayerEmail:     "ana.lima@example.com",
		PayerFirstName: "Ana",
		PayerLastName:  "Lima",
	})
	require.NoError(t, err)

	assert.Equal(t, "987654", charge.ExternalID)
	assert.Equal(t, "pending", charge.Status)
	assert.Equal(t, "00020126pix-payload", charge.PixQRCode)
	assert.Equal(t, "aW1hZ2U=", charge.PixQRCodeBase64)
	require.NotNil(t, charge.Raw)
	assert.Equal(t, "pending", charge.Raw["status"])
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/987654", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Idempotency-Key"), "reads carry no idempotency key")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "987654", "status": "approved"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	charge, err := client.GetPayment(context.Background(), "987654")
	require.NoError(t, err)

	assert.Equal(t, "987654", charge.ExternalID)
	assert.Equal(t, "approved", charge.Status)
}

func TestCreatePayment_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid card token"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreatePayment(context.Background(), &gateway.ChargeRequest{
		Amount:       decimal.NewFromInt(180),
		Method:       "credit_card",
		CardToken:    "bad-token",
		CardMethodID: "visa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "invalid card token")
}

func TestChargeFromRaw_IDNormalization(t *testing.T) {
	charge := chargeFromRaw(map[string]interface{}{"id": float64(123456789), "status": "pending"})
	assert.Equal(t, "123456789", charge.ExternalID)

	charge = chargeFromRaw(map[string]interface{}{"id": "abc-123", "status": "pending"})
	assert.Equal(t, "abc-123", charge.ExternalID)

	charge = chargeFromRaw(map[string]interface{}{"status": "pending"})
	assert.Empty(t, charge.ExternalID)
}
