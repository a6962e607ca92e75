package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Method        string    `json:"method" validate:"required,oneof=credit_card pix"`

	// Credit card only: token issued by the gateway's client-side SDK
	CardToken    string `json:"card_token" validate:"required_if=Method credit_card"`
	CardMethodID string `json:"card_method_id" validate:"required_if=Method credit_card"`
	DocType      string `json:"doc_type" validate:"omitempty"`
	DocNumber    string `json:"doc_number" validate:"omitempty"`
	Installments int    `json:"installments" validate:"omitempty,gte=1,lte=12"`
}

// WebhookNotification is the gateway's payment event callback body.
type WebhookNotification struct {
	Action string           `json:"action"`
	Data   WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID string `json:"id"`
}

// Response DTOs

type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	AppointmentID   uuid.UUID       `json:"appointment_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Status          string          `json:"status"`
	ExternalID      string          `json:"external_id,omitempty"`
	PixQRCode       string          `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string          `json:"pix_qr_code_base64,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
