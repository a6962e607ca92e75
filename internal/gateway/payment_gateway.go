package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest describes a payment to be collected through the gateway.
type ChargeRequest struct {
	Amount      decimal.Decimal
	Description string
	Method      string // "credit_card" or "pix"

	// Payer
	PayerEmail     string
	PayerFirstName string
	PayerLastName  string

	// Credit card only
	CardToken         string
	CardMethodID      string // gateway card brand id, e.g. "visa"
	PayerDocType      string
	PayerDocNumber    string
	Installments      int
}

// Charge is the gateway's view of a payment.
type Charge struct {
	ExternalID string
	Status     string // pending, approved, in_process, rejected, cancelled, refunded
	Method     string
	// PIX only: copy-and-paste payload and base64 QR image for the client
	PixQRCode       string
	PixQRCodeBase64 string
	// Raw gateway response, persisted alongside the payment row
	Raw map[string]interface{}
}

// PaymentGateway is the boundary with the external payment processor. The
// booking workflow never talks to the processor's wire protocol directly.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *ChargeRequest) (*Charge, error)
	GetPayment(ctx context.Context, externalID string) (*Charge, error)
}
