package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment is collected
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPix        PaymentMethod = "pix"
)

// Payment gateway statuses (Mercado Pago vocabulary, stored as-is)
const (
	PaymentStatusPending   = "pending"
	PaymentStatusInProcess = "in_process"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// Payment records a charge attempt against an appointment. ExternalID is the
// gateway's payment id; PaymentData keeps the raw gateway response (PIX QR
// code payload included) for the client to render.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Status        string          `gorm:"type:varchar(20);not null;index" json:"status"`
	ExternalID    string          `gorm:"type:varchar(64);index" json:"external_id"`
	PaymentData   JSON            `gorm:"type:jsonb" json:"payment_data,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsApproved checks if the gateway confirmed the charge
func (p *Payment) IsApproved() bool {
	return p.Status == PaymentStatusApproved
}

// IsFinalRejection checks if the charge failed terminally
func (p *Payment) IsFinalRejection() bool {
	switch p.Status {
	case PaymentStatusRejected, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}
