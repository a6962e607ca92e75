package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateSpecialtyRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

type UpdateSpecialtyRequest struct {
	Name        string           `json:"name" validate:"omitempty,min=2,max=100"`
	Description string           `json:"description" validate:"omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
