package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// PaymentToResponse converts a Payment entity to PaymentResponse DTO.
// PIX QR payloads are lifted out of the stored gateway response so the client
// does not have to dig through it.
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	response := &dto.PaymentResponse{
		ID:            payment.ID,
		AppointmentID: payment.AppointmentID,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
		Status:        payment.Status,
		ExternalID:    payment.ExternalID,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}

	if poi, ok := payment.PaymentData["point_of_interaction"].(map[string]interface{}); ok {
		if td, ok := poi["transaction_data"].(map[string]interface{}); ok {
			if qr, ok := td["qr_code"].(string); ok {
				response.PixQRCode = qr
			}
			if qr64, ok := td["qr_code_base64"].(string); ok {
				response.PixQRCodeBase64 = qr64
			}
		}
	}

	return response
}
