package update_payment_status

import "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"

// UpdatePaymentStatusRequest HTTP request model
type UpdatePaymentStatusRequest struct {
	IsPaid *bool `json:"isPaid"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePaymentStatusRequest) ToServiceRequest(userID string) *models.UpdatePaymentRequest {
	return &models.UpdatePaymentRequest{
		UserID: userID,
		IsPaid: *r.IsPaid,
	}
}
