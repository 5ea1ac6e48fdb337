package submit_cancellation

import (
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

// SubmitRequest HTTP request model
// ID сотрудника приходит не в теле, а из Auth middleware
type SubmitRequest struct {
	Details *string `json:"details,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SubmitRequest) ToServiceRequest(staffID int64) *models.SubmitRequest {
	return &models.SubmitRequest{
		CancelledBy: staffID,
		Details:     r.Details,
	}
}
