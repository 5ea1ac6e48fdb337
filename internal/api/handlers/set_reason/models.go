package set_reason

import (
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

// SetReasonRequest HTTP request model
type SetReasonRequest struct {
	Reason  string  `json:"reason"`
	Details *string `json:"details,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetReasonRequest) ToServiceRequest() *models.SetReasonRequest {
	return &models.SetReasonRequest{
		Reason:  r.Reason,
		Details: r.Details,
	}
}
