package set_refund_amount

import (
	"github.com/m04kA/HMS-CancellationService/internal/service/cancellations/models"
)

// SetRefundAmountRequest HTTP request model
type SetRefundAmountRequest struct {
	Amount float64 `json:"amount"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetRefundAmountRequest) ToServiceRequest() *models.SetRefundAmountRequest {
	return &models.SetRefundAmountRequest{
		Amount: r.Amount,
	}
}
