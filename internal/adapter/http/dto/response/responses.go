package response

import (
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase"
)

// JobItemResponse exposes the derived line total.
type JobItemResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

func FromJobItem(j entities.JobItem) JobItemResponse {
	return JobItemResponse{
		ID:          j.ID,
		Description: j.Description,
		Qty:         j.Qty,
		Rate:        j.Rate,
		Total:       j.Total(),
	}
}

type SettlementResponse struct {
	Invoice  entities.Invoice `json:"invoice"`
	Payment  entities.Payment `json:"payment"`
	Replayed bool             `json:"replayed"`
}

func FromSettlement(s usecase.Settlement) SettlementResponse {
	return SettlementResponse{Invoice: s.Invoice, Payment: s.Payment, Replayed: s.Replayed}
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}
