package service

import "github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"

// AggregateSales folds the ticket collection into a per-user sales total:
// the sum of GrandTotal over every ticket owned by that user. Tickets without
// an owner contribute to no entry. The fold is pure — no rounding is applied
// until presentation.
func AggregateSales(tickets []domain.Ticket) map[string]float64 {
	sales := make(map[string]float64)
	for _, t := range tickets {
		if t.UserID == "" {
			continue
		}
		sales[t.UserID] += t.GrandTotal
	}
	return sales
}
