package response

import (
	"proposalai/internal/core/domain/pricing"
	"time"
)

type QuoteItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Rate        int64  `json:"rate"`
	Total       int64  `json:"total"`
}

type Installment struct {
	Label        string     `json:"label"`
	SharePercent uint8      `json:"share_percent"`
	Amount       int64      `json:"amount"`
	DueAt        *time.Time `json:"due_at"`
}

type Quote struct {
	Items              []QuoteItem   `json:"items"`
	Subtotal           int64         `json:"subtotal"`
	TaxRateBasisPoints uint16        `json:"tax_rate_basis_points"`
	Tax                int64         `json:"tax"`
	Total              int64         `json:"total"`
	Installments       []Installment `json:"installments"`
}

func (q *Quote) FromDomainQuote(dq pricing.Quote) {
	q.Items = make([]QuoteItem, 0, len(dq.Items))
	for _, item := range dq.Items {
		q.Items = append(q.Items, QuoteItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        int64(item.Rate),
			Total:       int64(item.Total),
		})
	}
	q.Subtotal = int64(dq.Subtotal)
	q.TaxRateBasisPoints = uint16(dq.TaxRate)
	q.Tax = int64(dq.Tax)
	q.Total = int64(dq.Total)
	q.Installments = make([]Installment, 0, len(dq.Installments))
	for _, installment := range dq.Installments {
		i := Installment{
			Label:        installment.Label,
			SharePercent: installment.SharePercent,
			Amount:       int64(installment.Amount),
		}
		if installment.DueAt.IsPresent {
			dueAt := installment.DueAt.Value
			i.DueAt = &dueAt
		}
		q.Installments = append(q.Installments, i)
	}
}
