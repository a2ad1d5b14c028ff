// Package pricing computes proposal quotes: line item totals, tax and the
// split of the grand total into payment installments. Amounts are integer
// minor currency units.
package pricing

import (
	c "proposalai/internal/core/domain/common"
	"time"

	"github.com/golang-module/carbon/v2"
)

const (
	MaxItems    = 100
	MaxQuantity = 1_000_000
	MaxRate     = Money(10_000_000_000)
)

const (
	DefaultTaxRate = BasisPoints(1000) // 10%
	MaxTaxRate     = BasisPoints(10000)
)

type Money int64

// BasisPoints is a rate in hundredths of a percent.
type BasisPoints uint16

type LineItem struct {
	Description string
	Quantity    int64
	Rate        Money
}

func (i LineItem) Total() Money {
	return Money(i.Quantity) * i.Rate
}

type PaymentTerm struct {
	Label        string
	SharePercent uint8
}

var DefaultPaymentTerms = []PaymentTerm{
	{Label: "Project Start", SharePercent: 50},
	{Label: "Milestone 1", SharePercent: 30},
	{Label: "Project Completion", SharePercent: 20},
}

type PricedItem struct {
	LineItem
	Total Money
}

type Installment struct {
	Label        string
	SharePercent uint8
	Amount       Money
	DueAt        c.Optional[time.Time]
}

type Quote struct {
	Items        []PricedItem
	Subtotal     Money
	TaxRate      BasisPoints
	Tax          Money
	Total        Money
	Installments []Installment
}

type QuoteInput struct {
	Items        []LineItem
	TaxRate      BasisPoints
	PaymentTerms []PaymentTerm

	// StartsAt is the due date of the first installment; each next one is
	// due a month later (UTC calendar).
	StartsAt c.Optional[time.Time]
}

func NewQuote(input QuoteInput) (q Quote, err error) {
	if err := validate(input); err != nil {
		return q, err
	}

	q.Items = make([]PricedItem, 0, len(input.Items))
	for _, item := range input.Items {
		total := item.Total()
		q.Items = append(q.Items, PricedItem{LineItem: item, Total: total})
		q.Subtotal += total
	}
	q.TaxRate = input.TaxRate
	q.Tax = applyRate(q.Subtotal, int64(input.TaxRate), 10000, true)
	q.Total = q.Subtotal + q.Tax
	q.Installments = splitIntoInstallments(q.Total, input.PaymentTerms, input.StartsAt)
	return q, nil
}

func validate(input QuoteInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyQuote
	}
	if len(input.Items) > MaxItems {
		return ErrTooManyItems
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return ErrInvalidQuantity
		}
		if item.Rate < 0 || item.Rate > MaxRate {
			return ErrInvalidRate
		}
	}
	if input.TaxRate > MaxTaxRate {
		return ErrInvalidTaxRate
	}
	if len(input.PaymentTerms) == 0 {
		return ErrInvalidPaymentTerms
	}
	sum := 0
	for _, term := range input.PaymentTerms {
		if term.SharePercent == 0 {
			return ErrInvalidPaymentTerms
		}
		sum += int(term.SharePercent)
	}
	if sum != 100 {
		return ErrInvalidPaymentTerms
	}
	return nil
}

// applyRate returns amount*rate/denominator without overflowing for amounts
// bounded by MaxItems*MaxQuantity*MaxRate.
func applyRate(amount Money, rate int64, denominator int64, roundHalfUp bool) Money {
	q, r := int64(amount)/denominator, int64(amount)%denominator
	rest := r * rate
	if roundHalfUp {
		rest += denominator / 2
	}
	return Money(q*rate + rest/denominator)
}

func splitIntoInstallments(total Money, terms []PaymentTerm, startsAt c.Optional[time.Time]) []Installment {
	installments := make([]Installment, 0, len(terms))
	allocated := Money(0)
	for ix, term := range terms {
		amount := applyRate(total, int64(term.SharePercent), 100, false)
		if ix == len(terms)-1 {
			amount = total - allocated
		}
		allocated += amount

		installment := Installment{Label: term.Label, SharePercent: term.SharePercent, Amount: amount}
		if startsAt.IsPresent {
			dueAt := carbon.Time2Carbon(startsAt.Value.UTC()).
				SetTimezone(carbon.UTC).
				AddMonthsNoOverflow(ix).
				Carbon2Time()
			installment.DueAt = c.NewOptional(dueAt, true)
		}
		installments = append(installments, installment)
	}
	return installments
}
