package calculatequote

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	c "proposalai/internal/core/domain/common"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	"proposalai/internal/core/domain/pricing"
	"proposalai/internal/core/services"
	"proposalai/internal/core/services/auth"
	"time"
)

type Input struct {
	AccountID    account.ID
	Items        []pricing.LineItem
	TaxRate      c.Optional[pricing.BasisPoints]
	PaymentTerms []pricing.PaymentTerm
	StartsAt     c.Optional[time.Time]
}

func (i Input) WithAuthenticatedAccount(a account.Account) auth.Input {
	i.AccountID = a.ID
	return i
}

type Result struct {
	Quote pricing.Quote
}

type service struct {
	log            logging.Logger
	defaultTaxRate pricing.BasisPoints
}

func New(log logging.Logger, defaultTaxRate pricing.BasisPoints) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &service{log: log, defaultTaxRate: defaultTaxRate}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	quoteInput := pricing.QuoteInput{
		Items:        input.Items,
		TaxRate:      s.defaultTaxRate,
		PaymentTerms: input.PaymentTerms,
		StartsAt:     input.StartsAt,
	}
	if input.TaxRate.IsPresent {
		quoteInput.TaxRate = input.TaxRate.Value
	}
	if len(quoteInput.PaymentTerms) == 0 {
		quoteInput.PaymentTerms = pricing.DefaultPaymentTerms
	}

	quote, err := pricing.NewQuote(quoteInput)
	if err != nil {
		if !isValidationError(err) {
			s.log.Error(ctx, "Could not calculate quote.", logging.Entry("err", err))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Quote has been calculated.",
		logging.Entry("accountId", input.AccountID),
		logging.Entry("items", len(quote.Items)),
		logging.Entry("total", quote.Total),
	)
	return Result{Quote: quote}, nil
}

func isValidationError(err error) bool {
	for _, target := range []error{
		pricing.ErrEmptyQuote,
		pricing.ErrTooManyItems,
		pricing.ErrInvalidQuantity,
		pricing.ErrInvalidRate,
		pricing.ErrInvalidTaxRate,
		pricing.ErrInvalidPaymentTerms,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
