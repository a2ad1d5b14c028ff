package pricing

import "errors"

var (
	ErrEmptyQuote          = errors.New("quote has no line items")
	ErrTooManyItems        = errors.New("quote has too many line items")
	ErrInvalidQuantity     = errors.New("invalid line item quantity")
	ErrInvalidRate         = errors.New("invalid line item rate")
	ErrInvalidTaxRate      = errors.New("invalid tax rate")
	ErrInvalidPaymentTerms = errors.New("payment term shares must be positive and sum to 100")
)
