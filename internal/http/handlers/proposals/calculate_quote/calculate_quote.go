package calculatequote

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"proposalai/internal/core/domain/account"
	c "proposalai/internal/core/domain/common"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/pricing"
	"proposalai/internal/core/services"
	service "proposalai/internal/core/services/calculate_quote"
	"proposalai/internal/http/handlers/response"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Item struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Rate        int64  `json:"rate"`
}

func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Description, validation.Required, validation.Length(0, 1024)),
	)
}

type PaymentTerm struct {
	Label        string `json:"label"`
	SharePercent uint8  `json:"share_percent"`
}

func (t PaymentTerm) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Label, validation.Required, validation.Length(0, 256)),
	)
}

type Input struct {
	Items              []Item        `json:"items"`
	TaxRateBasisPoints *uint16       `json:"tax_rate_basis_points"`
	PaymentTerms       []PaymentTerm `json:"payment_terms"`
	StartsAt           *time.Time    `json:"starts_at"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Items, validation.Required),
	)
}

func (i Input) toServiceInput() service.Input {
	input := service.Input{
		Items:        make([]pricing.LineItem, 0, len(i.Items)),
		PaymentTerms: make([]pricing.PaymentTerm, 0, len(i.PaymentTerms)),
	}
	for _, item := range i.Items {
		input.Items = append(input.Items, pricing.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        pricing.Money(item.Rate),
		})
	}
	for _, term := range i.PaymentTerms {
		input.PaymentTerms = append(input.PaymentTerms, pricing.PaymentTerm{
			Label:        term.Label,
			SharePercent: term.SharePercent,
		})
	}
	if i.TaxRateBasisPoints != nil {
		input.TaxRate = c.Some(pricing.BasisPoints(*i.TaxRateBasisPoints))
	}
	if i.StartsAt != nil {
		input.StartsAt = c.Some(i.StartsAt.UTC())
	}
	return input
}

type Result struct {
	Quote response.Quote `json:"quote"`
}

func isPricingError(err error) bool {
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), input.toServiceInput())
	if errors.Is(err, account.ErrInvalidSessionToken) {
		response.RenderUnauthorized(rw)
		return
	}
	if isPricingError(err) {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	quote := response.Quote{}
	quote.FromDomainQuote(result.Quote)
	response.Render(rw, Result{Quote: quote}, http.StatusOK)
}
