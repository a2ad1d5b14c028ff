package requestpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	ratelimiter "proposalai/internal/core/domain/rate_limiter"
	"proposalai/internal/core/services"
	requestpasswordreset "proposalai/internal/core/services/request_password_reset"
	"proposalai/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const ACKNOWLEDGEMENT = "If an account with that email exists, we have sent a password reset link."

type Handler struct {
	service services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
}

func New(
	service services.Service[requestpasswordreset.Input, requestpasswordreset.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderError(rw, "invalid email", http.StatusBadRequest)
		return
	}

	// The result is never rendered: the response must not depend on whether
	// the account exists.
	_, err := h.service.Run(
		r.Context(),
		requestpasswordreset.Input{Email: account.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderMessage(rw, ACKNOWLEDGEMENT, http.StatusOK)
}
