package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/core/services"
	resetpassword "proposalai/internal/core/services/reset_password"
	"proposalai/internal/http/handlers/auth"
	"proposalai/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	SUCCESS_MESSAGE       = "Password has been reset successfully."
	INVALID_TOKEN_MESSAGE = "invalid or expired token"
	TOKEN_MAX_LEN         = 1024
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, auth.PasswordRules()...),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if input.Token == "" || len(input.Token) > TOKEN_MAX_LEN {
		response.RenderError(rw, INVALID_TOKEN_MESSAGE, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       passwordreset.Token(input.Token),
			NewPassword: account.RawPassword(input.Password),
		},
	)
	if errors.Is(err, passwordreset.ErrInvalidToken) || errors.Is(err, passwordreset.ErrExpiredOrUsedToken) {
		response.RenderError(rw, INVALID_TOKEN_MESSAGE, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderMessage(rw, SUCCESS_MESSAGE, http.StatusOK)
}
