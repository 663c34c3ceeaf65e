package resetpassword

import (
	"encoding/json"
	"io"
	"net/http"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	resetpassword "linkea/internal/core/services/reset_password"
	"linkea/internal/http/handlers/response"
	"linkea/internal/http/handlers/rules"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(service services.Service[resetpassword.Input, resetpassword.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, rules.PasswordRules()...),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := validation.Validate(token, validation.Required, rules.ResetToken); err != nil {
		response.RenderDomainError(rw, user.ErrInvalidPasswordResetToken)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	response.RenderMessage(rw, "password has been updated", http.StatusOK)
}
