package signupwithemail

import (
	"encoding/json"
	"io"
	"net/http"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	signupwithemail "linkea/internal/core/services/sign_up_with_email"
	"linkea/internal/http/handlers/response"
	"linkea/internal/http/handlers/rules"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(service services.Service[signupwithemail.Input, signupwithemail.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Handle, rules.HandleRules()...),
		validation.Field(&i.Password, rules.PasswordRules()...),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
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
		signupwithemail.Input{
			Name:     input.Name,
			Email:    c.NewEmail(input.Email),
			Handle:   input.Handle,
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	response.RenderMessage(rw, "account created", http.StatusCreated)
}
