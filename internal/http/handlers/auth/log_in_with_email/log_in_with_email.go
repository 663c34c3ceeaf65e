package loginwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	loginwithemail "linkea/internal/core/services/log_in_with_email"
	"linkea/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service              services.Service[loginwithemail.Input, loginwithemail.Result]
	hideAccountExistence bool
}

// New creates the login handler. With hideAccountExistence an unknown email
// is answered exactly like a wrong password.
func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
	hideAccountExistence bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, hideAccountExistence: hideAccountExistence}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	Token string `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) && h.hideAccountExistence {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	response.Render(rw, Result{Token: string(result.Credential)}, http.StatusOK)
}
