package sendpasswordresettoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/send_password_reset_token"
	"linkea/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const SENT_MESSAGE = "an email with password reset instructions has been sent"

type Handler struct {
	service              services.Service[service.Input, service.Result]
	hideAccountExistence bool
}

// New creates the forgot-password handler. With hideAccountExistence an
// unknown email gets the same answer as a known one.
func New(
	service services.Service[service.Input, service.Result],
	hideAccountExistence bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, hideAccountExistence: hideAccountExistence}
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
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{Email: c.NewEmail(input.Email)})
	if errors.Is(err, user.ErrUserDoesNotExist) && h.hideAccountExistence {
		response.RenderMessage(rw, SENT_MESSAGE, http.StatusOK)
		return
	}
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	response.RenderMessage(rw, SENT_MESSAGE, http.StatusOK)
}
