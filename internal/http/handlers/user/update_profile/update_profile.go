package updateprofile

import (
	"encoding/json"
	"io"
	"net/http"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/update_profile"
	"linkea/internal/http/handlers/response"
	"linkea/internal/http/handlers/rules"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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

type Input struct {
	Handle      string `json:"handle"`
	Description string `json:"description"`
	Links       string `json:"links"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Handle, rules.HandleRules()...),
		validation.Field(&i.Description, validation.Length(0, 1024)),
		validation.Field(&i.Links, is.JSON, validation.Length(0, 16384)),
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
		service.Input{
			Handle:      input.Handle,
			Description: input.Description,
			Links:       input.Links,
		},
	)
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	user := response.User{}
	user.FromDomainUser(result.User)
	response.Render(rw, user, http.StatusOK)
}
