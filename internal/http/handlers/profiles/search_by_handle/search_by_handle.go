package searchbyhandle

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/search_by_handle"
	"linkea/internal/http/handlers/response"
	"linkea/internal/http/handlers/rules"

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

type Input struct {
	Handle string `json:"handle"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Handle, rules.HandleRules()...),
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

	result, err := h.service.Run(r.Context(), service.Input{Handle: input.Handle})
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}
	if !result.IsAvailable {
		response.RenderError(
			rw,
			fmt.Sprintf("%s is already registered", result.Handle),
			"duplicate_handle",
			http.StatusConflict,
		)
		return
	}

	response.RenderMessage(rw, fmt.Sprintf("%s is available", result.Handle), http.StatusOK)
}
