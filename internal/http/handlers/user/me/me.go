package me

import (
	"net/http"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/get_user"
	"linkea/internal/http/handlers/response"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	user := response.User{}
	user.FromDomainUser(result.User)
	response.Render(rw, user, http.StatusOK)
}
