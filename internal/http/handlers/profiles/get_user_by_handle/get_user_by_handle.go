package getuserbyhandle

import (
	"net/http"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/get_user_by_handle"
	"linkea/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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
	result, err := h.service.Run(r.Context(), service.Input{Handle: chi.URLParam(r, "handle")})
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	profile := response.Profile{}
	profile.FromDomainProfile(result.Profile)
	response.Render(rw, profile, http.StatusOK)
}
