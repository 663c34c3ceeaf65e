package uploadimage

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/services"
	service "linkea/internal/core/services/upload_image"
	"linkea/internal/http/handlers/response"
)

const (
	FORM_FIELD     = "file"
	MAX_IMAGE_SIZE = 5 << 20
	sniffLen       = 512
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

type Result struct {
	Image string `json:"image"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(rw, r.Body, MAX_IMAGE_SIZE+(1<<20))
	file, header, err := r.FormFile(FORM_FIELD)
	if err != nil {
		response.RenderError(rw, "image file is required", "invalid_request", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Size > MAX_IMAGE_SIZE {
		response.RenderError(rw, "image is too large", "invalid_request", http.StatusRequestEntityTooLarge)
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		response.RenderError(rw, "image file is required", "invalid_request", http.StatusBadRequest)
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		response.RenderError(rw, "file is not an image", "invalid_request", http.StatusBadRequest)
		return
	}

	body := io.MultiReader(bytes.NewReader(head), file)
	result, err := h.service.Run(
		r.Context(),
		service.Input{ContentType: contentType, Body: body},
	)
	if err != nil {
		response.RenderDomainError(rw, err)
		return
	}

	response.Render(rw, Result{Image: result.Image}, http.StatusOK)
}
