package response

import (
	"encoding/json"
	"net/http"

	"linkea/internal/core/domain/user"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type validationErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Fields error  `json:"fields"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid credentials", user.KindInvalidCredential.String(), http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", "", http.StatusInternalServerError)
}

func RenderInvalidRequest(rw http.ResponseWriter) {
	RenderError(rw, "invalid request data", "invalid_request", http.StatusBadRequest)
}

func RenderValidationError(rw http.ResponseWriter, err error) {
	Render(
		rw,
		validationErrorResponse{Error: "invalid request data", Code: "invalid_request", Fields: err},
		http.StatusBadRequest,
	)
}

func RenderMessage(rw http.ResponseWriter, msg string, status int) {
	Render(rw, messageResponse{Message: msg}, status)
}

// RenderDomainError maps a user domain error to its HTTP status. Errors
// of unknown kind are rendered as a generic internal error.
func RenderDomainError(rw http.ResponseWriter, err error) {
	kind := user.KindOf(err)
	switch kind {
	case user.KindDuplicateEmail:
		RenderError(rw, "a user with this email is already registered", kind.String(), http.StatusConflict)
	case user.KindDuplicateHandle:
		RenderError(rw, "handle is not available", kind.String(), http.StatusConflict)
	case user.KindUserNotFound:
		RenderError(rw, "user does not exist", kind.String(), http.StatusNotFound)
	case user.KindInvalidCredential:
		RenderUnauthorized(rw)
	case user.KindInvalidOrExpiredToken:
		RenderError(rw, "invalid or expired token", kind.String(), http.StatusBadRequest)
	default:
		RenderInternalError(rw)
	}
}

func RenderError(rw http.ResponseWriter, msg string, code string, status int) {
	Render(rw, errorResponse{Error: msg, Code: code}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
