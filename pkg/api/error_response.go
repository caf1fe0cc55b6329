package api

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// Fixed response texts. Clients see only these, never the underlying error.
const (
	msgListFailed    = "Error fetching users"
	msgGetFailed     = "Error fetching user"
	msgNotFound      = "User not found"
	msgCreateFailed  = "Error creating user"
	msgUpdated       = "User updated successfully"
	msgUpdateFailed  = "Error updating user"
	msgDeleted       = "User deleted successfully"
	msgDeleteFailed  = "Error deleting user"
	msgExportFailed  = "Error exporting users"
	textContentType  = "text/plain; charset=utf-8"
	jsonContentType  = "application/json"
	msgpackMediaType = "application/msgpack"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(response)
}

// WriteText writes message verbatim as a plain text body
func WriteText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", textContentType)
	w.WriteHeader(statusCode)
	io.WriteString(w, message)
}

// statusFor maps an error kind to a response status. Validation failures
// collapse to 500 like every other failure.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure logs err and answers with the fixed message for the operation
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error, message string) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	h.log(r).Error(message,
		zap.Error(err),
		zap.Stringer("kind", kind),
		zap.Int("status", status),
	)
	WriteText(w, status, message)
}
