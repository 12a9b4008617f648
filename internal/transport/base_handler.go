package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/pkg/logger"
)

// DataResponse is the envelope every endpoint answers with: exactly one of
// data and error is set.
type DataResponse struct {
	Data  interface{}        `json:"data"`
	Error *internal.AppError `json:"error"`
}

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteData writes a success envelope.
func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, DataResponse{Data: data})
}

// WriteAppError writes an error envelope using the error's own status code.
// Internal errors are logged with their cause and sent as a generic message.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	if appErr.Type == internal.ErrorTypeInternal {
		h.Logger.Error("internal error", "error", appErr.Error(), "code", appErr.Code)
		appErr = internal.NewInternalError("Internal server error", nil)
	}
	h.writeJSON(w, appErr.StatusCode, DataResponse{Error: appErr})
}

// WriteError writes a plain error envelope for transport-level failures
// (malformed bodies, missing tokens).
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	errType := internal.ErrorTypeValidation
	switch status {
	case http.StatusUnauthorized:
		errType = internal.ErrorTypeUnauthorized
	case http.StatusNotFound:
		errType = internal.ErrorTypeNotFound
	case http.StatusInternalServerError:
		errType = internal.ErrorTypeInternal
	}
	h.writeJSON(w, status, DataResponse{Error: &internal.AppError{
		Type:       errType,
		Code:       internal.ErrCodeValidationFailed,
		Message:    message,
		StatusCode: status,
	}})
}

// HandleServiceError maps service-layer errors onto HTTP responses.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}
	h.Logger.Error("unhandled service error", "error", err)
	h.WriteAppError(w, internal.NewInternalError("Internal server error", err))
}

// ExtractTokenFromHeader extracts the Bearer token from the Authorization
// header, empty string when absent or malformed.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}
