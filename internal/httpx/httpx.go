package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/pkg/logger"
)

const maxBodyBytes = 1 << 20

// RequestTimeout bounds the store work a single handler may do.
const RequestTimeout = 30 * time.Second

var ErrMalformedBody = errors.New("invalid request payload")

// APIHandler is a handler that reports failures by returning them; MakeHandler
// turns the error into a JSON response in one place.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

func MakeHandler(log logger.ZapLogger, h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			HandleError(w, r, log, err)
		}
	}
}

func HandleError(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	status := StatusOf(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.Error(err),
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
		WriteError(w, status, "internal server error")
		return
	}

	log.Debug("request rejected", fields...)
	WriteError(w, status, publicMessage(err))
}

// StatusOf maps the store error kinds onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrMalformedBody),
		errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, ErrMalformedBody):
		return ErrMalformedBody.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		return model.ErrInvalidCredentials.Error()
	case errors.Is(err, model.ErrUnauthenticated):
		return "unauthorized"
	default:
		return err.Error()
	}
}

// WriteJSON encodes data before touching w, so an encoding failure is
// returned with nothing written and the caller can still answer 500.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	_ = WriteJSON(w, status, map[string]string{"error": msg})
}

func WriteMessage(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, map[string]string{"message": msg})
}

// ParseJSON decodes a size-limited request body into dst.
func ParseJSON(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
