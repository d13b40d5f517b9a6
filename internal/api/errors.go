package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/pkg/httputil"
	"github.com/limbo/exercise-tracker/pkg/metrics"
)

const internalErrorMessage = "Internal Server Error"

// publicError carries a status and a message safe to show to clients.
type publicError interface {
	HTTPStatus() int
	PublicMessage() string
}

// handleError is the single place failures turn into responses.
// Every branch writes exactly one plain text response.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := GetLoggerFromCtx(r.Context())
	var (
		validationErr *errorvalues.ValidationError
		pubErr        publicError
		status        int
		message       string
		kind          string
	)
	switch {
	case errors.As(err, &validationErr):
		status, message, kind = http.StatusBadRequest, validationErr.First(), "validation"
		logger.Warn("request rejected", slog.String("error", err.Error()))
	case errors.As(err, &pubErr):
		status, message, kind = pubErr.HTTPStatus(), pubErr.PublicMessage(), "public"
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if message == "" {
			message = internalErrorMessage
		}
		if status == http.StatusNotFound {
			kind = "not_found"
		}
		logger.Warn("request failed", slog.Int("status", status), slog.String("error", err.Error()))
	default:
		status, message, kind = http.StatusInternalServerError, internalErrorMessage, "internal"
		var storageErr *errorvalues.StorageError
		if errors.As(err, &storageErr) {
			kind = "storage"
		}
		logger.Error("request failed", slog.String("error", err.Error()))
	}
	metrics.ErrorsTotal.WithLabelValues(kind, strconv.Itoa(status)).Inc()
	httputil.WriteTextResponse(w, status, message)
}
