package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/internal/service"
	"github.com/limbo/exercise-tracker/pkg/httputil"
)

const maxBodyBytes = 1 << 20

// handlerFunc reports its failure instead of writing it. See handleError.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleError(w, r, err)
		}
	}
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) error {
	logger := GetLoggerFromCtx(r.Context())
	fields, err := readBodyFields(r)
	if err != nil {
		return err
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	user, err := s.userService.CreateUser(ctx, &service.CreateUserRequest{
		Username: fields["username"],
	})
	if err != nil {
		return err
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("user created", slog.String("uid", user.ID))
	return nil
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) error {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := s.requestContext(r)
	defer cancel()
	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return err
	}
	httputil.WriteJSONResponse(w, http.StatusOK, users)
	logger.Info("users provided", slog.Int("count", len(users)))
	return nil
}

func (s *Server) AddExercise(w http.ResponseWriter, r *http.Request) error {
	logger := GetLoggerFromCtx(r.Context())
	fields, err := readBodyFields(r)
	if err != nil {
		return err
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	exercise, err := s.exerciseService.AddExercise(ctx, &service.AddExerciseRequest{
		UserID:      fields["userId"],
		Description: fields["description"],
		Duration:    fields["duration"],
		Date:        fields["date"],
	})
	if err != nil {
		return err
	}
	httputil.WriteJSONResponse(w, http.StatusOK, exercise)
	logger.Info("exercise added", slog.String("uid", exercise.ID))
	return nil
}

func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) error {
	logger := GetLoggerFromCtx(r.Context())
	q := r.URL.Query()
	ctx, cancel := s.requestContext(r)
	defer cancel()
	exerciseLog, err := s.exerciseService.GetLog(ctx, &service.LogQuery{
		UserID: q.Get("userId"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Limit:  q.Get("limit"),
	})
	if err != nil {
		return err
	}
	httputil.WriteJSONResponse(w, http.StatusOK, exerciseLog)
	logger.Info("exercise log provided", slog.String("uid", exerciseLog.ID), slog.Int("count", exerciseLog.Count))
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.handleError(w, r, &errorvalues.NotFoundError{
		Message: errorvalues.ErrRouteNotFound.Error(),
		Err:     errorvalues.ErrRouteNotFound,
	})
}

// readBodyFields flattens a JSON object or urlencoded form into string values.
// Numbers and booleans are kept in their textual form, null becomes empty.
func readBodyFields(r *http.Request) (map[string]string, error) {
	defer r.Body.Close()
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, errorvalues.NewValidationError("body", "invalid request body")
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		return fields, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return nil, errorvalues.NewValidationError("body", "invalid request body")
	}
	fields := make(map[string]string)
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}
	raw := make(map[string]any)
	if err := sonic.ConfigDefault.Unmarshal(body, &raw); err != nil {
		return nil, errorvalues.NewValidationError("body", "invalid request body")
	}
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			fields[key] = ""
		case string:
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			fields[key] = strconv.FormatBool(v)
		default:
			encoded, err := sonic.ConfigDefault.MarshalToString(v)
			if err != nil {
				return nil, errorvalues.NewValidationError("body", "invalid request body")
			}
			fields[key] = encoded
		}
	}
	return fields, nil
}
