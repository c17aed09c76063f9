package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/middleware"
	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/session"
)

const msgSystemError = "系统错误，请稍后重试"

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	service  CollectorService
	sessions *session.Manager
	limiter  *middleware.RateLimiter
	logger   *zap.Logger
}

func NewHandler(service CollectorService, sessions *session.Manager, limiter *middleware.RateLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// writeResult always answers 200; the outcome is carried in the body.
func (h *Handler) writeResult(rw http.ResponseWriter, success bool, message string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(rw).Encode(models.Result{Success: success, Message: message}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func (h *Handler) currentSession(r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return &session.Session{}
	}
	return sess
}

func (h *Handler) render(rw http.ResponseWriter, name string, data any) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(rw, name, data); err != nil {
		h.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
	}
}
