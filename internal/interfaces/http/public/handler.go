package public

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/match-intake/api/internal/interfaces/http/common"
	intakeapp "github.com/sngm3741/match-intake/api/internal/intake/application"
)

// CORSFunc returns an origin guard that advertises methods in preflight responses.
type CORSFunc func(methods ...string) func(http.Handler) http.Handler

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	submissions  intakeapp.SubmissionService
	maxBodyBytes int64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *log.Logger
	Submissions  intakeapp.SubmissionService
	MaxBodyBytes int64
}

// NewHandler constructs a public HTTP handler set. MaxBodyBytes must be
// positive; the limit comes from config.
func NewHandler(cfg Config) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		panic(fmt.Sprintf("public: MaxBodyBytes must be positive, got %d", cfg.MaxBodyBytes))
	}
	return &Handler{
		logger:       cfg.Logger,
		submissions:  cfg.Submissions,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Register mounts all public routes onto the router, each group behind its own origin guard.
func (h *Handler) Register(r chi.Router, cors CORSFunc) {
	r.Group(func(r chi.Router) {
		r.Use(cors(http.MethodGet, http.MethodOptions))
		r.Get("/health", h.healthHandler())
		r.Options("/health", h.preflightHandler())
	})
	r.Group(func(r chi.Router) {
		r.Use(cors(http.MethodPost, http.MethodOptions))
		r.Options("/submit", h.preflightHandler())
		r.Post("/submit", h.submitHandler())
	})
}

// preflightHandler answers OPTIONS requests the origin guard let through (no Origin header).
func (h *Handler) preflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// healthHandler reports where records are being written. It touches nothing.
func (h *Handler) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, common.Result{
			OK:          true,
			StoragePath: h.submissions.StorageLocation(),
		})
	}
}
