// Package handler implements the campmatch HTTP API on a chi router.
// Handlers are methods on Server, split by resource (quiz.go, catalog.go,
// sessions.go). They decode and validate input, call a service and render
// JSON; no scoring or SQL happens here.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/middleware"
	"github.com/pkordes/campmatch/openapi"
)

// RecommendationServicer is the quiz-facing business surface.
// Defined here, in the consumer, so handler tests can inject a mock.
type RecommendationServicer interface {
	GetRecommendations(ctx context.Context, prefs domain.Preferences) ([]domain.ScoredCamp, error)
	NewSessionToken() string
	SaveQuizResponse(ctx context.Context, sub domain.QuizSubmission) domain.WriteResult
	UpdateEmail(ctx context.Context, token, email string) domain.WriteResult
	TrackClick(ctx context.Context, token string, campID uuid.UUID) domain.WriteResult
	GetSavedQuiz(ctx context.Context, token string) (domain.SavedQuiz, error)
}

// CatalogServicer serves the read-only catalog endpoints.
type CatalogServicer interface {
	ListCategories(ctx context.Context, prefix string) ([]domain.Category, error)
	GetCategory(ctx context.Context, slug string) (domain.Category, error)
	ListCamps(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error)
}

// SessionServicer manages resumable quiz state.
type SessionServicer interface {
	Start(ctx context.Context) (domain.QuizSession, error)
	Get(ctx context.Context, token string) (domain.QuizSession, error)
	Save(ctx context.Context, token string, step int, answers domain.Preferences) (domain.QuizSession, error)
	Delete(ctx context.Context, token string) error
}

// Pinger reports whether a backing store is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	recs     RecommendationServicer
	catalog  CatalogServicer
	sessions SessionServicer
	db       Pinger
}

// NewServer constructs the Server. db may be nil, in which case /healthz
// only reports that the process is up.
func NewServer(recs RecommendationServicer, catalog CatalogServicer, sessions SessionServicer, db Pinger) *Server {
	return &Server{recs: recs, catalog: catalog, sessions: sessions, db: db}
}

// RouteOptions tunes the protective middleware on the quiz write routes.
// Zero values disable the corresponding limit.
type RouteOptions struct {
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
	// WriteRatePerMinute limits quiz writes per client IP.
	WriteRatePerMinute int
	// Metrics, if set, is mounted at GET /metrics.
	Metrics http.Handler
}

// Routes registers every endpoint on a new chi router. Cross-cutting
// middleware (request ID, logging, CORS) is applied by the caller.
func (s *Server) Routes(opts RouteOptions) chi.Router {
	r := chi.NewRouter()
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
	}

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Get("/categories", s.ListCategories)
	r.Get("/categories/{slug}", s.GetCategory)
	r.Get("/camps", s.ListCamps)

	r.Route("/quiz", func(r chi.Router) {
		r.Post("/recommendations", s.GetRecommendations)

		r.Group(func(r chi.Router) {
			if opts.WriteRatePerMinute > 0 {
				r.Use(middleware.NewRateLimiter(opts.WriteRatePerMinute, time.Minute))
			}
			r.Post("/sessions", s.StartSession)
			r.Put("/sessions/{token}", s.SaveSession)
			r.Delete("/sessions/{token}", s.DeleteSession)
			r.Post("/responses", s.SaveQuizResponse)
			r.Put("/responses/{token}/email", s.UpdateEmail)
			r.Post("/responses/{token}/clicks/{campID}", s.TrackClick)
		})

		r.Get("/sessions/{token}", s.GetSession)
		r.Get("/responses/{token}", s.GetSavedQuiz)
	})

	return r
}

// serveOpenAPI returns the embedded API description.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.Document)
}
