package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/handler"
)

// ---- mock RecommendationServicer -------------------------------------------

type mockRecs struct {
	getRecommendations func(ctx context.Context, prefs domain.Preferences) ([]domain.ScoredCamp, error)
	newSessionToken    func() string
	saveQuizResponse   func(ctx context.Context, sub domain.QuizSubmission) domain.WriteResult
	updateEmail        func(ctx context.Context, token, email string) domain.WriteResult
	trackClick         func(ctx context.Context, token string, campID uuid.UUID) domain.WriteResult
	getSavedQuiz       func(ctx context.Context, token string) (domain.SavedQuiz, error)
}

func (m *mockRecs) GetRecommendations(ctx context.Context, prefs domain.Preferences) ([]domain.ScoredCamp, error) {
	return m.getRecommendations(ctx, prefs)
}
func (m *mockRecs) NewSessionToken() string {
	return m.newSessionToken()
}
func (m *mockRecs) SaveQuizResponse(ctx context.Context, sub domain.QuizSubmission) domain.WriteResult {
	return m.saveQuizResponse(ctx, sub)
}
func (m *mockRecs) UpdateEmail(ctx context.Context, token, email string) domain.WriteResult {
	return m.updateEmail(ctx, token, email)
}
func (m *mockRecs) TrackClick(ctx context.Context, token string, campID uuid.UUID) domain.WriteResult {
	return m.trackClick(ctx, token, campID)
}
func (m *mockRecs) GetSavedQuiz(ctx context.Context, token string) (domain.SavedQuiz, error) {
	return m.getSavedQuiz(ctx, token)
}

// ---- mock CatalogServicer --------------------------------------------------

type mockCatalog struct {
	listCategories func(ctx context.Context, prefix string) ([]domain.Category, error)
	getCategory    func(ctx context.Context, slug string) (domain.Category, error)
	listCamps      func(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error)
}

func (m *mockCatalog) ListCategories(ctx context.Context, prefix string) ([]domain.Category, error) {
	return m.listCategories(ctx, prefix)
}
func (m *mockCatalog) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	return m.getCategory(ctx, slug)
}
func (m *mockCatalog) ListCamps(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error) {
	return m.listCamps(ctx, p)
}

// ---- mock SessionServicer --------------------------------------------------

type mockSessions struct {
	start  func(ctx context.Context) (domain.QuizSession, error)
	get    func(ctx context.Context, token string) (domain.QuizSession, error)
	save   func(ctx context.Context, token string, step int, answers domain.Preferences) (domain.QuizSession, error)
	delete func(ctx context.Context, token string) error
}

func (m *mockSessions) Start(ctx context.Context) (domain.QuizSession, error) {
	return m.start(ctx)
}
func (m *mockSessions) Get(ctx context.Context, token string) (domain.QuizSession, error) {
	return m.get(ctx, token)
}
func (m *mockSessions) Save(ctx context.Context, token string, step int, answers domain.Preferences) (domain.QuizSession, error) {
	return m.save(ctx, token, step, answers)
}
func (m *mockSessions) Delete(ctx context.Context, token string) error {
	return m.delete(ctx, token)
}

// ---- mock Pinger -----------------------------------------------------------

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// compile-time checks
var (
	_ handler.RecommendationServicer = (*mockRecs)(nil)
	_ handler.CatalogServicer        = (*mockCatalog)(nil)
	_ handler.SessionServicer        = (*mockSessions)(nil)
	_ handler.Pinger                 = pingerFunc(nil)
)

// ---- helpers ---------------------------------------------------------------

type deps struct {
	recs     *mockRecs
	catalog  *mockCatalog
	sessions *mockSessions
	db       handler.Pinger
	opts     handler.RouteOptions
}

// newHTTPHandler wires the router exactly as `campmatch serve` does, minus
// the outer logging and CORS middleware.
func newHTTPHandler(d deps) http.Handler {
	if d.recs == nil {
		d.recs = &mockRecs{}
	}
	if d.catalog == nil {
		d.catalog = &mockCatalog{}
	}
	if d.sessions == nil {
		d.sessions = &mockSessions{}
	}
	return handler.NewServer(d.recs, d.catalog, d.sessions, d.db).Routes(d.opts)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func ptr[T any](v T) *T { return &v }
