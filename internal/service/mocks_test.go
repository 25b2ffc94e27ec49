package service_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/repo"
)

// ---- mock CampRepo ---------------------------------------------------------

type mockCampRepo struct {
	listPublished     func(ctx context.Context) ([]domain.Camp, error)
	listPublishedPage func(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error)
}

func (m *mockCampRepo) ListPublished(ctx context.Context) ([]domain.Camp, error) {
	return m.listPublished(ctx)
}
func (m *mockCampRepo) ListPublishedPage(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error) {
	return m.listPublishedPage(ctx, p)
}

// ---- mock CategoryRepo -----------------------------------------------------

type mockCategoryRepo struct {
	list      func(ctx context.Context, prefix string) ([]domain.Category, error)
	getBySlug func(ctx context.Context, slug string) (domain.Category, error)
}

func (m *mockCategoryRepo) List(ctx context.Context, prefix string) ([]domain.Category, error) {
	return m.list(ctx, prefix)
}
func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (domain.Category, error) {
	return m.getBySlug(ctx, slug)
}

// ---- mock QuizRepo ---------------------------------------------------------

type mockQuizRepo struct {
	createResponse     func(ctx context.Context, resp domain.QuizResponse) (domain.QuizResponse, error)
	createResults      func(ctx context.Context, responseID uuid.UUID, results []domain.QuizResult) error
	getResponseByToken func(ctx context.Context, token string) (domain.QuizResponse, error)
	listResults        func(ctx context.Context, responseID uuid.UUID) ([]domain.QuizResult, error)
	updateEmail        func(ctx context.Context, token, email string) error
	markClicked        func(ctx context.Context, token string, campID uuid.UUID, at time.Time) error
}

func (m *mockQuizRepo) CreateResponse(ctx context.Context, resp domain.QuizResponse) (domain.QuizResponse, error) {
	return m.createResponse(ctx, resp)
}
func (m *mockQuizRepo) CreateResults(ctx context.Context, responseID uuid.UUID, results []domain.QuizResult) error {
	return m.createResults(ctx, responseID, results)
}
func (m *mockQuizRepo) GetResponseByToken(ctx context.Context, token string) (domain.QuizResponse, error) {
	return m.getResponseByToken(ctx, token)
}
func (m *mockQuizRepo) ListResults(ctx context.Context, responseID uuid.UUID) ([]domain.QuizResult, error) {
	return m.listResults(ctx, responseID)
}
func (m *mockQuizRepo) UpdateEmail(ctx context.Context, token, email string) error {
	return m.updateEmail(ctx, token, email)
}
func (m *mockQuizRepo) MarkClicked(ctx context.Context, token string, campID uuid.UUID, at time.Time) error {
	return m.markClicked(ctx, token, campID, at)
}

// ---- mock SessionStore -----------------------------------------------------

type mockSessionStore struct {
	get    func(ctx context.Context, token string) (domain.QuizSession, error)
	save   func(ctx context.Context, s domain.QuizSession) error
	delete func(ctx context.Context, token string) error
	prune  func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *mockSessionStore) Get(ctx context.Context, token string) (domain.QuizSession, error) {
	return m.get(ctx, token)
}
func (m *mockSessionStore) Save(ctx context.Context, s domain.QuizSession) error {
	return m.save(ctx, s)
}
func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	return m.delete(ctx, token)
}
func (m *mockSessionStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	return m.prune(ctx, cutoff)
}

// compile-time checks
var (
	_ repo.CampRepo     = (*mockCampRepo)(nil)
	_ repo.CategoryRepo = (*mockCategoryRepo)(nil)
	_ repo.QuizRepo     = (*mockQuizRepo)(nil)
	_ repo.SessionStore = (*mockSessionStore)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }
