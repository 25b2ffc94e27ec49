package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campmatch/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// QuizRepo persists completed quizzes and their recommendation rows.
// Referential integrity between the two tables is the database's job.
type QuizRepo interface {
	// CreateResponse inserts the parent record and returns it with the
	// DB-generated id and timestamps. Returns domain.ErrConflict if the
	// session token has already been saved.
	CreateResponse(ctx context.Context, resp domain.QuizResponse) (domain.QuizResponse, error)

	// CreateResults inserts one child row per result under responseID.
	CreateResults(ctx context.Context, responseID uuid.UUID, results []domain.QuizResult) error

	// GetResponseByToken returns the saved quiz for a session token.
	// Returns domain.ErrNotFound if the session was never saved.
	GetResponseByToken(ctx context.Context, token string) (domain.QuizResponse, error)

	// ListResults returns the result rows of a response ordered by rank.
	ListResults(ctx context.Context, responseID uuid.UUID) ([]domain.QuizResult, error)

	// UpdateEmail sets the email on the response with the given session token.
	// Returns domain.ErrNotFound if no such response exists.
	UpdateEmail(ctx context.Context, token, email string) error

	// MarkClicked flags the result for campID within the session's response.
	// Returns domain.ErrNotFound if that camp was not among the results.
	MarkClicked(ctx context.Context, token string, campID uuid.UUID, at time.Time) error
}

// pgQuizRepo is the Postgres implementation of QuizRepo.
type pgQuizRepo struct {
	db db
}

// NewQuizRepo constructs a QuizRepo backed by the provided db connection.
func NewQuizRepo(db db) QuizRepo {
	return &pgQuizRepo{db: db}
}

const responseColumns = `
	id, session_token, child_age, parent_goals, interests,
	budget_min::float8, budget_max::float8, duration,
	dietary_needs, accessibility_needs, location_type, location_county,
	device_type, email, created_at, completed_at`

// CreateResponse flattens Preferences into individual columns.
func (r *pgQuizRepo) CreateResponse(ctx context.Context, resp domain.QuizResponse) (domain.QuizResponse, error) {
	q := `
		INSERT INTO quiz_responses (
			session_token, child_age, parent_goals, interests,
			budget_min, budget_max, duration,
			dietary_needs, accessibility_needs, location_type, location_county,
			device_type, email, completed_at
		) VALUES (
			@session_token, @child_age, @parent_goals, @interests,
			@budget_min, @budget_max, @duration,
			@dietary_needs, @accessibility_needs, @location_type, @location_county,
			@device_type, @email, @completed_at
		)
		RETURNING ` + responseColumns

	p := resp.Preferences
	args := pgx.NamedArgs{
		"session_token":       resp.SessionToken,
		"child_age":           p.ChildAge,
		"parent_goals":        goalsToStrings(p.ParentGoals),
		"interests":           nonNil(p.Interests),
		"budget_min":          nil,
		"budget_max":          nil,
		"duration":            nullString(string(p.Duration)),
		"dietary_needs":       []string{},
		"accessibility_needs": []string{},
		"location_type":       nil,
		"location_county":     nil,
		"device_type":         string(resp.DeviceType),
		"email":               nullString(resp.Email),
		"completed_at":        resp.CompletedAt,
	}
	if p.BudgetRange != nil {
		args["budget_min"] = p.BudgetRange.Min
		args["budget_max"] = p.BudgetRange.Max
	}
	if p.SpecialNeeds != nil {
		args["dietary_needs"] = nonNil(p.SpecialNeeds.Dietary)
		args["accessibility_needs"] = nonNil(p.SpecialNeeds.Accessibility)
	}
	if p.LocationPreference != nil {
		args["location_type"] = string(p.LocationPreference.Type)
		args["location_county"] = nullString(p.LocationPreference.County)
	}

	result, err := scanResponse(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.QuizResponse{}, fmt.Errorf("repo.QuizRepo.CreateResponse: %w", domain.ErrConflict)
		}
		return domain.QuizResponse{}, fmt.Errorf("repo.QuizRepo.CreateResponse: %w", err)
	}
	return result, nil
}

// CreateResults sends all inserts in a single batch round trip.
func (r *pgQuizRepo) CreateResults(ctx context.Context, responseID uuid.UUID, results []domain.QuizResult) error {
	if len(results) == 0 {
		return nil
	}

	const q = `
		INSERT INTO quiz_results (quiz_response_id, camp_id, score, match_label, reasons, rank)
		VALUES (@quiz_response_id, @camp_id, @score, @match_label, @reasons, @rank)`

	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(q, pgx.NamedArgs{
			"quiz_response_id": responseID,
			"camp_id":          res.CampID,
			"score":            res.Score,
			"match_label":      string(res.Label),
			"reasons":          nonNil(res.Reasons),
			"rank":             res.Rank,
		})
	}

	br := r.db.SendBatch(ctx, batch)
	for range results {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("repo.QuizRepo.CreateResults: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("repo.QuizRepo.CreateResults: close: %w", err)
	}
	return nil
}

// GetResponseByToken retrieves a saved quiz by session token.
func (r *pgQuizRepo) GetResponseByToken(ctx context.Context, token string) (domain.QuizResponse, error) {
	q := `SELECT ` + responseColumns + ` FROM quiz_responses WHERE session_token = @token`

	result, err := scanResponse(r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}))
	if err != nil {
		return domain.QuizResponse{}, fmt.Errorf("repo.QuizRepo.GetResponseByToken: %w", err)
	}
	return result, nil
}

// ListResults returns a response's results ordered by rank.
func (r *pgQuizRepo) ListResults(ctx context.Context, responseID uuid.UUID) ([]domain.QuizResult, error) {
	const q = `
		SELECT id, quiz_response_id, camp_id, score, match_label, reasons, rank, clicked, clicked_at
		FROM quiz_results
		WHERE quiz_response_id = @id
		ORDER BY rank`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": responseID})
	if err != nil {
		return nil, fmt.Errorf("repo.QuizRepo.ListResults: %w", err)
	}
	defer rows.Close()

	results := []domain.QuizResult{}
	for rows.Next() {
		var (
			res                domain.QuizResult
			id, respID, campID pgtype.UUID
			label              string
			clickedAt          pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &respID, &campID, &res.Score, &label, &res.Reasons, &res.Rank, &res.Clicked, &clickedAt); err != nil {
			return nil, fmt.Errorf("repo.QuizRepo.ListResults: scan: %w", err)
		}
		res.ID = uuid.UUID(id.Bytes)
		res.QuizResponseID = uuid.UUID(respID.Bytes)
		res.CampID = uuid.UUID(campID.Bytes)
		res.Label = domain.MatchLabel(label)
		if clickedAt.Valid {
			t := clickedAt.Time
			res.ClickedAt = &t
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuizRepo.ListResults: rows: %w", err)
	}
	return results, nil
}

// UpdateEmail patches the email of the response identified by token.
func (r *pgQuizRepo) UpdateEmail(ctx context.Context, token, email string) error {
	const q = `UPDATE quiz_responses SET email = @email WHERE session_token = @token`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"email": email, "token": token})
	if err != nil {
		return fmt.Errorf("repo.QuizRepo.UpdateEmail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuizRepo.UpdateEmail: %w", domain.ErrNotFound)
	}
	return nil
}

// MarkClicked sets clicked and clicked_at on the (session, camp) result row.
func (r *pgQuizRepo) MarkClicked(ctx context.Context, token string, campID uuid.UUID, at time.Time) error {
	const q = `
		UPDATE quiz_results qr
		SET clicked = true, clicked_at = @at
		FROM quiz_responses r
		WHERE qr.quiz_response_id = r.id
		  AND r.session_token = @token
		  AND qr.camp_id = @camp_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"at": at, "token": token, "camp_id": campID})
	if err != nil {
		return fmt.Errorf("repo.QuizRepo.MarkClicked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuizRepo.MarkClicked: %w", domain.ErrNotFound)
	}
	return nil
}

// scanResponse maps a row selected with responseColumns back into a
// domain.QuizResponse, rebuilding the optional Preferences sub-structs.
func scanResponse(s scanner) (domain.QuizResponse, error) {
	var (
		resp                   domain.QuizResponse
		id                     pgtype.UUID
		goals                  []string
		budgetMin, budgetMax   pgtype.Float8
		duration               pgtype.Text
		dietary, accessibility []string
		locType, county        pgtype.Text
		device                 string
		email                  pgtype.Text
	)

	p := &resp.Preferences
	err := s.Scan(
		&id, &resp.SessionToken, &p.ChildAge, &goals, &p.Interests,
		&budgetMin, &budgetMax, &duration,
		&dietary, &accessibility, &locType, &county,
		&device, &email, &resp.CreatedAt, &resp.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuizResponse{}, domain.ErrNotFound
		}
		return domain.QuizResponse{}, err
	}

	resp.ID = uuid.UUID(id.Bytes)
	resp.DeviceType = domain.DeviceType(device)
	resp.Email = email.String
	for _, g := range goals {
		p.ParentGoals = append(p.ParentGoals, domain.ParentGoal(g))
	}
	if budgetMin.Valid && budgetMax.Valid {
		p.BudgetRange = &domain.BudgetRange{Min: budgetMin.Float64, Max: budgetMax.Float64}
	}
	p.Duration = domain.DurationPreference(duration.String)
	if len(dietary) > 0 || len(accessibility) > 0 {
		p.SpecialNeeds = &domain.SpecialNeeds{Dietary: dietary, Accessibility: accessibility}
	}
	if locType.Valid {
		p.LocationPreference = &domain.LocationPreference{
			Type:   domain.LocationType(locType.String),
			County: county.String,
		}
	}
	return resp, nil
}

func goalsToStrings(goals []domain.ParentGoal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nullString maps "" to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
