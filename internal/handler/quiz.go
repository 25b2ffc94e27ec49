package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/validation"
)

// SessionTokenHeader carries the quiz session token on recommendation
// requests. When the client sends none, a fresh token is returned in it.
const SessionTokenHeader = "X-Session-Token"

// GetRecommendations handles POST /quiz/recommendations.
// The body is a Preferences object; the response is the ranked list,
// possibly empty.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if !decodeJSON(w, r, &prefs) {
		return
	}
	if err := validation.Struct(&prefs); err != nil {
		validationFailed(w, err)
		return
	}

	scored, err := s.recs.GetRecommendations(r.Context(), prefs)
	if err != nil {
		internalError(w, r, err)
		return
	}

	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		token = s.recs.NewSessionToken()
	}
	w.Header().Set(SessionTokenHeader, token)

	resp := make([]Recommendation, len(scored))
	for i, sc := range scored {
		resp[i] = recommendationToResponse(sc)
	}
	writeJSON(w, http.StatusOK, resp)
}

// SaveQuizResponse handles POST /quiz/responses. The device type falls back
// to the User-Agent when the client does not declare one.
func (s *Server) SaveQuizResponse(w http.ResponseWriter, r *http.Request) {
	var req SaveQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Results are checked up front; the service writes the parent row first.
	if err := validation.Struct(&req); err != nil {
		validationFailed(w, err)
		return
	}

	results := make([]domain.ScoredCamp, len(req.Results))
	for i, res := range req.Results {
		results[i] = domain.ScoredCamp{
			Camp:    domain.Camp{ID: res.CampID},
			Score:   res.Score,
			Label:   res.MatchLabel,
			Reasons: res.Reasons,
			Rank:    res.Rank,
		}
	}

	res := s.recs.SaveQuizResponse(r.Context(), domain.QuizSubmission{
		SessionToken: req.SessionToken,
		Preferences:  req.Preferences,
		Results:      results,
		DeviceType:   resolveDevice(req.DeviceType, r.UserAgent()),
		Email:        req.Email,
	})
	writeResult(w, res, http.StatusCreated, "quiz already saved for this session")
}

// UpdateEmail handles PUT /quiz/responses/{token}/email.
func (s *Server) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := s.recs.UpdateEmail(r.Context(), chi.URLParam(r, "token"), string(req.Email))
	writeResult(w, res, http.StatusOK, "")
}

// TrackClick handles POST /quiz/responses/{token}/clicks/{campID}.
func (s *Server) TrackClick(w http.ResponseWriter, r *http.Request) {
	var campID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "campID", chi.URLParam(r, "campID"), &campID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		badRequest(w, "campID must be a UUID")
		return
	}

	res := s.recs.TrackClick(r.Context(), chi.URLParam(r, "token"), campID)
	writeResult(w, res, http.StatusOK, "")
}

// GetSavedQuiz handles GET /quiz/responses/{token}.
func (s *Server) GetSavedQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := s.recs.GetSavedQuiz(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		serviceError(w, r, err, "quiz response not found")
		return
	}
	writeJSON(w, http.StatusOK, savedQuizToResponse(q))
}

// writeResult renders a WriteResult as {"success":...}. Failures keep the
// same shape and take the status of the underlying error.
func writeResult(w http.ResponseWriter, res domain.WriteResult, okStatus int, conflictMsg string) {
	if res.Success {
		body := WriteResponse{Success: true}
		if res.ResponseID != (openapi_types.UUID{}) {
			id := res.ResponseID
			body.ResponseID = &id
		}
		writeJSON(w, okStatus, body)
		return
	}

	status, detail := http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: "could not save, please try again"}
	switch {
	case errors.Is(res.Err, domain.ErrValidation):
		status, detail = http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: publicMessage(res.Err)}
	case errors.Is(res.Err, domain.ErrNotFound):
		status, detail = http.StatusNotFound, ErrorDetail{Code: "not_found", Message: "quiz response not found"}
	case errors.Is(res.Err, domain.ErrConflict):
		if conflictMsg == "" {
			conflictMsg = publicMessage(res.Err)
		}
		status, detail = http.StatusConflict, ErrorDetail{Code: "conflict", Message: conflictMsg}
	}
	writeJSON(w, status, WriteResponse{Success: false, Error: &detail})
}
