package matching

import "github.com/pkordes/campmatch/internal/domain"

// Engine runs a catalog through a Scorer and a Ranker.
type Engine struct {
	scorer *Scorer
	ranker *Ranker
}

// NewEngine builds an Engine from cfg. opts are passed to the Scorer.
func NewEngine(cfg Config, opts ...ScorerOption) *Engine {
	return &Engine{scorer: NewScorer(cfg, opts...), ranker: NewRanker(cfg)}
}

// Recommend scores every camp against prefs and returns the ranked list.
// An empty, non-nil slice means no camp cleared the threshold.
func (e *Engine) Recommend(camps []domain.Camp, prefs domain.Preferences) []domain.ScoredCamp {
	scored := make([]domain.ScoredCamp, 0, len(camps))
	for _, c := range camps {
		score, reasons := e.scorer.Score(c, prefs)
		scored = append(scored, domain.ScoredCamp{Camp: c, Score: score, Reasons: reasons})
	}
	return e.ranker.Rank(scored)
}
