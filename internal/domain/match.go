package domain

// MatchLabel is the coarse display tier of a recommendation.
type MatchLabel string

const (
	MatchPerfect MatchLabel = "perfect"
	MatchGreat   MatchLabel = "great"
	MatchGood    MatchLabel = "good"
)

// ScoredCamp is one engine result. It is built fresh for every
// recommendation request and never mutated after ranking.
type ScoredCamp struct {
	Camp    Camp       `json:"camp"`
	Score   int        `json:"score"`
	Reasons []string   `json:"reasons"`
	Label   MatchLabel `json:"match_label"`
	// Rank is 1-based and assigned only after sort and truncation.
	Rank int `json:"rank"`
}
