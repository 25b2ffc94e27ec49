package matching

import (
	"cmp"
	"slices"

	"github.com/pkordes/campmatch/internal/domain"
)

// Ranker turns scored camps into the final ordered result list.
type Ranker struct {
	minScore int
	topN     int
	labels   LabelThresholds
}

// NewRanker builds a Ranker from the MinScore, TopN and Labels of cfg.
func NewRanker(cfg Config) *Ranker {
	return &Ranker{minScore: cfg.MinScore, topN: cfg.TopN, labels: cfg.Labels}
}

// Rank drops camps scoring below the minimum, sorts the rest, keeps the
// first topN and assigns labels and 1-based ranks. The input slice is not
// modified. The result is never nil.
//
// Equal scores are ordered by, in turn: more available spots, an early-bird
// price, featured, and the more recently created camp. Camps equal on every
// key keep their input order.
func (r *Ranker) Rank(scored []domain.ScoredCamp) []domain.ScoredCamp {
	out := make([]domain.ScoredCamp, 0, len(scored))
	for _, sc := range scored {
		if sc.Score >= r.minScore {
			out = append(out, sc)
		}
	}

	slices.SortStableFunc(out, compareScored)

	if r.topN >= 0 && len(out) > r.topN {
		out = out[:r.topN]
	}
	for i := range out {
		out[i].Rank = i + 1
		out[i].Label = Label(out[i].Score, r.labels)
	}
	return out
}

// compareScored orders a before b when a is the better match.
func compareScored(a, b domain.ScoredCamp) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Camp.AvailableSpots(), a.Camp.AvailableSpots()); c != 0 {
		return c
	}
	if c := compareTrueFirst(a.Camp.HasEarlyBird(), b.Camp.HasEarlyBird()); c != 0 {
		return c
	}
	if c := compareTrueFirst(a.Camp.Featured, b.Camp.Featured); c != 0 {
		return c
	}
	return b.Camp.CreatedAt.Compare(a.Camp.CreatedAt)
}

func compareTrueFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

// Label classifies a score into a match tier. It does not depend on rank.
func Label(score int, t LabelThresholds) domain.MatchLabel {
	switch {
	case score >= t.Perfect:
		return domain.MatchPerfect
	case score >= t.Great:
		return domain.MatchGreat
	}
	return domain.MatchGood
}
