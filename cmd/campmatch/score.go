package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/campmatch/internal/config"
	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/matching"
	"github.com/pkordes/campmatch/internal/validation"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank a YAML camp catalog against YAML preferences",
	Long: `score runs the same Scorer and Ranker as the server without a database.
The catalog file holds a top-level "camps" list; the preferences file holds
the quiz answers. Ranked results are printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd.OutOrStdout(), scoreOpts)
	},
}

type scoreOptions struct {
	catalogPath  string
	prefsPath    string
	matchingPath string
	// at is a YYYY-MM-DD date pinning the early-bird clock. Empty means now.
	at           string
}

var scoreOpts scoreOptions

func init() {
	scoreCmd.Flags().StringVar(&scoreOpts.catalogPath, "catalog", "", "YAML file with the camp catalog")
	scoreCmd.Flags().StringVar(&scoreOpts.prefsPath, "prefs", "", "YAML file with the quiz preferences")
	scoreCmd.Flags().StringVar(&scoreOpts.matchingPath, "matching", os.Getenv("MATCHING_CONFIG"), "Optional YAML file overriding the matching config")
	scoreCmd.Flags().StringVar(&scoreOpts.at, "at", "", "Evaluate early-bird pricing as of this date (YYYY-MM-DD)")
	_ = scoreCmd.MarkFlagRequired("catalog")
	_ = scoreCmd.MarkFlagRequired("prefs")
}

type catalogFile struct {
	Camps []domain.Camp `yaml:"camps"`
}

// scoreLine is one row of score output.
type scoreLine struct {
	Rank       int               `json:"rank"`
	Camp       string            `json:"camp"`
	Score      int               `json:"score"`
	MatchLabel domain.MatchLabel `json:"match_label"`
	Reasons    []string          `json:"reasons"`
}

func runScore(out io.Writer, opts scoreOptions) error {
	var catalog catalogFile
	if err := readYAML(opts.catalogPath, &catalog); err != nil {
		return err
	}
	var prefs domain.Preferences
	if err := readYAML(opts.prefsPath, &prefs); err != nil {
		return err
	}
	if err := validation.Struct(&prefs); err != nil {
		return fmt.Errorf("preferences %s: %w", opts.prefsPath, err)
	}

	cfg, err := config.LoadMatching(opts.matchingPath)
	if err != nil {
		return err
	}

	var scorerOpts []matching.ScorerOption
	if opts.at != "" {
		at, err := time.Parse(time.DateOnly, opts.at)
		if err != nil {
			return fmt.Errorf("--at must be YYYY-MM-DD: %w", err)
		}
		scorerOpts = append(scorerOpts, matching.WithClock(func() time.Time { return at }))
	}

	ranked := matching.NewEngine(cfg, scorerOpts...).Recommend(publishedOnly(catalog.Camps), prefs)

	lines := make([]scoreLine, len(ranked))
	for i, sc := range ranked {
		lines[i] = scoreLine{
			Rank:       sc.Rank,
			Camp:       sc.Camp.Name,
			Score:      sc.Score,
			MatchLabel: sc.Label,
			Reasons:    sc.Reasons,
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(lines)
}

// publishedOnly keeps camps whose status is published. Fixtures often leave
// status out, so an empty status counts as published.
func publishedOnly(camps []domain.Camp) []domain.Camp {
	out := make([]domain.Camp, 0, len(camps))
	for _, c := range camps {
		if c.Status == "" || c.Status == domain.CampStatusPublished {
			out = append(out, c)
		}
	}
	return out
}

func readYAML(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
