package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campmatch/internal/domain"
)

const catalogYAML = `
camps:
  - name: Galway Soccer Week
    location: Galway, Ireland
    age_min: 8
    age_max: 12
    price: 250
    capacity: 20
    enrolled: 5
    categories:
      - name: Sports
        slug: sports
  - name: Pottery Studio
    location: Cork, Ireland
    age_min: 8
    age_max: 12
    price: 180
    capacity: 20
    enrolled: 5
    categories:
      - name: Arts
        slug: arts
  - name: Teen Sailing
    location: Kinsale, Cork
    age_min: 14
    age_max: 17
    price: 300
    capacity: 10
    categories:
      - name: Sports
        slug: sports
  - name: Unpublished Football
    status: draft
    age_min: 8
    age_max: 12
    price: 100
    capacity: 20
    categories:
      - name: Sports
        slug: sports
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunScore(t *testing.T) {
	opts := scoreOptions{
		catalogPath: writeFile(t, "camps.yaml", catalogYAML),
		prefsPath:   writeFile(t, "prefs.yaml", "child_age: 10\ninterests: [sports]\n"),
		at:          "2026-05-01",
	}

	var out bytes.Buffer
	require.NoError(t, runScore(&out, opts))

	var lines []scoreLine
	require.NoError(t, json.Unmarshal(out.Bytes(), &lines))
	require.Len(t, lines, 1, "only the in-age published sports camp clears the threshold")
	assert.Equal(t, "Galway Soccer Week", lines[0].Camp)
	assert.Equal(t, 1, lines[0].Rank)
	assert.Equal(t, 75, lines[0].Score)
	assert.Equal(t, domain.MatchGreat, lines[0].MatchLabel)
	assert.Equal(t, []string{"Perfect for age 10 (ages 8-12)", "Matches interests: Sports"}, lines[0].Reasons)
}

func TestRunScore_MatchingOverride(t *testing.T) {
	opts := scoreOptions{
		catalogPath:  writeFile(t, "camps.yaml", catalogYAML),
		prefsPath:    writeFile(t, "prefs.yaml", "child_age: 10\ninterests: [sports]\n"),
		matchingPath: writeFile(t, "matching.yaml", "min_score: 1\n"),
	}

	var out bytes.Buffer
	require.NoError(t, runScore(&out, opts))

	var lines []scoreLine
	require.NoError(t, json.Unmarshal(out.Bytes(), &lines))
	require.Len(t, lines, 2)
	assert.Equal(t, "Galway Soccer Week", lines[0].Camp)
	assert.Equal(t, "Pottery Studio", lines[1].Camp)
	assert.Equal(t, 2, lines[1].Rank)
}

func TestRunScore_NothingMatches(t *testing.T) {
	opts := scoreOptions{
		catalogPath: writeFile(t, "camps.yaml", catalogYAML),
		prefsPath:   writeFile(t, "prefs.yaml", "child_age: 5\n"),
	}

	var out bytes.Buffer
	require.NoError(t, runScore(&out, opts))
	assert.JSONEq(t, `[]`, out.String())
}

func TestRunScore_InvalidPreferences(t *testing.T) {
	opts := scoreOptions{
		catalogPath: writeFile(t, "camps.yaml", catalogYAML),
		prefsPath:   writeFile(t, "prefs.yaml", "interests: [sports]\n"),
	}

	err := runScore(&bytes.Buffer{}, opts)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRunScore_BadDate(t *testing.T) {
	opts := scoreOptions{
		catalogPath: writeFile(t, "camps.yaml", catalogYAML),
		prefsPath:   writeFile(t, "prefs.yaml", "child_age: 10\n"),
		at:          "01/05/2026",
	}

	assert.Error(t, runScore(&bytes.Buffer{}, opts))
}

func TestRunScore_MissingFile(t *testing.T) {
	opts := scoreOptions{
		catalogPath: filepath.Join(t.TempDir(), "nope.yaml"),
		prefsPath:   writeFile(t, "prefs.yaml", "child_age: 10\n"),
	}

	assert.ErrorIs(t, runScore(&bytes.Buffer{}, opts), os.ErrNotExist)
}

func TestPruneInterval(t *testing.T) {
	tests := []struct {
		ttl  string
		want string
	}{
		{"72h", "1h"},
		{"2h", "30m"},
		{"1m", "1m"},
	}
	for _, tc := range tests {
		t.Run(tc.ttl, func(t *testing.T) {
			assert.Equal(t, mustDuration(t, tc.want), pruneInterval(mustDuration(t, tc.ttl)))
		})
	}
}

func mustDuration(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := time.ParseDuration(s)
	require.NoError(t, err)
	return d
}
