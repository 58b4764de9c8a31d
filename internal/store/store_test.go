package store

import (
	"path/filepath"
	"testing"
	"time"

	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ProfileStore {
	t.Helper()
	dir := t.TempDir()
	return NewProfileStore(
		filepath.Join(dir, "profile", "rules.yaml"),
		filepath.Join(dir, "profile", "history.yaml"),
		logging.NewMockLogger(),
	)
}

func TestRulesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rules := []models.CategorizationRule{
		{
			ID:             "abc",
			Name:           "Transporte por app",
			Keywords:       []string{"uber", "99pop"},
			Category:       models.CategoryTransport,
			ApplicableType: models.TypeExpense,
			Active:         true,
			Priority:       10,
			CreatedAt:      time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.SaveRules(rules))

	loaded, err := s.LoadRules()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, rules[0].ID, loaded[0].ID)
	assert.Equal(t, rules[0].Keywords, loaded[0].Keywords)
	assert.Equal(t, rules[0].ApplicableType, loaded[0].ApplicableType)
}

func TestHistoryRoundTrip(t *testing.T) {
	s := newTestStore(t)

	patterns := []models.HistoryPattern{
		{
			NormalizedDescription: "supermercado pao de acucar",
			Category:              models.CategoryFood,
			OccurrenceCount:       3,
			LastUsed:              time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.SaveHistory(patterns))

	loaded, err := s.LoadHistory()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 3, loaded[0].OccurrenceCount)
}

func TestMissingFilesAreEmptyProfile(t *testing.T) {
	s := newTestStore(t)

	rules, err := s.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, rules)

	patterns, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, patterns)
}
