// Package models provides the data structures shared by the categorization
// engine, the CSV normalization pipeline, and their persistence adapters.
package models

import "time"

// CategorizationRule maps a set of keywords to a category. Keywords are matched
// case- and accent-insensitively as substrings of the normalized description.
type CategorizationRule struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Keywords       []string        `yaml:"keywords"`
	Category       string          `yaml:"category"`
	ApplicableType TransactionType `yaml:"applicable_type"`
	Active         bool            `yaml:"active"`
	Priority       int             `yaml:"priority"`
	CreatedAt      time.Time       `yaml:"created_at"`
}

// RulePatch carries optional field updates for an existing rule. Nil fields are
// left untouched.
type RulePatch struct {
	Name           *string
	Keywords       []string
	Category       *string
	ApplicableType *TransactionType
	Active         *bool
	Priority       *int
}

// HistoryPattern is a learned description-to-category association, weighted by
// how often it has been confirmed. There is one entry per distinct normalized
// description; OccurrenceCount only ever grows.
type HistoryPattern struct {
	NormalizedDescription string    `yaml:"description"`
	Category              string    `yaml:"category"`
	OccurrenceCount       int       `yaml:"occurrences"`
	LastUsed              time.Time `yaml:"last_used"`
}

// Category is a known category from the taxonomy collaborator, used only by the
// best-effort suggestion fallback.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}
