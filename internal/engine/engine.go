// Package engine orchestrates categorization: user rules first, learned
// history second, nothing else. The stages are strictly ordered; this is not a
// weighted blend.
package engine

import (
	"strings"

	"fpereira/extrato-csv/internal/history"
	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/rules"
	"fpereira/extrato-csv/internal/textnorm"
)

// Options holds the engine's tunable constants.
type Options struct {
	// RuleConfidence is the fixed confidence assigned to every rule hit.
	// Rules are authoritative; history confidence is capped below this.
	RuleConfidence float64
	// LearnedKeywordLimit bounds how many tokens an override turns into
	// keywords.
	LearnedKeywordLimit int
}

// DefaultOptions returns the standard engine constants.
func DefaultOptions() Options {
	return Options{
		RuleConfidence:      0.9,
		LearnedKeywordLimit: 3,
	}
}

// Engine resolves a category for a transaction description. It holds its
// collaborators by reference and never persists anything itself.
type Engine struct {
	rules   *rules.Store
	history *history.Index
	opts    Options
	logger  logging.Logger
}

// New creates an engine over the given rule store and history index.
func New(ruleStore *rules.Store, historyIndex *history.Index, opts Options, logger logging.Logger) *Engine {
	if opts.RuleConfidence <= 0 {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{
		rules:   ruleStore,
		history: historyIndex,
		opts:    opts,
		logger:  logger,
	}
}

// Classify assigns a category to a single description. Malformed input never
// errors: an empty description and a description matching nothing both come
// back as a valid no-match result.
func (e *Engine) Classify(description string, txType models.TransactionType) models.CategorizationResult {
	normalized := textnorm.Normalize(description)
	if normalized == "" {
		return noMatch()
	}

	// Stage 1: rules, ascending priority, first keyword hit wins.
	for _, rule := range e.rules.ListForType(txType) {
		for _, keyword := range rule.Keywords {
			// A keyword that normalizes to nothing (punctuation only) must
			// not degenerate into a match-everything rule.
			normalizedKeyword := textnorm.Normalize(keyword)
			if normalizedKeyword == "" {
				continue
			}
			if strings.Contains(normalized, normalizedKeyword) {
				e.logger.Debug("rule matched",
					logging.Field{Key: "rule", Value: rule.Name},
					logging.Field{Key: "category", Value: rule.Category})
				return models.CategorizationResult{
					Matched:       true,
					Category:      rule.Category,
					Confidence:    e.opts.RuleConfidence,
					Source:        models.SourceRule,
					MatchedRuleID: rule.ID,
				}
			}
		}
	}

	// Stage 2: history, only when no rule fired.
	if pattern, confidence, ok := e.history.BestMatch(description); ok {
		e.logger.Debug("history matched",
			logging.Field{Key: "pattern", Value: pattern.NormalizedDescription},
			logging.Field{Key: "category", Value: pattern.Category})
		return models.CategorizationResult{
			Matched:    true,
			Category:   pattern.Category,
			Confidence: confidence,
			Source:     models.SourceHistory,
		}
	}

	return noMatch()
}

// ClassifyBatch maps Classify over the descriptions, preserving order. Items
// are independent of each other.
func (e *Engine) ClassifyBatch(descriptions []string, txType models.TransactionType) []models.CategorizationResult {
	results := make([]models.CategorizationResult, len(descriptions))
	for i, description := range descriptions {
		results[i] = e.Classify(description, txType)
	}
	return results
}

// LearnFromOverride turns a manual correction into a durable rule: the first
// few meaningful tokens of the description become keywords for the chosen
// category. Nothing is registered when an existing active rule for that
// category already shares one of the keywords, to avoid rule explosion.
func (e *Engine) LearnFromOverride(description, category string, txType models.TransactionType) error {
	if category == "" {
		return nil
	}
	tokens := textnorm.Tokenize(description)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > e.opts.LearnedKeywordLimit {
		tokens = tokens[:e.opts.LearnedKeywordLimit]
	}

	for _, rule := range e.rules.List(true) {
		if rule.Category != category {
			continue
		}
		for _, keyword := range rule.Keywords {
			normalizedKeyword := textnorm.Normalize(keyword)
			for _, token := range tokens {
				if normalizedKeyword == token {
					e.logger.Debug("override already covered by rule",
						logging.Field{Key: "rule", Value: rule.Name})
					return nil
				}
			}
		}
	}

	_, err := e.rules.Add(models.CategorizationRule{
		Name:           "Aprendido: " + category,
		Keywords:       tokens,
		Category:       category,
		ApplicableType: txType,
		Active:         true,
		// Appended after every existing rule so learned rules never shadow
		// user-authored ones.
		Priority: e.rules.MaxPriority() + 1,
	})
	return err
}

// Confirm records a finalized categorization into the history index so future
// similar descriptions can be re-matched.
func (e *Engine) Confirm(description, category string) {
	e.history.Observe(description, category)
}

func noMatch() models.CategorizationResult {
	return models.CategorizationResult{
		Matched:    false,
		Category:   models.CategoryUncategorized,
		Confidence: 0,
		Source:     models.SourceNone,
	}
}
