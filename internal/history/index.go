// Package history keeps a frequency table of previously confirmed
// description-to-category associations and supports approximate re-matching of
// new descriptions against it.
package history

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/textnorm"
)

// Options holds the matching heuristics. The defaults mirror the behavior the
// engine was tuned with; they are deliberately overridable because none of the
// thresholds have been validated against a labeled dataset.
type Options struct {
	// MinCommonWords is the overlap a pattern needs before the per-pattern
	// fraction kicks in.
	MinCommonWords int
	// MinWordLength excludes words at or below this length from overlap
	// comparison.
	MinWordLength int
	// ConfidenceWeight is multiplied by the occurrence count.
	ConfidenceWeight float64
	// ConfidenceCap bounds the returned confidence so history can never
	// outrank a rule match.
	ConfidenceCap float64
}

// DefaultOptions returns the standard matching heuristics.
func DefaultOptions() Options {
	return Options{
		MinCommonWords:   2,
		MinWordLength:    3,
		ConfidenceWeight: 0.1,
		ConfidenceCap:    0.8,
	}
}

// Persister is the capability interface a storage adapter implements to make
// the index durable.
type Persister interface {
	LoadHistory() ([]models.HistoryPattern, error)
	SaveHistory([]models.HistoryPattern) error
}

// Index is the in-memory frequency table, keyed by normalized description.
// Patterns are scanned linearly on lookup; profiles are small enough that an
// inverted index would be overkill.
type Index struct {
	mu        sync.RWMutex
	patterns  []models.HistoryPattern
	byKey     map[string]int
	opts      Options
	persister Persister
	isDirty   bool
	now       func() time.Time
}

// NewIndex creates an empty index. persister may be nil.
func NewIndex(opts Options, persister Persister) *Index {
	if opts.ConfidenceWeight <= 0 {
		opts = DefaultOptions()
	}
	return &Index{
		byKey:     make(map[string]int),
		opts:      opts,
		persister: persister,
		now:       time.Now,
	}
}

// Load replaces the in-memory patterns with the persisted ones.
func (ix *Index) Load() error {
	if ix.persister == nil {
		return nil
	}
	patterns, err := ix.persister.LoadHistory()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.patterns = patterns
	ix.byKey = make(map[string]int, len(patterns))
	for i, p := range patterns {
		ix.byKey[p.NormalizedDescription] = i
	}
	ix.isDirty = false
	return nil
}

// Save writes the patterns through the persister if anything changed.
func (ix *Index) Save() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.persister == nil || !ix.isDirty {
		return nil
	}
	if err := ix.persister.SaveHistory(ix.patterns); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	ix.isDirty = false
	return nil
}

// Observe records that a transaction with this description was confirmed into
// the given category. Re-observation of a known description increments its
// count and refreshes the last-used date; counts are never decremented.
func (ix *Index) Observe(description, category string) {
	key := textnorm.Normalize(description)
	if key == "" || category == "" {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if i, ok := ix.byKey[key]; ok {
		ix.patterns[i].OccurrenceCount++
		ix.patterns[i].Category = category
		ix.patterns[i].LastUsed = ix.now()
	} else {
		ix.byKey[key] = len(ix.patterns)
		ix.patterns = append(ix.patterns, models.HistoryPattern{
			NormalizedDescription: key,
			Category:              category,
			OccurrenceCount:       1,
			LastUsed:              ix.now(),
		})
	}
	ix.isDirty = true
}

// Patterns returns a copy of all stored patterns.
func (ix *Index) Patterns() []models.HistoryPattern {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]models.HistoryPattern, len(ix.patterns))
	copy(out, ix.patterns)
	return out
}

// BestMatch scans the stored patterns for the closest match to the given
// description. Among the candidates that clear the overlap threshold, the one
// seen most often wins (first found on ties). The returned confidence is
// occurrenceCount*weight, capped.
func (ix *Index) BestMatch(description string) (models.HistoryPattern, float64, bool) {
	queryWords := textnorm.SplitWords(description)
	if len(queryWords) == 0 {
		return models.HistoryPattern{}, 0, false
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var best models.HistoryPattern
	found := false
	for _, pattern := range ix.patterns {
		patternWords := strings.Split(pattern.NormalizedDescription, " ")
		common := ix.countCommonWords(queryWords, patternWords)
		needed := int(math.Min(float64(ix.opts.MinCommonWords), math.Ceil(float64(len(patternWords))*0.5)))
		if common < needed {
			continue
		}
		if !found || pattern.OccurrenceCount > best.OccurrenceCount {
			best = pattern
			found = true
		}
	}
	if !found {
		return models.HistoryPattern{}, 0, false
	}

	confidence := math.Min(ix.opts.ConfidenceCap, float64(best.OccurrenceCount)*ix.opts.ConfidenceWeight)
	return best, confidence, true
}

// countCommonWords counts the words longer than MinWordLength that appear in
// both lists. Substring containment in either direction counts, so plural and
// gender suffixes still match (mercado/mercados, padaria/padarias).
func (ix *Index) countCommonWords(queryWords, patternWords []string) int {
	count := 0
	for _, pw := range patternWords {
		if len(pw) <= ix.opts.MinWordLength {
			continue
		}
		for _, qw := range queryWords {
			if len(qw) <= ix.opts.MinWordLength {
				continue
			}
			if strings.Contains(qw, pw) || strings.Contains(pw, qw) {
				count++
				break
			}
		}
	}
	return count
}
