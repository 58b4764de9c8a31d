package engine

import (
	"math"
	"strings"

	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/textnorm"
)

// Suggester is a best-effort fallback for contexts that have a category
// taxonomy but no rule or history wiring at all. It is deliberately a separate
// type so it can never shadow the staged pipeline in Engine.
type Suggester struct {
	categories []models.Category
	// cap bounds the suggestion confidence well below a rule hit.
	cap float64
}

// NewSuggester creates a suggester over the known categories.
func NewSuggester(categories []models.Category) *Suggester {
	return &Suggester{
		categories: categories,
		cap:        0.6,
	}
}

// Suggest proposes a category by matching the category's own name against the
// description: direct containment first, then token overlap scored as
// matchRatio*0.8, capped.
func (s *Suggester) Suggest(description string) models.CategorizationResult {
	normalized := textnorm.Normalize(description)
	if normalized == "" {
		return noMatch()
	}
	descTokens := textnorm.Tokenize(description)

	var best models.CategorizationResult
	for _, category := range s.categories {
		categoryName := textnorm.Normalize(category.Name)
		if categoryName == "" {
			continue
		}

		if strings.Contains(normalized, categoryName) {
			return models.CategorizationResult{
				Matched:    true,
				Category:   category.Name,
				Confidence: s.cap,
				Source:     models.SourceSimilarity,
			}
		}

		categoryTokens := strings.Split(categoryName, " ")
		matched := 0
		for _, ct := range categoryTokens {
			for _, dt := range descTokens {
				if strings.Contains(dt, ct) || strings.Contains(ct, dt) {
					matched++
					break
				}
			}
		}
		if matched == 0 {
			continue
		}
		ratio := float64(matched) / float64(len(categoryTokens))
		score := math.Min(s.cap, ratio*0.8)
		if score > best.Confidence {
			best = models.CategorizationResult{
				Matched:    true,
				Category:   category.Name,
				Confidence: score,
				Source:     models.SourceSimilarity,
			}
		}
	}

	if !best.Matched {
		return noMatch()
	}
	return best
}
