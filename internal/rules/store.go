// Package rules manages the ordered collection of categorization rules that
// map description keywords to categories.
package rules

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"fpereira/extrato-csv/internal/models"

	"github.com/google/uuid"
)

// Persister is the capability interface a storage adapter implements to give
// the store durability. The store itself never touches the filesystem.
type Persister interface {
	LoadRules() ([]models.CategorizationRule, error)
	SaveRules([]models.CategorizationRule) error
}

// Store holds categorization rules in memory. All mutations go through
// explicit Add/Update/Remove calls; the engine only ever reads.
type Store struct {
	mu        sync.RWMutex
	rules     []models.CategorizationRule
	persister Persister
	isDirty   bool
	now       func() time.Time
}

// NewStore creates an empty rule store. persister may be nil for a purely
// in-memory store.
func NewStore(persister Persister) *Store {
	return &Store{
		persister: persister,
		now:       time.Now,
	}
}

// Load replaces the in-memory rules with the persisted ones. A nil persister
// leaves the store empty. Persisted rules go through the same validation as
// Add, so a hand-edited rules file cannot inject rules the API would reject.
func (s *Store) Load() error {
	if s.persister == nil {
		return nil
	}
	rules, err := s.persister.LoadRules()
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	for i := range rules {
		if len(rules[i].Keywords) == 0 {
			return fmt.Errorf("loading rules: rule %q has no keywords", rules[i].Name)
		}
		if rules[i].Category == "" {
			return fmt.Errorf("loading rules: rule %q has no category", rules[i].Name)
		}
		if rules[i].ApplicableType == "" {
			rules[i].ApplicableType = models.TypeBoth
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = rules
	s.isDirty = false
	return nil
}

// Save writes the rules through the persister if anything changed since the
// last save.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister == nil || !s.isDirty {
		return nil
	}
	if err := s.persister.SaveRules(s.rules); err != nil {
		return fmt.Errorf("saving rules: %w", err)
	}
	s.isDirty = false
	return nil
}

// Add validates the rule, assigns it a fresh id and creation timestamp, and
// appends it. Callers never supply the id.
func (s *Store) Add(rule models.CategorizationRule) (models.CategorizationRule, error) {
	if len(rule.Keywords) == 0 {
		return models.CategorizationRule{}, fmt.Errorf("rule %q has no keywords", rule.Name)
	}
	if rule.Category == "" {
		return models.CategorizationRule{}, fmt.Errorf("rule %q has no category", rule.Name)
	}
	if rule.ApplicableType == "" {
		rule.ApplicableType = models.TypeBoth
	}

	rule.ID = uuid.New().String()
	rule.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, rule)
	s.isDirty = true
	return rule, nil
}

// Update applies the non-nil fields of patch to the rule with the given id.
func (s *Store) Update(id string, patch models.RulePatch) (models.CategorizationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID != id {
			continue
		}
		rule := &s.rules[i]
		if patch.Name != nil {
			rule.Name = *patch.Name
		}
		if patch.Keywords != nil {
			if len(patch.Keywords) == 0 {
				return models.CategorizationRule{}, fmt.Errorf("rule %s: keywords cannot be emptied", id)
			}
			rule.Keywords = patch.Keywords
		}
		if patch.Category != nil {
			if *patch.Category == "" {
				return models.CategorizationRule{}, fmt.Errorf("rule %s: category cannot be emptied", id)
			}
			rule.Category = *patch.Category
		}
		if patch.ApplicableType != nil {
			rule.ApplicableType = *patch.ApplicableType
		}
		if patch.Active != nil {
			rule.Active = *patch.Active
		}
		if patch.Priority != nil {
			rule.Priority = *patch.Priority
		}
		s.isDirty = true
		return *rule, nil
	}
	return models.CategorizationRule{}, fmt.Errorf("rule %s not found", id)
}

// Remove deletes the rule with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			s.isDirty = true
			return nil
		}
	}
	return fmt.Errorf("rule %s not found", id)
}

// List returns a copy of the rules in registration order, optionally filtered
// to active ones.
func (s *Store) List(activeOnly bool) []models.CategorizationRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CategorizationRule, 0, len(s.rules))
	for _, rule := range s.rules {
		if activeOnly && !rule.Active {
			continue
		}
		out = append(out, rule)
	}
	return out
}

// ListForType returns the active rules applicable to the given transaction
// type, sorted ascending by priority. The sort is stable so equal priorities
// keep registration order.
func (s *Store) ListForType(txType models.TransactionType) []models.CategorizationRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CategorizationRule, 0, len(s.rules))
	for _, rule := range s.rules {
		if !rule.Active {
			continue
		}
		if !rule.ApplicableType.AppliesTo(txType) {
			continue
		}
		out = append(out, rule)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// MaxPriority returns the highest priority value among all rules, or 0 when
// the store is empty.
func (s *Store) MaxPriority() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 0
	for _, rule := range s.rules {
		if rule.Priority > max {
			max = rule.Priority
		}
	}
	return max
}
