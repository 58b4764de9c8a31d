// Package store persists the categorization profile (rules and history
// patterns) as YAML files. It is a collaborator of the engine, never consulted
// by it implicitly.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// rulesDocument is the on-disk shape of the rules file.
type rulesDocument struct {
	Rules []models.CategorizationRule `yaml:"rules"`
}

// historyDocument is the on-disk shape of the history file.
type historyDocument struct {
	Patterns []models.HistoryPattern `yaml:"patterns"`
}

// ProfileStore loads and saves one user's categorization profile. It
// implements rules.Persister and history.Persister.
type ProfileStore struct {
	RulesFile   string
	HistoryFile string
	logger      logging.Logger
}

// NewProfileStore creates a store over the given file paths.
func NewProfileStore(rulesFile, historyFile string, logger logging.Logger) *ProfileStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ProfileStore{
		RulesFile:   rulesFile,
		HistoryFile: historyFile,
		logger:      logger,
	}
}

// LoadRules reads the rules file. A missing file is an empty profile, not an
// error.
func (s *ProfileStore) LoadRules() ([]models.CategorizationRule, error) {
	data, err := os.ReadFile(s.RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("rules file not found", logging.Field{Key: "path", Value: s.RulesFile})
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	s.logger.Debug("rules loaded", logging.Field{Key: "count", Value: len(doc.Rules)})
	return doc.Rules, nil
}

// SaveRules writes the rules file, creating the parent directory if needed.
func (s *ProfileStore) SaveRules(rules []models.CategorizationRule) error {
	return s.writeYAML(s.RulesFile, rulesDocument{Rules: rules})
}

// LoadHistory reads the history file. A missing file is an empty history.
func (s *ProfileStore) LoadHistory() ([]models.HistoryPattern, error) {
	data, err := os.ReadFile(s.HistoryFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("history file not found", logging.Field{Key: "path", Value: s.HistoryFile})
			return nil, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var doc historyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return doc.Patterns, nil
}

// SaveHistory writes the history file.
func (s *ProfileStore) SaveHistory(patterns []models.HistoryPattern) error {
	return s.writeYAML(s.HistoryFile, historyDocument{Patterns: patterns})
}

func (s *ProfileStore) writeYAML(path string, doc interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	s.logger.Debug("profile file saved", logging.Field{Key: "path", Value: path})
	return nil
}
