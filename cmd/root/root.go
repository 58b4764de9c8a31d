// Package root contains the root command and the shared application wiring
// used by every subcommand.
package root

import (
	"fmt"

	"fpereira/extrato-csv/internal/config"
	"fpereira/extrato-csv/internal/engine"
	"fpereira/extrato-csv/internal/history"
	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/rules"
	"fpereira/extrato-csv/internal/store"

	"github.com/spf13/cobra"
)

// App bundles the configured collaborators the subcommands operate on.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Rules   *rules.Store
	History *history.Index
	Engine  *engine.Engine
}

var (
	// Application is the shared wiring, built in PersistentPreRunE.
	Application *App

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato-csv",
		Short: "Normalize Brazilian bank CSV exports and categorize their transactions.",
		Long: `extrato-csv reads CSV statement exports (Nubank, Inter, Bradesco or any
generic export), normalizes dates, amounts and transaction types into a
canonical format, and assigns each transaction a category using your rules
and what it has learned from your history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if Application == nil {
				return
			}
			// Persist anything a command learned during its run.
			if err := Application.Rules.Save(); err != nil {
				Application.Logger.WithError(err).Warn("Failed to save rules")
			}
			if err := Application.History.Save(); err != nil {
				Application.Logger.WithError(err).Warn("Failed to save history")
			}
		},
	}
)

func setup() error {
	config.LoadEnv()
	cfg, err := config.Initialize()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger := config.NewLogger(cfg)

	profile := store.NewProfileStore(cfg.RulesFile(), cfg.HistoryFile(), logger)

	ruleStore := rules.NewStore(profile)
	if err := ruleStore.Load(); err != nil {
		return err
	}
	if len(ruleStore.List(false)) == 0 {
		logger.Info("No rules found, seeding default rule set")
		if err := rules.SeedDefaults(ruleStore); err != nil {
			return err
		}
	}

	historyIndex := history.NewIndex(history.Options{
		MinCommonWords:   cfg.Categorization.MinCommonWords,
		MinWordLength:    cfg.Categorization.MinWordLength,
		ConfidenceWeight: cfg.Categorization.HistoryWeight,
		ConfidenceCap:    cfg.Categorization.HistoryCap,
	}, profile)
	if err := historyIndex.Load(); err != nil {
		return err
	}

	Application = &App{
		Config:  cfg,
		Logger:  logger,
		Rules:   ruleStore,
		History: historyIndex,
		Engine: engine.New(ruleStore, historyIndex, engine.Options{
			RuleConfidence:      cfg.Categorization.RuleConfidence,
			LearnedKeywordLimit: cfg.Categorization.LearnedKeywordLimit,
		}, logger),
	}
	return nil
}
