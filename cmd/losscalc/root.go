package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/calculation"
	"github.com/econloss/loss-calculator/internal/config"
	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSettingsFile = "losscalc.yaml"

// app carries what the commands share once settings are loaded.
type app struct {
	settingsPath string
	logLevel     string

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "losscalc",
		Short:         "Forensic economic loss calculator",
		Long:          "losscalc projects past and future lost earnings, household services and life care costs for personal injury cases.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.settingsPath, "config", defaultSettingsFile, "settings file (YAML); missing is fine")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.calculateCmd(),
		a.scenariosCmd(),
		a.exampleCmd(),
		a.validateCmd(),
		a.importCmd(),
		a.storeCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) init() error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(settings.Logging, a.logLevel)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	return nil
}

// engine builds a calculation engine from the engine settings.
func (a *app) engine(debug bool) *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.SetLogger(a.logger.Sugar())
	ce.Options = calculation.ScenarioOptions{
		RerunAncillary: a.settings.Engine.RerunAncillary,
		Parallel:       a.settings.Engine.Parallel,
		MaxWorkers:     a.settings.Engine.MaxWorkers,
	}
	ce.Debug = debug || a.settings.Engine.Debug
	return ce
}

// loadCase reads a case file and logs import warnings.
func (a *app) loadCase(path, op string) (domain.Case, error) {
	c, warnings, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return domain.Case{}, err
	}
	a.logWarnings(op, path, warnings)
	return c, nil
}

func (a *app) logWarnings(op, source string, warnings []string) {
	for _, w := range warnings {
		a.logger.Warn("input warning: "+w,
			zap.String("op", op),
			zap.String("source", source),
		)
	}
}

// parseAsOf reads a valuation date flag; blank means today.
func parseAsOf(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	t, ok := dateutil.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", raw)
	}
	return t, nil
}

// applySelection marks scenarios included or excluded by ID.
func applySelection(list []domain.ScenarioProjection, include, exclude []string) ([]domain.ScenarioProjection, error) {
	known := make(map[string]bool, len(list))
	for _, sp := range list {
		known[sp.ID] = true
	}
	sel := map[string]bool{}
	if len(include) > 0 {
		for id := range known {
			sel[id] = false
		}
		for _, id := range include {
			if !known[id] {
				return nil, fmt.Errorf("unknown scenario %q", id)
			}
			sel[id] = true
		}
	}
	for _, id := range exclude {
		if !known[id] {
			return nil, fmt.Errorf("unknown scenario %q", id)
		}
		sel[id] = false
	}
	return domain.ApplyInclusion(list, sel), nil
}
