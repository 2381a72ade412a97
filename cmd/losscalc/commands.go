package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/econloss/loss-calculator/internal/config"
	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) calculateCmd() *cobra.Command {
	var (
		format  string
		asOf    string
		name    string
		save    bool
		outDir  string
		include []string
		exclude []string
		debug   bool
	)
	cmd := &cobra.Command{
		Use:   "calculate <case-file>",
		Short: "Compute a case and print or save a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0], "calculate")
			if err != nil {
				return err
			}
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			if format == "" {
				format = a.settings.Output.Format
			}

			res := a.engine(debug).CalculateAt(c, at)
			if res.Scenarios, err = applySelection(res.Scenarios, include, exclude); err != nil {
				return err
			}
			report := output.NewReport(name, c, res, time.Now())

			if save {
				dir := outDir
				if dir == "" {
					dir = a.settings.Output.Directory
				}
				paths, err := output.GenerateReport(report, format, dir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					a.logger.Info("report written",
						zap.String("op", "calculate"),
						zap.String("path", p),
					)
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			data, err := output.Render(report, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "report format: "+fmt.Sprint(output.AvailableFormatterNames())+" (default from settings)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "valuation date for current age (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&name, "name", "", "case name shown in the report (default plaintiff)")
	cmd.Flags().BoolVar(&save, "save", false, "write the report to a timestamped file instead of stdout (format \"all\" writes several)")
	cmd.Flags().StringVar(&outDir, "output-dir", "", "directory for saved reports (default from settings)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "only include these scenario IDs in the report")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "exclude these scenario IDs from the report")
	cmd.Flags().BoolVar(&debug, "debug", false, "log the calculation breakdown at debug level")
	return cmd
}

func (a *app) scenariosCmd() *cobra.Command {
	var (
		asOf     string
		defaults bool
	)
	cmd := &cobra.Command{
		Use:   "scenarios <case-file>",
		Short: "Compare the case's assumption scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0], "scenarios")
			if err != nil {
				return err
			}
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			set := c.Scenarios
			if defaults || len(set) == 0 {
				set = domain.DefaultScenarioSet()
			}
			ce := a.engine(false)
			res := ce.CalculateAt(c, at)
			res.Scenarios = ce.RunScenarios(c, set, at)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %-44s %15s %15s\n", "SCENARIO", "ASSUMPTIONS", "FUTURE PV", "GRAND TOTAL")
			fmt.Fprintf(out, "%-16s %-44s %15s %15s\n", "case", "as entered", output.FormatCurrency(res.Summary.FutureLossPV), output.FormatCurrency(res.GrandTotal))
			for _, sp := range res.Scenarios {
				fmt.Fprintf(out, "%-16s %-44s %15s %15s\n", sp.ID, sp.Overrides.Describe(), output.FormatCurrency(sp.Summary.FutureLossPV), output.FormatCurrency(sp.GrandTotal))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "valuation date for current age (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "use the default conservative/standard/aggressive table instead of the case's")
	return cmd
}

func (a *app) exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example case file (YAML, JSON or CSV by extension; \"-\" prints YAML)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "example_case.yaml"
			if len(args) == 1 {
				target = args[0]
			}
			c := config.CreateExampleCase()
			if target == "-" {
				data, err := config.Encode(c, "yaml")
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := config.SaveToFile(c, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example case written to %s\n", target)
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <case-file>",
		Short: "Check a case file for missing or implausible inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			c, warnings, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if err := parser.ValidateCase(c); err != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					for _, e := range joined.Unwrap() {
						fmt.Fprintf(out, "problem: %v\n", e)
					}
				}
				return fmt.Errorf("case %s failed validation", args[0])
			}
			fmt.Fprintln(out, "Case is valid")
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <in-file> <out-file>",
		Short: "Convert a case file between YAML, JSON and flat CSV",
		Long:  "import reads a case leniently, falling back to defaults for unreadable fields, and writes it in the format implied by the output extension.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0], "import")
			if err != nil {
				return err
			}
			if err := config.SaveToFile(c, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
