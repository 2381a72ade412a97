package main

import (
	"context"
	"fmt"
	"time"

	"github.com/econloss/loss-calculator/internal/casestore"
	"github.com/econloss/loss-calculator/internal/casestore/filestore"
	"github.com/econloss/loss-calculator/internal/casestore/sqlite"
	"github.com/econloss/loss-calculator/internal/config"
	"github.com/econloss/loss-calculator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openStore opens the case store selected in settings.
func openStore(s config.StoreSettings) (casestore.Store, error) {
	switch s.Driver {
	case "file", "":
		store, err := filestore.Open(s.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite":
		store, err := sqlite.Open(s.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("invalid store driver: %s", s.Driver)
}

func (a *app) withStore(fn func(ctx context.Context, store casestore.Store) error) error {
	store, err := openStore(a.settings.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("close store", zap.String("op", "store"), zap.Error(err))
		}
	}()
	return fn(context.Background(), store)
}

func (a *app) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, list, show and delete cases in the case store",
	}
	cmd.AddCommand(a.storeSaveCmd(), a.storeListCmd(), a.storeShowCmd(), a.storeDeleteCmd())
	return cmd
}

func (a *app) storeSaveCmd() *cobra.Command {
	var id, name string
	cmd := &cobra.Command{
		Use:   "save <case-file>",
		Short: "Import a case file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCase(args[0], "store.save")
			if err != nil {
				return err
			}
			return a.withStore(func(ctx context.Context, store casestore.Store) error {
				rec, err := store.Save(ctx, casestore.Record{ID: id, Name: name, Case: c})
				if err != nil {
					return err
				}
				a.logger.Info("case saved",
					zap.String("op", "store.save"),
					zap.String("id", rec.ID),
					zap.String("driver", a.settings.Store.Driver),
				)
				fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record ID (default a new UUID; saving an existing ID replaces it)")
	cmd.Flags().StringVar(&name, "name", "", "record name (default plaintiff)")
	return cmd
}

func (a *app) storeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, store casestore.Store) error {
				list, err := store.List(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-36s  %-28s  %-10s  %s\n", "ID", "NAME", "TRIAL", "UPDATED")
				for _, s := range list {
					fmt.Fprintf(out, "%-36s  %-28s  %-10s  %s\n", s.ID, s.Name, s.DateOfTrial, s.UpdatedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
}

func (a *app) storeShowCmd() *cobra.Command {
	var format, asOf, export string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Compute a stored case and print a report, or export it with --export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, store casestore.Store) error {
				rec, err := store.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("case %s: %w", args[0], err)
				}
				if export != "" {
					if err := config.SaveToFile(rec.Case, export); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", rec.ID, export)
					return nil
				}
				at, err := parseAsOf(asOf)
				if err != nil {
					return err
				}
				if format == "" {
					format = a.settings.Output.Format
				}
				res := a.engine(false).CalculateAt(rec.Case, at)
				data, err := output.Render(output.NewReport(rec.Name, rec.Case, res, time.Now()), format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "report format (default from settings)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "valuation date for current age (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&export, "export", "", "write the stored case to this file instead of reporting")
	return cmd
}

func (a *app) storeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, store casestore.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("case %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
