package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nick-dorsch/ticklist/internal/export"
	"github.com/nick-dorsch/ticklist/internal/logging"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/internal/ui"
	"github.com/nick-dorsch/ticklist/pkg/models"
	"github.com/spf13/cobra"
)

func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the interactive task list editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(".")
			if err != nil {
				return err
			}

			// The editor owns the terminal, so logs go to a file.
			logger, closer, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer closer.Close()

			s, err := openSession(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			return ui.RunEditor(s.ctrl)
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				t, err := tasklist.NewGuarded(s.ctrl).Add(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added task %d: %s\n", t.ID, t.Text)
				return nil
			})
		},
	}
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between completed and incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				t, err := tasklist.NewGuarded(s.ctrl).Toggle(id)
				if err != nil {
					return err
				}
				state := "incomplete"
				if t.Completed {
					state = "completed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Marked task %d %s\n", t.ID, state)
				return nil
			})
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				t, err := tasklist.NewGuarded(s.ctrl).Edit(id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated task %d: %s\n", t.ID, t.Text)
				return nil
			})
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				if err := tasklist.NewGuarded(s.ctrl).Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted task %d\n", id)
				return nil
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := models.ParseFilter(filter)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				tasks := tasklist.FilterTasks(s.ctrl.Tasks(), f)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-15s %-6s %s\n", "ID", "DONE", "TEXT")
				fmt.Fprintln(out, "------------------------------------------------------------")
				for _, t := range tasks {
					done := "[ ]"
					if t.Completed {
						done = "[x]"
					}
					fmt.Fprintf(out, "%-15d %-6s %s\n", t.ID, done, t.Text)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter (all, completed, incomplete)")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show task totals and store status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				keys, err := s.db.Keys(cmd.Context())
				if err != nil {
					return err
				}
				completed, incomplete := s.ctrl.Counts()

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Ticklist Status")
				fmt.Fprintln(out, "===============")
				fmt.Fprintf(out, "Driver:      %s\n", s.db.Driver())
				if s.db.Driver() == "sqlite" {
					fmt.Fprintf(out, "Database:    %s\n", s.cfg.Storage.Path)
				}
				fmt.Fprintf(out, "Key:         %s\n", s.ctrl.Key())
				fmt.Fprintf(out, "Total Tasks: %d\n", completed+incomplete)

				fmt.Fprintln(out, "\nTask Breakdown:")
				fmt.Fprintf(out, "  Completed:  %d\n", completed)
				fmt.Fprintf(out, "  Incomplete: %d\n", incomplete)

				fmt.Fprintln(out, "\nStored Keys:")
				for _, k := range keys {
					fmt.Fprintf(out, "  - %s\n", k)
				}
				return nil
			})
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		out    string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as json, csv, markdown or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := models.ParseFilter(filter)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				tasks := tasklist.FilterTasks(s.ctrl.Tasks(), f)

				if out == "" {
					return export.Export(cmd.OutOrStdout(), tasks, format)
				}

				file, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				if err := export.Export(file, tasks, format); err != nil {
					file.Close()
					os.Remove(out)
					return err
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("failed to close %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d tasks to %s\n", len(tasks), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format ("+strings.Join(export.Formats, ", ")+")")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter (all, completed, incomplete)")
	return cmd
}
