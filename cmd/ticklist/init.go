package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nick-dorsch/ticklist/internal/config"
	"github.com/spf13/cobra"
)

const gitignoreContent = "ticklist.db*\nticklist.log\n"

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a .ticklist directory with config and database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDir := "."
			if len(args) > 0 {
				targetDir = args[0]
			}
			out := cmd.OutOrStdout()

			dir := filepath.Join(targetDir, config.DirName)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s directory: %w", config.DirName, err)
			}
			fmt.Fprintf(out, "✓ Created %s/ directory\n", config.DirName)

			gitignorePath := filepath.Join(dir, ".gitignore")
			if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0644); err != nil {
				return fmt.Errorf("failed to create .gitignore: %w", err)
			}
			fmt.Fprintf(out, "✓ Created %s/.gitignore\n", config.DirName)

			configPath := config.DefaultPath(targetDir)
			if a.changed("config") {
				configPath = a.configPath
			}
			written, err := config.WriteDefault(configPath)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(out, "✓ Wrote default config to %s\n", configPath)
			}

			cfg, err := a.loadConfig(targetDir)
			if err != nil {
				return err
			}
			logger, err := a.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			// Import before enabling auto snapshots so the file is not
			// rewritten while it is being read.
			snapshotPath := cfg.Snapshot.Path
			cfg.Snapshot.Enabled = false

			s, err := openSession(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			if s.db.Driver() == "sqlite" {
				fmt.Fprintf(out, "✓ Initialized database at %s\n", cfg.Storage.Path)
			} else {
				fmt.Fprintf(out, "✓ Initialized %s database\n", s.db.Driver())
			}

			if snapshotPath != "" {
				if _, err := os.Stat(snapshotPath); err == nil {
					n, err := s.db.ImportSnapshot(cmd.Context(), snapshotPath)
					if err != nil {
						return fmt.Errorf("failed to import snapshot: %w", err)
					}
					fmt.Fprintf(out, "✓ Imported %d entries from %s\n", n, snapshotPath)
				}
			}

			fmt.Fprintln(out, "✓ Ticklist initialized successfully")
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(".")
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
