package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/nick-dorsch/ticklist/internal/config"
	"github.com/nick-dorsch/ticklist/internal/logging"
	"github.com/nick-dorsch/ticklist/internal/store"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/internal/ui"
	"github.com/spf13/cobra"
)

var Version = "dev"

// app holds the persistent flag values shared by every subcommand.
type app struct {
	root         *cobra.Command
	configPath   string
	dbPath       string
	driver       string
	dsn          string
	snapshotPath string
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	_, root := newApp()
	return root
}

func newApp() (*app, *cobra.Command) {
	a := &app{}

	root := &cobra.Command{
		Use:           "ticklist",
		Short:         "A small persistent to-do list",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runMenu,
	}
	a.root = root

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath("."), "Path to config file")
	pf.StringVar(&a.dbPath, "db-path", "", "Path to SQLite database file")
	pf.StringVar(&a.driver, "driver", "", "Storage driver (sqlite or mysql)")
	pf.StringVar(&a.dsn, "dsn", "", "MySQL data source name")
	pf.StringVar(&a.snapshotPath, "snapshot-path", "", "Path to snapshot file")
	pf.BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")

	root.AddCommand(
		a.initCmd(),
		a.openCmd(),
		a.addCmd(),
		a.doneCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.listCmd(),
		a.statusCmd(),
		a.exportCmd(),
		a.webCmd(),
		a.mcpCmd(),
		a.configCmd(),
	)

	return a, root
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	selected, err := ui.RunMenu(a.listSummary(cmd))
	if err != nil {
		return fmt.Errorf("failed to run menu: %w", err)
	}
	if selected == "" {
		return nil
	}

	sub, _, err := a.root.Find([]string{selected})
	if err != nil || sub == a.root {
		return fmt.Errorf("unknown command: %s", selected)
	}
	sub.SetContext(cmd.Context())
	return sub.RunE(sub, nil)
}

// listSummary loads the configured list for the launcher. It never creates
// a database, so it reports nothing before init.
func (a *app) listSummary(cmd *cobra.Command) ui.ListSummary {
	cfg, err := a.loadConfig(".")
	if err != nil {
		return ui.ListSummary{}
	}
	if cfg.Storage.Driver == store.DriverSQLite {
		if _, err := os.Stat(cfg.Storage.Path); err != nil {
			return ui.ListSummary{}
		}
	}
	cfg.Snapshot.Enabled = false

	s, err := openSession(cmd.Context(), cfg, logging.Discard())
	if err != nil {
		return ui.ListSummary{}
	}
	defer s.Close()

	completed, incomplete := s.ctrl.Counts()
	return ui.ListSummary{Loaded: true, Completed: completed, Incomplete: incomplete}
}

func (a *app) changed(name string) bool {
	return a.root.PersistentFlags().Changed(name)
}

// loadConfig reads the config for the project rooted at baseDir and applies
// flag overrides. Relative paths from the file are resolved against baseDir.
func (a *app) loadConfig(baseDir string) (*config.Config, error) {
	path := a.configPath
	if !a.changed("config") {
		path = config.DefaultPath(baseDir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if baseDir != "." {
		cfg.Storage.Path = resolve(baseDir, cfg.Storage.Path)
		cfg.Snapshot.Path = resolve(baseDir, cfg.Snapshot.Path)
		cfg.Log.File = resolve(baseDir, cfg.Log.File)
	}

	if a.changed("driver") {
		cfg.Storage.Driver = a.driver
	}
	if a.changed("db-path") {
		cfg.Storage.Path = a.dbPath
	}
	if a.changed("dsn") {
		cfg.Storage.DSN = a.dsn
	}
	if a.changed("snapshot-path") {
		cfg.Snapshot.Path = a.snapshotPath
		cfg.Snapshot.Enabled = a.snapshotPath != ""
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func (a *app) logger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	return logging.New(w, cfg.Log.Level)
}

// session is an open store plus a loaded task list.
type session struct {
	cfg    *config.Config
	db     *store.DB
	ctrl   *tasklist.Controller
	logger *log.Logger
}

func openSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*session, error) {
	database, err := store.OpenDSN(cfg.Storage.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := database.Init(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Snapshot.Enabled {
		database.EnableAutoSnapshot(cfg.Snapshot.Path, func(err error) {
			logger.Warn("failed to export snapshot", "path", cfg.Snapshot.Path, "err", err)
		})
	}

	ctrl := tasklist.New(database,
		tasklist.WithKey(cfg.Storage.Key),
		tasklist.WithLogger(logger),
	)
	ctrl.Initialize()

	return &session{cfg: cfg, db: database, ctrl: ctrl, logger: logger}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// withSession loads config, opens the store and runs fn, logging to the
// command's stderr.
func (a *app) withSession(cmd *cobra.Command, fn func(s *session) error) error {
	cfg, err := a.loadConfig(".")
	if err != nil {
		return err
	}

	logger, err := a.logger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
