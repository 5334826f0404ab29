package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/logging"
	"github.com/javiermolinar/gantt/internal/schedule"
	"github.com/javiermolinar/gantt/internal/seed"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	root       *cobra.Command
	now        func() time.Time
	configPath string // --config, reloads the configuration when set
	seedPath   string // --seed, overrides seed.path
	mode       string // --mode, overrides view.default_mode
	date       string // --date, anchor of the visible window
	debug      bool   // Enable debug logging
	noCollab   bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "gantt",
		Short: "A terminal Gantt chart for small teams",
		Long: `Gantt shows a team's tasks on a day, week or month timeline.

Drag bars with the mouse to move or resize tasks, assign members and
watch for double-booked people. Without a subcommand it opens the
interactive timeline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.applyFlags()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugFile+")")
	flags.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	flags.StringVar(&a.seedPath, "seed", "", "Seed file with members and tasks (.toml, .yaml)")
	flags.StringVar(&a.mode, "mode", "", "View mode: day, week or month")
	flags.StringVar(&a.date, "date", "", "Date to show (YYYY-MM-DD, today, next-week, monday...)")
	a.root.Flags().BoolVar(&a.noCollab, "no-collab", false, "Disable the simulated collaborator")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.membersCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gantt %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// applyFlags folds the global flags into the configuration.
func (a *App) applyFlags() error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}
	if a.mode != "" {
		mode, err := timeline.ParseMode(a.mode)
		if err != nil {
			return err
		}
		a.config.View.DefaultMode = string(mode)
	}
	if a.seedPath != "" {
		a.config.Seed.Path = a.seedPath
	}
	if a.noCollab {
		a.config.Collaborator.Enabled = false
	}
	if a.debug {
		if a.config.Log.Path == "" {
			a.config.Log.Path = logging.DebugFile
		}
		a.config.Log.Level = "debug"
	}
	return nil
}

// anchor resolves --date against today in the configured timezone.
func (a *App) anchor() (time.Time, error) {
	today := a.now().In(a.config.Location())
	if a.date == "" {
		return today, nil
	}
	return dateutil.ParseAnchor(a.date, today)
}

// loadSeed returns the configured seed, or the built-in sample.
func (a *App) loadSeed() ([]task.Member, []*task.Task, error) {
	now := a.now()
	if a.config.Seed.Path == "" {
		return seed.Default(now)
	}
	return seed.Load(a.config.Seed.Path, now)
}

// loadStore seeds a store for the one-shot commands. Seeding validates the
// roster and tasks and computes the initial conflicts.
func (a *App) loadStore() (*schedule.Store, error) {
	members, tasks, err := a.loadSeed()
	if err != nil {
		return nil, err
	}
	store := schedule.New(schedule.WithClock(a.now))
	if err := store.Seed(members, tasks); err != nil {
		return nil, fmt.Errorf("seeding schedule: %w", err)
	}
	return store, nil
}

func (a *App) runTUI() error {
	log, closer, err := logging.New(a.config.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	members, tasks, err := a.loadSeed()
	if err != nil {
		return err
	}

	var opts []tui.ModelOption
	if a.date != "" {
		anchor, err := a.anchor()
		if err != nil {
			return err
		}
		opts = append(opts, tui.WithAnchor(anchor))
	}

	log.Info().
		Str("mode", a.config.View.DefaultMode).
		Int("members", len(members)).
		Int("tasks", len(tasks)).
		Msg("starting timeline")
	return tui.Run(a.config, members, tasks, log, opts...)
}
