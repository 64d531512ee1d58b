package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/curling-standings/internal/api"
	"github.com/pfrederiksen/curling-standings/internal/board"
	"github.com/pfrederiksen/curling-standings/internal/cache"
	"github.com/pfrederiksen/curling-standings/internal/config"
	"github.com/pfrederiksen/curling-standings/internal/feed"
	"github.com/pfrederiksen/curling-standings/internal/logger"
	"github.com/pfrederiksen/curling-standings/internal/scheduler"
	"github.com/pfrederiksen/curling-standings/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagPort      int
	flagBoardFile string
	flagStaticDir string
	flagFormat    string
	flagTeam      string
	flagSort      string
	flagVerbose   bool
)

// NewRootCmd creates the root command. Running it without a subcommand serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curling-standings",
		Short: "Serve live curling standings, upcoming games, and a smack talk board",
		Long: `Scrapes World Curling live scores for the men's and women's events,
serves them as a cached JSON API alongside a small message board, and hosts
the static frontend.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	addServeFlags(cmd)

	cmd.AddCommand(newServeCmd(), newStandingsCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and static file server",
		RunE:  runServe,
	}
	addServeFlags(cmd)
	return cmd
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagPort, "port", 0, "Listen port (overrides PORT)")
	cmd.Flags().StringVar(&flagBoardFile, "board-file", "", "Message board JSON file (overrides BOARD_FILE)")
	cmd.Flags().StringVar(&flagStaticDir, "static-dir", "", "Frontend directory (overrides STATIC_DIR)")
}

func newStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch standings and upcoming games once and print them",
		RunE:  runStandings,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagTeam, "team", "", "Only show teams matching this name or code (fuzzy)")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort standings by: wins, team, or games (default: site order)")
	return cmd
}

// loadConfig reads the environment, applies flag overrides, and configures logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagBoardFile != "" {
		cfg.BoardFile = flagBoardFile
	}
	if flagStaticDir != "" {
		cfg.StaticDir = flagStaticDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Level()
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stdout))

	return cfg, nil
}

// runServe wires the scraper, cache, board, and router and serves until interrupted
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := feed.New(scraper.New(cfg.UpstreamBaseURL), nil)
	standingsCache := cache.New(f, cfg.CacheInterval, nil)
	store := board.Open(cfg.BoardFile, nil)

	warmer, err := scheduler.New(standingsCache, cfg.WarmInterval)
	switch {
	case errors.Is(err, scheduler.ErrDisabled):
	case err != nil:
		return fmt.Errorf("creating cache warmer: %w", err)
	default:
		if err := warmer.Start(); err != nil {
			return err
		}
		defer warmer.Stop()
	}

	router := api.NewRouter(api.Deps{
		Standings: standingsCache,
		Board:     store,
		StaticDir: cfg.StaticDir,
	})

	logger.Info("starting curling-standings", logger.Fields{
		"port":           cfg.Port,
		"board_file":     cfg.BoardFile,
		"static_dir":     cfg.StaticDir,
		"upstream":       cfg.UpstreamBaseURL,
		"cache_interval": cfg.CacheInterval.String(),
	})

	return api.NewServer(cfg.Port, router).ListenAndServe(ctx)
}

// runStandings performs a single refresh and prints the result
func runStandings(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	sortOrder := SortOrder(strings.ToLower(flagSort))
	if !sortOrder.Valid() {
		return fmt.Errorf("invalid sort: %s (must be 'wins', 'team', or 'games')", flagSort)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !flagVerbose {
		// keep stdout clean for the report
		logger.SetDefault(logger.New(logger.LevelError, os.Stderr))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*scraper.Timeout)
	defer cancel()

	snap, err := feed.New(scraper.New(cfg.UpstreamBaseURL), nil).Refresh(ctx)
	if err != nil {
		return fmt.Errorf("fetching standings: %w", err)
	}

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Men:       filterRows(snap.Men, flagTeam),
		Women:     filterRows(snap.Women, flagTeam),
		Upcoming:  filterGames(snap.Upcoming, flagTeam),
		Team:      flagTeam,
	}
	sortRows(result.Men, sortOrder)
	sortRows(result.Women, sortOrder)

	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
