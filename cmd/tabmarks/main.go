package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dastanaron/tabmarks/internal/browser"
	"github.com/dastanaron/tabmarks/internal/commands"
	"github.com/dastanaron/tabmarks/internal/config"
	"github.com/dastanaron/tabmarks/internal/logging"
	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/repository"
	"github.com/dastanaron/tabmarks/internal/service"
	"github.com/dastanaron/tabmarks/internal/settings"
	"github.com/dastanaron/tabmarks/internal/ui"
	"github.com/dastanaron/tabmarks/internal/web"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath    string
	dbPath        string
	bookmarksPath string
	logLevel      string
	listenAddr    string
}

// app is everything a subcommand needs, built once per invocation
type app struct {
	cfg        *config.Config
	log        *logrus.Logger
	repo       repository.Repository
	bookmarks  *service.BookmarkService
	tags       *service.TagService
	settings   *settings.Store
	dispatcher *messaging.Dispatcher
}

func (a *app) Close() {
	a.dispatcher.Wait()
	if err := a.repo.Close(); err != nil {
		a.log.WithError(err).Warn("Closing database failed")
	}
}

func newApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.WithDBPath(flags.dbPath)
	}
	if flags.bookmarksPath != "" {
		cfg.WithBookmarksPath(flags.bookmarksPath)
	}
	if flags.logLevel != "" {
		cfg.WithLogLevel(flags.logLevel)
	}
	if flags.listenAddr != "" {
		cfg.WithListenAddr(flags.listenAddr)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := repository.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	api := browser.NewFileAPI(afero.NewOsFs(), cfg.BookmarksPath, cfg.BookmarksFormat)
	tags := service.NewTagService(repo.Local(), &http.Client{Timeout: cfg.FetchTimeout}, log)
	bookmarks := service.NewBookmarkService(api, tags, cfg.BarID, log)
	store := settings.NewStore(repo.Sync(), log)
	picker := settings.NewPicker(
		settings.HTTPImageLoader{Client: &http.Client{Timeout: cfg.ImageTimeout}},
		log,
		settings.WithTimeout(cfg.ImageTimeout),
	)
	bg := messaging.NewBackground(bookmarks, tags, store, picker, log)

	log.WithFields(logrus.Fields{
		"db":        cfg.DBPath,
		"bookmarks": cfg.BookmarksPath,
	}).Debug("Configuration loaded")

	return &app{
		cfg:        cfg,
		log:        log,
		repo:       repo,
		bookmarks:  bookmarks,
		tags:       tags,
		settings:   store,
		dispatcher: messaging.NewDispatcherFor(bg, log),
	}, nil
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "tabmarks",
		Short:         "Bookmark bar new-tab page with automatic tags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", os.Getenv("TABMARKS_CONFIG"), "Path to YAML config file")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Path to database file (default: ~/.tabmarks/tabmarks.db)")
	root.PersistentFlags().StringVar(&flags.bookmarksPath, "bookmarks", "", "Path to the browser bookmark file (Chromium JSON or HTML export)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// withApp builds the application for one subcommand and closes it afterwards
	withApp := func(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return run(cmd.Context(), a, args)
		}
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the new-tab page and the message channel",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			srv := web.NewServer(a.dispatcher, a.bookmarks, a.tags, a.settings, a.log)
			return srv.ListenAndServe(ctx, a.cfg.ListenAddr)
		}),
	}
	serve.Flags().StringVar(&flags.listenAddr, "listen", "", "HTTP listen address (default: 127.0.0.1:8087)")

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "tui",
			Short: "Browse the bookmark bar in the terminal",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *app, args []string) error {
				return ui.NewApp(a.dispatcher, a.cfg.BarID, a.log).Run(ctx)
			}),
		},
		&cobra.Command{
			Use:   "tags [bookmark-id]",
			Short: "Generate tags for every bookmark, or for one",
			Args:  cobra.MaximumNArgs(1),
			RunE: withApp(func(ctx context.Context, a *app, args []string) error {
				id := ""
				if len(args) == 1 {
					id = args[0]
				}
				return commands.NewTagsCommand(a.bookmarks, a.tags, a.cfg.TagWorkers, os.Stdout).Execute(ctx, id)
			}),
		},
		&cobra.Command{
			Use:   "export <file>",
			Short: "Export the grouped bookmark bar as an HTML bookmark file",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(ctx context.Context, a *app, args []string) error {
				return commands.NewExportCommand(a.bookmarks, os.Stdout).Execute(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "doubles",
			Short: "List bookmarks sharing a URL",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *app, args []string) error {
				return commands.NewDoublesCommand(a.bookmarks, os.Stdout).Execute(ctx)
			}),
		},
		&cobra.Command{
			Use:   "settings",
			Short: "Print the page settings",
			Args:  cobra.NoArgs,
			RunE: withApp(func(ctx context.Context, a *app, args []string) error {
				return commands.NewSettingsCommand(a.settings, os.Stdout).Execute(ctx)
			}),
		},
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
