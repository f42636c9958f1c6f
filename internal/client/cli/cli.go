// Package cli implements the bookadmin commands on top of cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/client/auth"
	"github.com/nlimbasiya24/bookadmin/internal/client/catalog"
	"github.com/nlimbasiya24/bookadmin/internal/client/iocli"
	"github.com/nlimbasiya24/bookadmin/internal/client/session"
	"github.com/nlimbasiya24/bookadmin/internal/client/snapshot"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/boltdb"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/memory"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/sqlite"
	"github.com/nlimbasiya24/bookadmin/internal/config"
	"github.com/nlimbasiya24/bookadmin/internal/logging"
	"github.com/nlimbasiya24/bookadmin/internal/models"
	"github.com/nlimbasiya24/bookadmin/internal/validation"
)

// PageLoader загружает страницу авторов в снимок
type PageLoader interface {
	LoadPage(ctx context.Context, page int) (*catalog.PageResult, error)
}

// ViewSynchronizer операции детального просмотра автора
type ViewSynchronizer interface {
	Open(ctx context.Context, authorID int64) (*catalog.DetailView, error)
	EditBook(ctx context.Context, view *catalog.DetailView, bookID int64, input validation.EditBookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, view *catalog.DetailView, bookID int64) error
	AddBook(ctx context.Context, input validation.BookInput) (*models.Book, error)
	DeleteAuthor(ctx context.Context, authorID int64) error
}

// SnapshotInfo сводка о локальном снимке
type SnapshotInfo interface {
	Info(ctx context.Context) (*snapshot.Info, error)
}

// Services зависимости команд, собранные из конфигурации
type Services struct {
	Auth   auth.Service
	Loader PageLoader
	Sync   ViewSynchronizer
	Cache  SnapshotInfo
}

type rootFlags struct {
	configPath   string
	apiURL       string
	dbPath       string
	logLevel     string
	cacheBackend string
	envFiles     []string
}

// Cli корневая команда bookadmin и её зависимости
type Cli struct {
	io      iocli.IO
	errOut  io.Writer
	fs      afero.Fs
	getenv  func(string) string
	cfg     *config.Config
	logger  *slog.Logger
	svc     *Services
	closers []func() error
	version string
	flags   rootFlags
}

// New создает CLI с терминалом io
func New(io iocli.IO, version string) *Cli {
	return &Cli{
		io:      io,
		errOut:  os.Stderr,
		fs:      afero.NewOsFs(),
		getenv:  os.Getenv,
		version: version,
	}
}

// Execute разбирает args и выполняет команду.
// Ресурсы, открытые командой, закрываются перед возвратом.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.Command()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil && c.logger != nil {
		c.logger.Error("failed to close storage", "error", closeErr)
	}

	return c.explain(err)
}

// Command строит дерево команд
func (c *Cli) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookadmin",
		Short:         "Terminal administration client for the Remote Record API",
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.configure(cmd)
		},
	}
	root.SetOut(c.io)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "path to bookadmin.toml")
	pf.StringSliceVar(&c.flags.envFiles, "env-file", []string{".env"}, ".env files to load")
	pf.StringVar(&c.flags.apiURL, "api-url", "", "Remote Record API base URL")
	pf.StringVar(&c.flags.dbPath, "db", "", "path to local database")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&c.flags.cacheBackend, "cache-backend", "", "snapshot cache backend (bolt, sqlite, memory)")

	root.AddCommand(
		c.loginCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.profileCommand(),
		c.authorsCommand(),
		c.booksCommand(),
		c.configCommand(),
	)

	return root
}

// configure загружает конфигурацию и настраивает логирование.
// Повторный вызов ничего не делает.
func (c *Cli) configure(cmd *cobra.Command) error {
	if c.cfg != nil {
		return nil
	}

	if err := config.LoadDotEnv(c.flags.envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{
		Fs:       c.fs,
		Getenv:   c.getenv,
		Path:     c.flags.configPath,
		Required: c.flags.configPath != "",
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = c.flags.apiURL
	}
	if flags.Changed("db") {
		cfg.DBPath = c.flags.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flags.logLevel
	}
	if flags.Changed("cache-backend") {
		cfg.CacheBackend = config.CacheBackend(c.flags.cacheBackend)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := logging.New(c.errOut, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger
	c.closers = append(c.closers, closeLog)
	return nil
}

// services открывает хранилища и собирает сервисы при первом обращении
func (c *Cli) services(ctx context.Context) (*Services, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	cfg := c.cfg

	if err := ensureDir(cfg.DBPath); err != nil {
		return nil, err
	}
	bolt, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	c.closers = append(c.closers, bolt.Close)

	sessions, err := session.NewStore(bolt, cfg.SessionSecret, session.WithTTL(time.Duration(cfg.SessionTTL)))
	if err != nil {
		if errors.Is(err, session.ErrMissingSecret) {
			return nil, fmt.Errorf("%w: set %s in the environment or a .env file", err, config.EnvSessionSecret)
		}
		return nil, err
	}

	var kv storage.KVStore
	switch cfg.CacheBackend {
	case config.BackendSQLite:
		if err := ensureDir(cfg.SQLitePath); err != nil {
			return nil, err
		}
		db, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		kv = db
	case config.BackendMemory:
		kv = memory.New()
	default:
		kv = bolt
	}

	client := api.NewClient(cfg.APIURL,
		api.WithTimeout(time.Duration(cfg.RequestTimeout)),
		api.WithRateLimit(cfg.RequestsPerSecond),
		api.WithLogger(c.logger),
	)

	authService := auth.NewService(client, sessions, c.logger)
	cache := snapshot.New(kv, c.logger)

	c.svc = &Services{
		Auth: authService,
		Loader: catalog.NewLoader(client, cache, authService, c.logger, catalog.LoaderConfig{
			PageSize:     cfg.PageSize,
			FanoutLimit:  cfg.FanoutLimit,
			AllowPartial: cfg.AllowPartialLoad,
		}),
		Sync:  catalog.NewSynchronizer(cache, client, authService, c.logger),
		Cache: cache,
	}

	c.logger.Debug("Services ready", "cache_backend", cfg.CacheBackend, "api_url", cfg.APIURL)
	return c.svc, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// close закрывает ресурсы в обратном порядке открытия
func (c *Cli) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// explain дополняет ошибки подсказкой для пользователя
func (c *Cli) explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, session.ErrNotAuthenticated):
		return fmt.Errorf("not authenticated. Please run 'bookadmin login' first (%w)", err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.io.Println("Please fix the following fields:")
		for _, fe := range verrs {
			c.io.Printf("  %s: %s\n", fe.Field, fe.Message)
		}
		return errors.New("invalid input")
	}

	return err
}
