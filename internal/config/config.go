// Package config loads bookadmin settings.
// Sources in increasing priority: defaults, TOML file, .env files,
// environment variables, command flags (applied by the CLI).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	// DefaultAPIURL базовый адрес Remote Record API
	DefaultAPIURL = "https://candidate-testing.com/api/v2"

	// FileName имя конфигурационного файла в каталоге приложения
	FileName = "bookadmin.toml"

	// MaxPageSize верхняя граница размера страницы списка авторов
	MaxPageSize = 100
)

// CacheBackend selects the storage behind the snapshot cache.
type CacheBackend string

const (
	// BackendBolt кеш в том же bbolt файле, что и сессия
	BackendBolt CacheBackend = "bolt"
	// BackendSQLite кеш в отдельной SQLite базе
	BackendSQLite CacheBackend = "sqlite"
	// BackendMemory кеш живёт только в течение одной команды
	BackendMemory CacheBackend = "memory"
)

// Duration is a time.Duration written as a string ("30s", "5m") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// JSONSchema implements jsonschema.JSONSchemer: durations are strings in the file.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
		Description: "Go duration string, e.g. 30s or 1h30m",
	}
}

// Config represents bookadmin settings after all sources are merged.
type Config struct {
	APIURL            string       `toml:"api_url" json:"api_url" jsonschema:"description=Base URL of the Remote Record API"`
	DBPath            string       `toml:"db_path" json:"db_path" jsonschema:"description=bbolt database holding the session and the default cache"`
	CacheBackend      CacheBackend `toml:"cache_backend" json:"cache_backend" jsonschema:"enum=bolt,enum=sqlite,enum=memory,description=Storage behind the author snapshot cache"`
	SQLitePath        string       `toml:"sqlite_path,omitempty" json:"sqlite_path,omitempty" jsonschema:"description=SQLite file used when cache_backend is sqlite"`
	LogLevel          string       `toml:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Minimum log level"`
	LogFile           string       `toml:"log_file,omitempty" json:"log_file,omitempty" jsonschema:"description=Optional file receiving a copy of the log"`
	SessionSecret     string       `toml:"-" json:"-"`
	RequestTimeout    Duration     `toml:"request_timeout" json:"request_timeout" jsonschema:"description=Timeout of a single API request"`
	SessionTTL        Duration     `toml:"session_ttl,omitempty" json:"session_ttl,omitempty" jsonschema:"description=Lifetime of a stored session; 0 keeps it until logout"`
	RequestsPerSecond float64      `toml:"requests_per_second" json:"requests_per_second" jsonschema:"minimum=0,description=Client-side request rate limit; 0 disables it"`
	PageSize          int          `toml:"page_size" json:"page_size" jsonschema:"minimum=1,maximum=100,description=Authors per list page"`
	FanoutLimit       int          `toml:"fanout_limit" json:"fanout_limit" jsonschema:"minimum=1,description=Concurrent author detail requests during a list load"`
	AllowPartialLoad  bool         `toml:"allow_partial_load" json:"allow_partial_load" jsonschema:"description=Cache the authors that loaded even when some detail requests fail"`
}

// Default returns the built-in configuration.
// dir is the application directory holding the database files.
func Default(dir string) Config {
	return Config{
		APIURL:            DefaultAPIURL,
		DBPath:            filepath.Join(dir, "bookadmin.db"),
		CacheBackend:      BackendBolt,
		SQLitePath:        filepath.Join(dir, "cache.sqlite"),
		LogLevel:          "info",
		RequestTimeout:    Duration(30 * time.Second),
		RequestsPerSecond: 10,
		PageSize:          12,
		FanoutLimit:       4,
	}
}

// DefaultDir returns the per-user application directory.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bookadmin")
	}
	return ".bookadmin"
}

// Options controls where Load reads from.
type Options struct {
	// Fs is the filesystem holding the config file.
	Fs afero.Fs
	// Getenv looks up environment variables; os.Getenv when nil.
	Getenv func(string) string
	// Path of the TOML file. Empty means Dir/FileName.
	Path string
	// Dir is the application directory; DefaultDir() when empty.
	Dir string
	// Required fails the load when the file is missing.
	Required bool
}

// Load merges defaults, the TOML file and the environment.
func Load(opts Options) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Dir == "" {
		opts.Dir = DefaultDir()
	}
	if opts.Path == "" {
		opts.Path = filepath.Join(opts.Dir, FileName)
	}

	cfg := Default(opts.Dir)

	if err := readFile(opts.Fs, opts.Path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || opts.Required {
			return nil, err
		}
	}

	if err := applyEnv(&cfg, opts.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readFile(fsys afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Existing variables are not overridden; missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Environment variables recognized by applyEnv.
const (
	EnvAPIURL           = "BOOKADMIN_API_URL"
	EnvDBPath           = "BOOKADMIN_DB"
	EnvCacheBackend     = "BOOKADMIN_CACHE_BACKEND"
	EnvSQLitePath       = "BOOKADMIN_SQLITE_PATH"
	EnvLogLevel         = "BOOKADMIN_LOG_LEVEL"
	EnvLogFile          = "BOOKADMIN_LOG_FILE"
	EnvPageSize         = "BOOKADMIN_PAGE_SIZE"
	EnvRequestTimeout   = "BOOKADMIN_REQUEST_TIMEOUT"
	EnvRequestsPerSec   = "BOOKADMIN_REQUESTS_PER_SECOND"
	EnvFanoutLimit      = "BOOKADMIN_FANOUT_LIMIT"
	EnvAllowPartialLoad = "BOOKADMIN_ALLOW_PARTIAL_LOAD"
	EnvSessionTTL       = "BOOKADMIN_SESSION_TTL"
	EnvSessionSecret    = "SESSION_SECRET"
)

func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		EnvAPIURL:     &cfg.APIURL,
		EnvDBPath:     &cfg.DBPath,
		EnvSQLitePath: &cfg.SQLitePath,
		EnvLogLevel:   &cfg.LogLevel,
		EnvLogFile:    &cfg.LogFile,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	cfg.SessionSecret = getenv(EnvSessionSecret)

	if v := getenv(EnvCacheBackend); v != "" {
		cfg.CacheBackend = CacheBackend(v)
	}

	ints := map[string]*int{
		EnvPageSize:    &cfg.PageSize,
		EnvFanoutLimit: &cfg.FanoutLimit,
	}
	for key, dst := range ints {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q", key, v)
			}
			*dst = n
		}
	}

	durations := map[string]*Duration{
		EnvRequestTimeout: &cfg.RequestTimeout,
		EnvSessionTTL:     &cfg.SessionTTL,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	if v := getenv(EnvRequestsPerSec); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", EnvRequestsPerSec, v)
		}
		cfg.RequestsPerSecond = rps
	}

	if v := getenv(EnvAllowPartialLoad); v != "" {
		partial, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvAllowPartialLoad, v)
		}
		cfg.AllowPartialLoad = partial
	}

	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL))
	}

	switch c.CacheBackend {
	case BackendBolt, BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite_path is required when cache_backend is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache_backend must be one of bolt, sqlite, memory, got %q", c.CacheBackend))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel))
	}

	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("page_size must be between 1 and %d, got %d", MaxPageSize, c.PageSize))
	}
	if c.FanoutLimit < 1 {
		errs = append(errs, fmt.Errorf("fanout_limit must be at least 1, got %d", c.FanoutLimit))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests_per_second must not be negative, got %v", c.RequestsPerSecond))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("session_ttl must not be negative"))
	}

	return errors.Join(errs...)
}

// SchemaComment references the JSON schema for editor autocomplete.
const SchemaComment = "#:schema ./bookadmin.schema.json\n\n"

// Save writes cfg as TOML with the schema comment header.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := afero.WriteFile(fsys, path, append([]byte(SchemaComment), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Schema returns the JSON schema of the config file.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		FieldNameTag:               "toml",
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "bookadmin configuration"
	schema.Description = "Configuration schema for bookadmin.toml"
	schema.ID = ""
	return schema
}
