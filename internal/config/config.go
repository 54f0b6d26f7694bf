package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string `yaml:"port"`
	DBDriver string `yaml:"dbDriver"` // "sqlite" (default) | "postgres"
	DBPath   string `yaml:"dbPath"`   // файл SQLite
	DBURL    string `yaml:"dbUrl"`    // Postgres URL

	StaticDir    string   `yaml:"staticDir"`
	CORSOrigins  []string `yaml:"corsOrigins"`
	ExposeErrors bool     `yaml:"exposeErrors"` // текст ошибки хранилища в ответе 500

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

func def() Config {
	return Config{
		Port:     "3000",
		DBDriver: DriverSQLite,
		DBPath:   "./database.sqlite",
		DBURL:    "",

		StaticDir:    "static",
		CORSOrigins:  []string{"*"},
		ExposeErrors: true,

		LogLevel:  "INFO",
		LogFormat: "text",

		ShutdownTimeout: 10 * time.Second,
	}
}

// Default возвращает конфигурацию без файла, ENV и флагов.
func Default() Config { return def() }

func loadYAML(path string, into *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, into)
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load читает YAML (путь из -config или defaultPath), потом применяет ENV и флаги из args.
func Load(defaultPath string, args []string) (Config, error) {
	// -config нужен до разбора остальных флагов: файл лежит под ENV и флагами
	path := defaultPath
	pre := flag.NewFlagSet("config", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", defaultPath, "")
	_ = pre.Parse(filterConfigArgs(args))

	cfg := def()

	// YAML (если файл существует)
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// ENV overrides
	cfg.Port = getenv("FOODQUERY_PORT", cfg.Port)
	cfg.DBDriver = getenv("FOODQUERY_DB_DRIVER", cfg.DBDriver)
	cfg.DBPath = getenv("FOODQUERY_DB_PATH", cfg.DBPath)
	cfg.DBURL = getenv("FOODQUERY_DB_URL", cfg.DBURL)
	cfg.StaticDir = getenv("FOODQUERY_STATIC_DIR", cfg.StaticDir)
	if v := getenv("FOODQUERY_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	cfg.ExposeErrors = getenvBool("FOODQUERY_EXPOSE_ERRORS", cfg.ExposeErrors)
	cfg.LogLevel = getenv("FOODQUERY_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("FOODQUERY_LOG_FORMAT", cfg.LogFormat)
	cfg.ShutdownTimeout = getenvDuration("FOODQUERY_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	// Flags overrides
	fs := flag.NewFlagSet("foodquery", flag.ContinueOnError)
	fs.String("config", path, "Path to config YAML")
	port := fs.String("port", cfg.Port, "HTTP port")
	driver := fs.String("db-driver", cfg.DBDriver, "Store driver (sqlite/postgres)")
	dbPath := fs.String("db-path", cfg.DBPath, "SQLite database file")
	dbURL := fs.String("db-url", cfg.DBURL, "Postgres URL (empty = sqlite file)")
	static := fs.String("static", cfg.StaticDir, "Static assets directory")
	origins := fs.String("cors-origins", strings.Join(cfg.CORSOrigins, ","), "Allowed CORS origins (comma separated)")
	expose := fs.String("expose-errors", strconv.FormatBool(cfg.ExposeErrors), "Return store error text in 500 responses (true/false)")
	level := fs.String("log-level", cfg.LogLevel, "Log level (DEBUG/INFO/WARN/ERROR)")
	format := fs.String("log-format", cfg.LogFormat, "Log format (text/json)")
	shutdown := fs.Duration("shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DBPath = strings.TrimSpace(*dbPath)
	cfg.DBURL = strings.TrimSpace(*dbURL)
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(*driver))
	cfg.StaticDir = strings.TrimSpace(*static)
	cfg.CORSOrigins = splitList(*origins)
	if b, ok := parseBool(*expose); ok {
		cfg.ExposeErrors = b
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(*level))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(*format))
	cfg.ShutdownTimeout = *shutdown

	// URL без явного драйвера значит Postgres
	if cfg.DBURL != "" && cfg.DBDriver == DriverSQLite && !driverSetExplicitly(fs) {
		cfg.DBDriver = DriverPostgres
	}

	return cfg, cfg.Validate()
}

// Validate проверяет то, без чего сервер не стартует.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is empty"))
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("dbPath is empty"))
		}
	case DriverPostgres:
		if c.DBURL == "" {
			errs = append(errs, errors.New("dbUrl is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown dbDriver %q (allowed: sqlite|postgres)", c.DBDriver))
	}
	for _, o := range c.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			errs = append(errs, fmt.Errorf("corsOrigins: %q must be \"*\" or start with http:// or https://", o))
		}
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdownTimeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr: адрес для http.Server.
func (c Config) Addr() string { return ":" + c.Port }

func driverSetExplicitly(fs *flag.FlagSet) bool {
	if _, ok := os.LookupEnv("FOODQUERY_DB_DRIVER"); ok {
		return true
	}
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "db-driver" {
			set = true
		}
	})
	return set
}

// оставляет только -config/--config, чтобы предварительный разбор не падал на чужих флагах
func filterConfigArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		name := strings.TrimLeft(a, "-")
		if !strings.HasPrefix(a, "-") {
			continue
		}
		if name == "config" && i+1 < len(args) {
			out = append(out, a, args[i+1])
			i++
			continue
		}
		if strings.HasPrefix(name, "config=") {
			out = append(out, a)
		}
	}
	return out
}
