package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options: куда подключаться. Для sqlite нужен Path, для postgres URL.
type Options struct {
	Driver string
	Path   string
	URL    string

	PingTimeout time.Duration // 0 → 5s
}

// Store держит единственный *sql.DB на весь процесс.
// Открывается в main, передаётся в хендлеры, закрывается в main после остановки сервера.
type Store struct {
	db     *sql.DB
	driver string
}

// Open открывает хранилище и проверяет соединение. Ошибка здесь фатальна для процесса.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch opts.Driver {
	case DriverSQLite, "":
		db, err = openSQLite(opts.Path)
		opts.Driver = DriverSQLite
	case DriverPostgres:
		db, err = openPostgres(opts.URL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store %s unavailable: %w", opts.Driver, err)
	}
	return &Store{db: db, driver: opts.Driver}, nil
}

// New оборачивает уже открытый *sql.DB (тесты, seed).
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	// файл обязан существовать: mode=ro его не создаст, но ошибка драйвера менее понятна
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("sqlite: %s is a directory", path)
	}
	db, err := sql.Open("sqlite", SQLiteDSN(path, true))
	if err != nil {
		return nil, err
	}
	// одно соединение на процесс, очередь держит database/sql
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// SQLiteDSN строит URI для modernc.org/sqlite.
func SQLiteDSN(path string, readOnly bool) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	if readOnly {
		q.Set("mode", "ro")
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: q.Encode()}
	return u.String()
}

func openPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres: empty database url")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

func (s *Store) Driver() string { return s.driver }

// DB отдаёт хэндл для служебных нужд (seed/тесты).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
