// Package fixturestest: sqlite-базы из фикстур для тестов.
package fixturestest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"foodquery/internal/fixtures"
	"foodquery/internal/store"
)

// SQLiteFile создаёт во временном каталоге sqlite-файл с таблицами и строками fx
// (при fx == nil только таблицы) и возвращает путь к нему.
func SQLiteFile(tb testing.TB, fx *fixtures.Fixture) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "test.sqlite")
	db, err := sql.Open("sqlite", store.SQLiteDSN(path, false))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if fx == nil {
		fx = &fixtures.Fixture{}
	}
	if err := fixtures.Apply(context.Background(), db, store.DriverSQLite, fx); err != nil {
		tb.Fatalf("apply fixtures: %v", err)
	}
	return path
}

// BareSQLiteFile: существующий, но пустой файл базы (без таблиц).
func BareSQLiteFile(tb testing.TB) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "bare.sqlite")
	db, err := sql.Open("sqlite", store.SQLiteDSN(path, false))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`create table if not exists meta (k text)`); err != nil {
		tb.Fatalf("init bare sqlite: %v", err)
	}
	return path
}

// MustLoad: Load для тестов.
func MustLoad(tb testing.TB, path string) *fixtures.Fixture {
	tb.Helper()
	fx, err := fixtures.Load(path)
	if err != nil {
		tb.Fatalf("load fixtures: %v", err)
	}
	return fx
}

// TextBoolSQLiteFile: база со схемой, где булевы колонки имеют тип text
// и хранят 'true'/'false', а остальные колонки допускают NULL.
func TextBoolSQLiteFile(tb testing.TB) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "textbool.sqlite")
	db, err := sql.Open("sqlite", store.SQLiteDSN(path, false))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	for _, q := range []string{
		`create table restaurants (id integer primary key, name text, cuisine text, rating real,
			"isVeg" text, "hasOutdoorSeating" text, "isLuxury" text)`,
		`create table dishes (id integer primary key, name text, price real, "isVeg" text)`,
		`insert into restaurants values
			(1, 'Green Garden', 'Indian', 4.2, 'true', 'true', 'false'),
			(2, 'Steak House', 'American', 4.5, 'false', 'false', 'true'),
			(3, null, null, null, 'true', 'false', 'false')`,
		`insert into dishes values
			(1, 'Paneer Tikka', 250, 'true'),
			(2, 'Ribeye', 900, 'false'),
			(3, null, null, 'true')`,
	} {
		if _, err := db.Exec(q); err != nil {
			tb.Fatalf("init text-bool sqlite: %v", err)
		}
	}
	return path
}
