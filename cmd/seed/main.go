// seed заливает YAML-фикстуры в sqlite-файл или Postgres для локальной разработки.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"strings"

	"foodquery/internal/fixtures"
	"foodquery/internal/store"
)

func main() {
	dbPath := flag.String("db-path", "./database.sqlite", "SQLite database file (created if missing)")
	dbURL := flag.String("db-url", "", "Postgres URL (overrides -db-path)")
	file := flag.String("fixtures", "testdata/seed.yaml", "Fixtures YAML")
	flag.Parse()

	fx, err := fixtures.Load(*file)
	if err != nil {
		log.Fatalf("load fixtures: %v", err)
	}

	driver, dsn, name := store.DriverSQLite, store.SQLiteDSN(*dbPath, false), "sqlite"
	if u := strings.TrimSpace(*dbURL); u != "" {
		driver, dsn, name = store.DriverPostgres, u, "pgx"
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		log.Fatalf("open %s: %v", driver, err)
	}
	defer db.Close()

	if err := fixtures.Apply(context.Background(), db, driver, fx); err != nil {
		log.Fatalf("apply: %v", err)
	}
	log.Printf("seeded %d restaurants, %d dishes into %s", len(fx.Restaurants), len(fx.Dishes), driver)
}
