package fixtures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodquery/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
)

type column struct {
	name string
	typ  string // string, int, float, bool
	pk   bool
}

var tables = []struct {
	name string
	cols []column
}{
	{"restaurants", []column{
		{name: "id", typ: "int", pk: true},
		{name: "name", typ: "string"},
		{name: "cuisine", typ: "string"},
		{name: "rating", typ: "float"},
		{name: "isVeg", typ: "bool"},
		{name: "hasOutdoorSeating", typ: "bool"},
		{name: "isLuxury", typ: "bool"},
	}},
	{"dishes", []column{
		{name: "id", typ: "int", pk: true},
		{name: "name", typ: "string"},
		{name: "price", typ: "float"},
		{name: "isVeg", typ: "bool"},
	}},
}

// sqlite хранит bool как INTEGER 0/1
func mapType(driver, typ string) (string, error) {
	pg := driver == store.DriverPostgres
	switch typ {
	case "string":
		return "text", nil
	case "int":
		if pg {
			return "bigint", nil
		}
		return "integer", nil
	case "float":
		if pg {
			return "double precision", nil
		}
		return "real", nil
	case "bool":
		if pg {
			return "boolean", nil
		}
		return "integer", nil
	default:
		return "", fmt.Errorf("unknown type: %s", typ)
	}
}

func sqlIdent(s string) string { return `"` + s + `"` }

// GenerateDDL: create table if not exists для restaurants и dishes, в порядке объявления.
func GenerateDDL(driver string) ([]string, error) {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		cols := make([]string, 0, len(t.cols))
		for _, c := range t.cols {
			typ, err := mapType(driver, c.typ)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.name, c.name, err)
			}
			def := fmt.Sprintf("%s %s not null", sqlIdent(c.name), typ)
			if c.pk {
				def = fmt.Sprintf("%s %s primary key", sqlIdent(c.name), typ)
			}
			cols = append(cols, def)
		}
		out = append(out, fmt.Sprintf("create table if not exists %s (\n  %s\n)",
			sqlIdent(t.name), strings.Join(cols, ",\n  ")))
	}
	return out, nil
}

// ApplyDDL выполняет DDL по порядку. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, ddl []string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, sqlText := range ddl {
		sqlText = strings.TrimSpace(sqlText)
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			// duplicate_object (42710) / duplicate_table (42P07): параллельный create на postgres
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "42710" || pgErr.Code == "42P07") {
				slog.Info("DDL skipped (already exists)", "code", pgErr.Code, "message", strings.TrimSpace(pgErr.Message))
				continue
			}
			return fmt.Errorf("DDL apply failed: %w", err)
		}
	}
	return nil
}

// Apply создаёт таблицы и вставляет строки fx в одной транзакции.
// Существующие строки с теми же id заменяются.
func Apply(ctx context.Context, db *sql.DB, driver string, fx *Fixture) error {
	ddl, err := GenerateDDL(driver)
	if err != nil {
		return err
	}
	if err := ApplyDDL(ctx, db, ddl); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	s := store.New(db, driver)
	insRestaurant := upsert("restaurants", tables[0].cols)
	for _, r := range fx.Restaurants {
		if _, err := tx.ExecContext(ctx, s.Rebind(insRestaurant),
			r.ID, r.Name, r.Cuisine, r.Rating, r.IsVeg, r.HasOutdoorSeating, r.IsLuxury); err != nil {
			return fmt.Errorf("insert restaurant %d: %w", r.ID, err)
		}
	}
	insDish := upsert("dishes", tables[1].cols)
	for _, d := range fx.Dishes {
		if _, err := tx.ExecContext(ctx, s.Rebind(insDish), d.ID, d.Name, d.Price, d.IsVeg); err != nil {
			return fmt.Errorf("insert dish %d: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// обе СУБД понимают insert ... on conflict (id) do update
func upsert(table string, cols []column) string {
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, sqlIdent(c.name))
		marks = append(marks, "?")
		if !c.pk {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", sqlIdent(c.name), sqlIdent(c.name)))
		}
	}
	return fmt.Sprintf("insert into %s (%s) values (%s) on conflict (%s) do update set %s",
		sqlIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "),
		sqlIdent("id"), strings.Join(sets, ", "))
}
