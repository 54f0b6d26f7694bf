package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	restaurantCols = `id, name, cuisine, rating, "isVeg", "hasOutdoorSeating", "isLuxury"`
	dishCols       = `id, name, price, "isVeg"`
)

func (s *Store) Restaurants(ctx context.Context) ([]Restaurant, error) {
	return queryRows(ctx, s, "restaurants",
		`select `+restaurantCols+` from restaurants`,
		scanRestaurant)
}

func (s *Store) RestaurantByID(ctx context.Context, id int64) ([]Restaurant, error) {
	return queryRows(ctx, s, "restaurant by id",
		`select `+restaurantCols+` from restaurants where id = ?`,
		scanRestaurant, id)
}

func (s *Store) RestaurantsByCuisine(ctx context.Context, cuisine string) ([]Restaurant, error) {
	return queryRows(ctx, s, "restaurants by cuisine",
		`select `+restaurantCols+` from restaurants where cuisine = ?`,
		scanRestaurant, cuisine)
}

func (s *Store) RestaurantsByFilter(ctx context.Context, f RestaurantFilter) ([]Restaurant, error) {
	var (
		where []string
		args  []any
	)
	for _, c := range []struct {
		col string
		v   bool
	}{
		{`"isVeg"`, f.IsVeg},
		{`"hasOutdoorSeating"`, f.HasOutdoorSeating},
		{`"isLuxury"`, f.IsLuxury},
	} {
		pred, a := s.boolEq(c.col, c.v)
		where = append(where, pred)
		args = append(args, a...)
	}
	return queryRows(ctx, s, "restaurants by filter",
		`select `+restaurantCols+` from restaurants where `+strings.Join(where, " and "),
		scanRestaurant, args...)
}

// RestaurantsByRating: по убыванию рейтинга, при равенстве по id.
func (s *Store) RestaurantsByRating(ctx context.Context) ([]Restaurant, error) {
	return queryRows(ctx, s, "restaurants by rating",
		`select `+restaurantCols+` from restaurants order by rating desc, id`,
		scanRestaurant)
}

func (s *Store) Dishes(ctx context.Context) ([]Dish, error) {
	return queryRows(ctx, s, "dishes",
		`select `+dishCols+` from dishes`,
		scanDish)
}

func (s *Store) DishByID(ctx context.Context, id int64) ([]Dish, error) {
	return queryRows(ctx, s, "dish by id",
		`select `+dishCols+` from dishes where id = ?`,
		scanDish, id)
}

func (s *Store) DishesByFilter(ctx context.Context, isVeg bool) ([]Dish, error) {
	pred, args := s.boolEq(`"isVeg"`, isVeg)
	return queryRows(ctx, s, "dishes by filter",
		`select `+dishCols+` from dishes where `+pred,
		scanDish, args...)
}

// DishesByPrice: по возрастанию цены, при равенстве по id.
func (s *Store) DishesByPrice(ctx context.Context) ([]Dish, error) {
	return queryRows(ctx, s, "dishes by price",
		`select `+dishCols+` from dishes order by price, id`,
		scanDish)
}

// ==== общее ====

type rowScanner interface {
	Scan(dest ...any) error
}

// boolEq: условие на булеву колонку. В sqlite-файлах встречаются и 1/0, и 'true'/'false',
// поэтому там сравниваем с обоими представлениями.
func (s *Store) boolEq(col string, v bool) (string, []any) {
	if s.driver == DriverPostgres {
		return col + " = ?", []any{v}
	}
	if v {
		return col + " in (?, ?)", []any{int64(1), "true"}
	}
	return col + " in (?, ?)", []any{int64(0), "false"}
}

// NULL в колонке даёт нулевое значение поля, строка не теряется.
func scanRestaurant(r rowScanner) (Restaurant, error) {
	var (
		out                      Restaurant
		name, cuisine            sql.NullString
		rating                   sql.NullFloat64
		isVeg, outdoor, isLuxury sql.NullBool
	)
	if err := r.Scan(&out.ID, &name, &cuisine, &rating, &isVeg, &outdoor, &isLuxury); err != nil {
		return out, err
	}
	out.Name, out.Cuisine, out.Rating = name.String, cuisine.String, rating.Float64
	out.IsVeg, out.HasOutdoorSeating, out.IsLuxury = isVeg.Bool, outdoor.Bool, isLuxury.Bool
	return out, nil
}

func scanDish(r rowScanner) (Dish, error) {
	var (
		out   Dish
		name  sql.NullString
		price sql.NullFloat64
		isVeg sql.NullBool
	)
	if err := r.Scan(&out.ID, &name, &price, &isVeg); err != nil {
		return out, err
	}
	out.Name, out.Price, out.IsVeg = name.String, price.Float64, isVeg.Bool
	return out, nil
}

// queryRows выполняет один select и возвращает все строки; пустой результат даёт пустой слайс, не ошибка.
func queryRows[T any](ctx context.Context, s *Store, what, q string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}

// Rebind меняет ? на $1..$n для postgres. В текстах запросов литералов с ? нет.
func (s *Store) Rebind(q string) string {
	if s.driver != DriverPostgres || !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var _ rowScanner = (*sql.Rows)(nil)
