package fixtures

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"foodquery/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed(t *testing.T) {
	fx, err := Load("../../testdata/seed.yaml")
	require.NoError(t, err)
	assert.Len(t, fx.Restaurants, 5)
	assert.Len(t, fx.Dishes, 5)

	first := fx.Restaurants[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Indian", first.Cuisine)
	assert.True(t, first.IsVeg)
	assert.InDelta(t, 250.0, fx.Dishes[0].Price, 1e-9)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"duplicate restaurant": "restaurants:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n",
		"zero dish id":         "dishes:\n  - {id: 0, name: a}\n",
		"bad yaml":             "restaurants: [",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestGenerateDDL(t *testing.T) {
	lite, err := GenerateDDL(store.DriverSQLite)
	require.NoError(t, err)
	require.Len(t, lite, 2)
	assert.Contains(t, lite[0], `create table if not exists "restaurants"`)
	assert.Contains(t, lite[0], `"isVeg" integer not null`)
	assert.Contains(t, lite[1], `"price" real not null`)

	pg, err := GenerateDDL(store.DriverPostgres)
	require.NoError(t, err)
	assert.Contains(t, pg[0], `"id" bigint primary key`)
	assert.Contains(t, pg[0], `"hasOutdoorSeating" boolean not null`)
	assert.Contains(t, pg[1], `"price" double precision not null`)
}

func TestUpsertSQL(t *testing.T) {
	q := upsert("dishes", tables[1].cols)
	assert.True(t, strings.HasPrefix(q, `insert into "dishes" ("id", "name", "price", "isVeg") values (?, ?, ?, ?)`))
	assert.Contains(t, q, `on conflict ("id") do update set "name" = excluded."name"`)
	assert.NotContains(t, q, `"id" = excluded`)
}

func TestApply_SQLiteIdempotent(t *testing.T) {
	fx, err := Parse([]byte(`
restaurants:
  - {id: 7, name: Old, cuisine: Thai, rating: 3.5, isVeg: false, hasOutdoorSeating: false, isLuxury: false}
dishes:
  - {id: 9, name: Soup, price: 99.5, isVeg: true}
`))
	require.NoError(t, err)

	db, err := sql.Open("sqlite", store.SQLiteDSN(filepath.Join(t.TempDir(), "apply.sqlite"), false))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Apply(context.Background(), db, store.DriverSQLite, fx))

	fx.Restaurants[0].Name = "New"
	require.NoError(t, Apply(context.Background(), db, store.DriverSQLite, fx))

	var (
		n    int
		name string
	)
	require.NoError(t, db.QueryRow(`select count(*), max(name) from restaurants`).Scan(&n, &name))
	assert.Equal(t, 1, n)
	assert.Equal(t, "New", name)

	var veg bool
	require.NoError(t, db.QueryRow(`select "isVeg" from dishes where id = 9`).Scan(&veg))
	assert.True(t, veg)
}

func TestStoreConversions(t *testing.T) {
	fx := &Fixture{
		Restaurants: []Restaurant{{ID: 1, Name: "A", Cuisine: "Italian", Rating: 4.5, IsVeg: true}},
		Dishes:      []Dish{{ID: 2, Name: "B", Price: 10, IsVeg: false}},
	}
	assert.Equal(t, []store.Restaurant{{ID: 1, Name: "A", Cuisine: "Italian", Rating: 4.5, IsVeg: true}}, fx.StoreRestaurants())
	assert.Equal(t, []store.Dish{{ID: 2, Name: "B", Price: 10}}, fx.StoreDishes())
}
