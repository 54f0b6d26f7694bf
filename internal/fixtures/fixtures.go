// Package fixtures грузит тестовые/демо-данные из YAML и раскладывает их в базу.
// В HTTP-сервер не подключается: его используют тесты и cmd/seed.
package fixtures

import (
	"fmt"
	"os"

	"foodquery/internal/store"

	"gopkg.in/yaml.v3"
)

type Restaurant struct {
	ID                int64   `yaml:"id"`
	Name              string  `yaml:"name"`
	Cuisine           string  `yaml:"cuisine"`
	Rating            float64 `yaml:"rating"`
	IsVeg             bool    `yaml:"isVeg"`
	HasOutdoorSeating bool    `yaml:"hasOutdoorSeating"`
	IsLuxury          bool    `yaml:"isLuxury"`
}

type Dish struct {
	ID    int64   `yaml:"id"`
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
	IsVeg bool    `yaml:"isVeg"`
}

// Fixture: содержимое одного seed-файла.
type Fixture struct {
	Restaurants []Restaurant `yaml:"restaurants"`
	Dishes      []Dish       `yaml:"dishes"`
}

// Load читает YAML-файл с restaurants/dishes.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}

func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, err
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// id обязаны быть положительными и уникальными в пределах таблицы
func (fx *Fixture) validate() error {
	seen := map[int64]struct{}{}
	for i, r := range fx.Restaurants {
		if r.ID <= 0 {
			return fmt.Errorf("restaurants[%d]: id must be positive", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("restaurants[%d]: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	seen = map[int64]struct{}{}
	for i, d := range fx.Dishes {
		if d.ID <= 0 {
			return fmt.Errorf("dishes[%d]: id must be positive", i)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("dishes[%d]: duplicate id %d", i, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

// StoreRestaurants: строки в том виде, в каком их отдаёт store.
func (fx *Fixture) StoreRestaurants() []store.Restaurant {
	out := make([]store.Restaurant, 0, len(fx.Restaurants))
	for _, r := range fx.Restaurants {
		out = append(out, store.Restaurant(r))
	}
	return out
}

func (fx *Fixture) StoreDishes() []store.Dish {
	out := make([]store.Dish, 0, len(fx.Dishes))
	for _, d := range fx.Dishes {
		out = append(out, store.Dish(d))
	}
	return out
}
