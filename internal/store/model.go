package store

// Restaurant: строка таблицы restaurants. JSON-имена совпадают с колонками.
type Restaurant struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Cuisine           string  `json:"cuisine"`
	Rating            float64 `json:"rating"`
	IsVeg             bool    `json:"isVeg"`
	HasOutdoorSeating bool    `json:"hasOutdoorSeating"`
	IsLuxury          bool    `json:"isLuxury"`
}

// Dish: строка таблицы dishes.
type Dish struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	IsVeg bool    `json:"isVeg"`
}

// RestaurantFilter: все три условия через AND, точное совпадение.
type RestaurantFilter struct {
	IsVeg             bool
	HasOutdoorSeating bool
	IsLuxury          bool
}
