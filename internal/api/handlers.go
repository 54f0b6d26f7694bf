package api

import (
	"context"
	"fmt"
	"log/slog"

	"foodquery/internal/store"

	"github.com/gin-gonic/gin"
)

// Querier: то, что хендлерам нужно от хранилища. *store.Store его реализует.
type Querier interface {
	Restaurants(ctx context.Context) ([]store.Restaurant, error)
	RestaurantByID(ctx context.Context, id int64) ([]store.Restaurant, error)
	RestaurantsByCuisine(ctx context.Context, cuisine string) ([]store.Restaurant, error)
	RestaurantsByFilter(ctx context.Context, f store.RestaurantFilter) ([]store.Restaurant, error)
	RestaurantsByRating(ctx context.Context) ([]store.Restaurant, error)

	Dishes(ctx context.Context) ([]store.Dish, error)
	DishByID(ctx context.Context, id int64) ([]store.Dish, error)
	DishesByFilter(ctx context.Context, isVeg bool) ([]store.Dish, error)
	DishesByPrice(ctx context.Context) ([]store.Dish, error)

	Ping(ctx context.Context) error
}

var _ Querier = (*store.Store)(nil)

type Handlers struct {
	store        Querier
	log          *slog.Logger
	exposeErrors bool
}

func NewHandlers(q Querier, log *slog.Logger, exposeErrors bool) *Handlers {
	if log == nil {
		log = discardLogger()
	}
	return &Handlers{store: q, log: log, exposeErrors: exposeErrors}
}

const (
	keyRestaurants = "restaurants"
	keyDishes      = "dishes"

	msgNoRestaurants = "No Restaurants found."
	msgNoDishes      = "No dishes found."
	msgNoDishesF     = "No Dishes found."
)

// GET /restaurants
func (h *Handlers) ListRestaurants(c *gin.Context) {
	rows, err := h.store.Restaurants(c.Request.Context())
	h.writeRows(c, keyRestaurants, len(rows), rows, err, msgNoRestaurants)
}

// GET /restaurants/details/:id
func (h *Handlers) RestaurantByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badParam(c, err)
		return
	}
	rows, err := h.store.RestaurantByID(c.Request.Context(), id)
	h.writeRows(c, keyRestaurants, len(rows), rows, err,
		fmt.Sprintf("No Restaurants found with given id: %d", id))
}

// GET /restaurants/cuisine/:cuisine
func (h *Handlers) RestaurantsByCuisine(c *gin.Context) {
	cuisine := c.Param("cuisine")
	rows, err := h.store.RestaurantsByCuisine(c.Request.Context(), cuisine)
	h.writeRows(c, keyRestaurants, len(rows), rows, err,
		"No Restaurants found with given cuisine: "+cuisine)
}

// GET /restaurants/filter?isVeg=&hasOutdoorSeating=&isLuxury=
func (h *Handlers) RestaurantsByFilter(c *gin.Context) {
	b, err := queryBools(c, "isVeg", "hasOutdoorSeating", "isLuxury")
	if err != nil {
		badParam(c, err)
		return
	}
	rows, err := h.store.RestaurantsByFilter(c.Request.Context(), store.RestaurantFilter{
		IsVeg:             b[0],
		HasOutdoorSeating: b[1],
		IsLuxury:          b[2],
	})
	h.writeRows(c, keyRestaurants, len(rows), rows, err, msgNoRestaurants)
}

// GET /restaurants/sort-by-rating
func (h *Handlers) RestaurantsByRating(c *gin.Context) {
	rows, err := h.store.RestaurantsByRating(c.Request.Context())
	h.writeRows(c, keyRestaurants, len(rows), rows, err, msgNoRestaurants)
}

// GET /dishes
func (h *Handlers) ListDishes(c *gin.Context) {
	rows, err := h.store.Dishes(c.Request.Context())
	h.writeRows(c, keyDishes, len(rows), rows, err, msgNoDishes)
}

// GET /dishes/details/:id
func (h *Handlers) DishByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badParam(c, err)
		return
	}
	rows, err := h.store.DishByID(c.Request.Context(), id)
	h.writeRows(c, keyDishes, len(rows), rows, err,
		fmt.Sprintf("No Dishes found with given id: %d", id))
}

// GET /dishes/filter?isVeg=
func (h *Handlers) DishesByFilter(c *gin.Context) {
	isVeg, err := queryBool(c, "isVeg")
	if err != nil {
		badParam(c, err)
		return
	}
	rows, err := h.store.DishesByFilter(c.Request.Context(), isVeg)
	h.writeRows(c, keyDishes, len(rows), rows, err, msgNoDishesF)
}

// GET /dishes/sort-by-price
func (h *Handlers) DishesByPrice(c *gin.Context) {
	rows, err := h.store.DishesByPrice(c.Request.Context())
	h.writeRows(c, keyDishes, len(rows), rows, err, msgNoDishesF)
}
