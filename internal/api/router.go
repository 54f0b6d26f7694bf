// api/router.go
package api

import (
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	Logger       *slog.Logger
	StaticDir    string   // пусто или нет каталога: статику не раздаём
	CORSOrigins  []string // "*" значит любой origin
	ExposeErrors bool
}

// NewRouter собирает gin.Engine: middleware, query-роуты, /health, статика.
func NewRouter(q Querier, opts RouterOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	h := NewHandlers(q, log, opts.ExposeErrors)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(log))
	if mw := corsMiddleware(opts.CORSOrigins, log); mw != nil {
		r.Use(mw)
	}

	r.GET("/health", h.Health)

	rest := r.Group("/restaurants")
	{
		// статические сегменты раньше параметров
		rest.GET("/filter", h.RestaurantsByFilter)
		rest.GET("/sort-by-rating", h.RestaurantsByRating)
		rest.GET("/details/:id", h.RestaurantByID)
		rest.GET("/cuisine/:cuisine", h.RestaurantsByCuisine)
		rest.GET("", h.ListRestaurants)
	}

	dishes := r.Group("/dishes")
	{
		dishes.GET("/filter", h.DishesByFilter)
		dishes.GET("/sort-by-price", h.DishesByPrice)
		dishes.GET("/details/:id", h.DishByID)
		dishes.GET("", h.ListDishes)
	}

	if dir := opts.StaticDir; dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			r.NoRoute(staticHandler(dir))
		} else {
			log.Info("static dir not found, assets disabled", "dir", dir)
		}
	}

	return r
}

func staticHandler(dir string) gin.HandlerFunc {
	fs := http.FileServer(gin.Dir(dir, false))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		fs.ServeHTTP(c.Writer, c.Request)
	}
}

// validOrigin: "*" или origin со схемой http(s), иначе cors.New паникует.
func validOrigin(o string) bool {
	return o == "*" || strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://")
}

// corsMiddleware возвращает nil, если ни один origin не годится: CORS-заголовков тогда нет.
func corsMiddleware(origins []string, log *slog.Logger) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	cfg.ExposeHeaders = []string{headerRequestID}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}
	for _, o := range origins {
		if !validOrigin(o) {
			log.Warn("cors origin skipped", "origin", o)
			continue
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}
	if len(cfg.AllowOrigins) == 0 {
		return nil
	}
	return cors.New(cfg)
}
