package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	adminH "github.com/fekuna/storefront-service/internal/admin/handler"
	"github.com/fekuna/storefront-service/internal/auth"
	catH "github.com/fekuna/storefront-service/internal/category/handler"
	"github.com/fekuna/storefront-service/internal/httpx"
	orderH "github.com/fekuna/storefront-service/internal/order/handler"
	prodH "github.com/fekuna/storefront-service/internal/product/handler"
	statsH "github.com/fekuna/storefront-service/internal/stats/handler"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type Handlers struct {
	Admin    *adminH.AdminHandler
	Product  *prodH.ProductHandler
	Category *catH.CategoryHandler
	Order    *orderH.OrderHandler
	Stats    *statsH.StatsHandler
}

// NewRouter mounts every feature under /api. Write routes and the order and
// stats reads sit behind the bearer gate.
func NewRouter(allowedOrigins []string, verifier auth.TokenVerifier, h *Handlers, log logger.ZapLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		protected := api.With(auth.Middleware(verifier, log))

		h.Admin.RegisterRoutes(api)
		h.Product.RegisterRoutes(api, protected)
		h.Category.RegisterRoutes(api)
		h.Order.RegisterRoutes(api, protected)
		h.Stats.RegisterRoutes(protected)
	})

	return r
}

func accessLog(log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
