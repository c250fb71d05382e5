package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercato-app/mercato-backend/api/controllers"
	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/internal/auth"
	"github.com/mercato-app/mercato-backend/internal/categories"
	"github.com/mercato-app/mercato-backend/internal/orders"
	"github.com/mercato-app/mercato-backend/internal/products"
	"github.com/mercato-app/mercato-backend/internal/reviews"
	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/internal/vendors"
	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/db"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	"github.com/mercato-app/mercato-backend/pkg/logger"
	"github.com/mercato-app/mercato-backend/pkg/metrics"
	"github.com/mercato-app/mercato-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	Resolver middleware.ActorResolver

	AuthService     auth.Service
	UserService     users.Service
	VendorService   vendors.Service
	CategoryService categories.Service
	ProductService  products.Service
	OrderService    orders.Service
	ReviewService   reviews.Service
}

// NewRouter builds the full route tree: public catalog reads, the auth
// endpoints, and the role-scoped user/vendor/admin groups.
func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(p.Metrics),
	)
	r.NotFound(responses.NotFound())
	r.MethodNotAllowed(responses.MethodNotAllowed())

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register/vendor", controllers.AuthRegisterVendor(p.AuthService, logg))
		r.Post("/verify", controllers.AuthVerify(p.AuthService, logg))
		r.Post("/resend-otp", controllers.AuthResendOTP(p.AuthService, logg))
		r.Post("/reset/request", controllers.AuthResetRequest(p.AuthService, logg))
		r.Post("/reset", controllers.AuthResetPassword(p.AuthService, logg))
	})

	// Public catalog. The auth middleware is absent on purpose: visibility
	// scoping treats these requests as guests.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryList(p.CategoryService, logg))
		r.Get("/categories/{categoryId}", controllers.CategoryGet(p.CategoryService, logg))
		r.Get("/products", controllers.ProductList(p.ProductService, logg))
		r.Get("/products/{productId}", controllers.ProductGet(p.ProductService, logg))
		r.Get("/vendors", controllers.VendorList(p.VendorService, logg))
		r.Get("/vendors/{vendorId}", controllers.VendorGet(p.VendorService, p.ReviewService, logg))

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Resolver, logg))
			r.Use(middleware.RequireRole(logg, enums.RoleUser))
			r.Get("/profile", controllers.UserProfile(p.UserService, logg))
			r.Put("/profile", controllers.UserProfileUpdate(p.UserService, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(p.OrderService, logg))
				r.Post("/", controllers.OrderCreate(p.OrderService, p.Metrics, logg))
				r.Get("/{orderId}", controllers.OrderGet(p.OrderService, logg))
				r.Put("/{orderId}", controllers.OrderSetStatus(p.OrderService, logg))
				r.Get("/{orderId}/reviews", controllers.ReviewListByOrder(p.ReviewService, logg))
				r.Post("/{orderId}/reviews", controllers.ReviewCreate(p.ReviewService, logg))
			})
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Resolver, logg))
			r.Use(middleware.RequireRole(logg, enums.RoleVendor))
			r.Get("/profile", controllers.VendorOwnProfile(p.VendorService, logg))
			r.Put("/profile", controllers.VendorUpdateOwnProfile(p.VendorService, logg))
			r.Post("/categories", controllers.CategoryPropose(p.CategoryService, logg))
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.VendorProductList(p.ProductService, logg))
				r.Post("/", controllers.ProductCreate(p.ProductService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(p.ProductService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(p.ProductService, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(p.OrderService, logg))
				r.Get("/{orderId}", controllers.OrderGet(p.OrderService, logg))
				r.Put("/{orderId}", controllers.OrderSetStatus(p.OrderService, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Resolver, logg))
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleSuperAdmin))
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.CategoryList(p.CategoryService, logg))
				r.Put("/{categoryId}/status", controllers.CategorySetStatus(p.CategoryService, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(p.CategoryService, logg))
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductList(p.ProductService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(p.ProductService, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminUserList(p.UserService, logg))
			})
			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", controllers.VendorList(p.VendorService, logg))
				r.Get("/{vendorId}", controllers.VendorGet(p.VendorService, p.ReviewService, logg))
			})
			r.Route("/accounts", func(r chi.Router) {
				r.Put("/{accountId}/status", controllers.AdminAccountSetStatus(p.AuthService, logg))
				r.Put("/{accountId}/deleted", controllers.AdminAccountSetDeleted(p.AuthService, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(p.OrderService, logg))
				r.Get("/{orderId}", controllers.OrderGet(p.OrderService, logg))
				r.Put("/{orderId}", controllers.OrderSetStatus(p.OrderService, logg))
			})
		})
	})

	return r
}
