package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tijaralink/tijaralink-backend/api/controllers"
	"github.com/tijaralink/tijaralink-backend/api/middleware"
	"github.com/tijaralink/tijaralink-backend/internal/auth"
	"github.com/tijaralink/tijaralink-backend/internal/contracts"
	"github.com/tijaralink/tijaralink-backend/internal/customs"
	"github.com/tijaralink/tijaralink-backend/internal/orders"
	"github.com/tijaralink/tijaralink-backend/internal/quotes"
	"github.com/tijaralink/tijaralink-backend/internal/reviews"
	"github.com/tijaralink/tijaralink-backend/internal/rfq"
	"github.com/tijaralink/tijaralink-backend/internal/shipments"
	"github.com/tijaralink/tijaralink-backend/pkg/config"
	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
	"github.com/tijaralink/tijaralink-backend/pkg/metrics"
	pkgredis "github.com/tijaralink/tijaralink-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Keeping it a struct
// saves main from a constructor with a dozen positional arguments.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	Redis       *pkgredis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	AuthService     auth.Service
	RfqService      rfq.Service
	QuoteService    quotes.Service
	OrderService    orders.Service
	ShipmentService shipments.Service
	ContractService contracts.Service
	ReviewService   reviews.Service
	CustomsService  customs.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

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
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DBPinger, d.Redis))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.AuthService, logg))
	})

	// Public endpoints: read-only supplier reputation and the landed cost
	// calculator, both usable before a buyer has an account.
	r.Get("/api/v1/suppliers/{companyId}/reviews", controllers.SupplierReviews(d.ReviewService, logg))
	r.Post("/api/v1/estimate", controllers.CustomsEstimate(d.CustomsService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(d.Redis, logg))

		r.Route("/rfq", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, "buyer", "admin")).Post("/", controllers.RfqCreate(d.RfqService, logg))
			r.Get("/", controllers.RfqList(d.RfqService, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, "supplier", "admin")).Post("/", controllers.QuoteCreate(d.QuoteService, logg))
			r.Get("/rfq/{rfqId}", controllers.QuotesByRfq(d.QuoteService, logg))
			r.Post("/{quoteId}/accept", controllers.QuoteAccept(d.QuoteService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(d.OrderService, logg))
			r.Get("/", controllers.OrderList(d.OrderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(d.OrderService, logg))
			r.Post("/{orderId}/escrow/release", controllers.EscrowRelease(d.OrderService, logg))
			r.Post("/{orderId}/shipments", controllers.ShipmentCreate(d.ShipmentService, logg))
			r.Get("/{orderId}/shipments", controllers.ShipmentList(d.ShipmentService, logg))
			r.Post("/{orderId}/review", controllers.ReviewCreate(d.ReviewService, logg))
			r.Put("/{orderId}/review", controllers.ReviewUpsert(d.ReviewService, logg))
		})

		r.Route("/shipments", func(r chi.Router) {
			r.Post("/{shipmentId}/status", controllers.ShipmentStatus(d.ShipmentService, logg))
			r.Post("/{shipmentId}/customs", controllers.CustomsAttach(d.ShipmentService, logg))
		})

		r.Post("/customs/{customsId}/status", controllers.CustomsStatus(d.ShipmentService, logg))

		r.Route("/contracts", func(r chi.Router) {
			r.Post("/order/{orderId}", controllers.ContractCreate(d.ContractService, logg))
			r.Post("/{contractId}/sign", controllers.ContractSign(d.ContractService, logg))
		})
	})

	return r
}
