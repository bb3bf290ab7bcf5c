package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/campaign"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/customer"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/export"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/importcsv"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/invoice"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/notification"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/payment"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/product"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/ui"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/voice"
)

type Handlers struct {
	Customers     *customer.Handler
	Products      *product.Handler
	Invoices      *invoice.Handler
	Payments      *payment.Handler
	Deliveries    *delivery.Handler
	Intake        *intake.Handler
	Campaigns     *campaign.Handler
	Notifications *notification.Handler
	UI            *ui.Handler
	Voice         *voice.Handler
	Import        *importcsv.Handler
	Export        *export.Handler
}

type Options struct {
	Timeout            time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				slog.Warn("secure headers blocked request", "error", err)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	if opts.RateLimitPerMinute > 0 {
		router.Use(httprate.Limit(opts.RateLimitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/customers", h.Customers.Routes)
			r.Route("/products", h.Products.Routes)
			r.Route("/invoices", h.Invoices.Routes)
			r.Route("/payments", h.Payments.Routes)
			r.Route("/deliveries", h.Deliveries.Routes)
			r.Route("/leads", h.Intake.LeadRoutes)
			r.Route("/requirements", h.Intake.RequirementRoutes)
			r.Route("/campaigns", h.Campaigns.Routes)
			r.Route("/notifications", h.Notifications.Routes)
			r.Route("/ui", h.UI.Routes)
			r.Route("/voice", h.Voice.Routes)
			r.Route("/export", h.Export.Routes)
		})

		r.Route("/import", h.Import.Routes)
	})

	return router
}
