// Package http exposes the record store and the aggregation engine as a
// JSON API. It is a thin presentation layer: all numeric contracts live in
// the stats package.
package http

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"billfold/internal/log"
	"billfold/internal/metrics"
	"billfold/internal/middleware/ratelimit"
	"billfold/internal/sms"
	"billfold/internal/store"
)

// Server wires the store and collaborators into an HTTP handler.
type Server struct {
	store   *store.Store
	sms     *sms.Service // nil disables the import endpoint
	logger  *log.Logger
	limiter *ratelimit.Limiter
}

func NewServer(st *store.Store, smsService *sms.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Server{
		store:   st,
		sms:     smsService,
		logger:  logger.WithComponent(log.ComponentHTTP),
		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}
}

// clientIP extracts the caller's address for rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Router builds the chi router with all API routes mounted under /api.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(s.limiter.Middleware(clientIP))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/bills", func(r chi.Router) {
			r.Get("/", s.listBills)
			r.Post("/", s.createBill)
			r.Get("/upcoming", s.upcomingBills)
			r.Get("/{bill_id}", s.getBill)
			r.Put("/{bill_id}", s.updateBill)
			r.Post("/{bill_id}/paid", s.markBillPaid)
			r.Delete("/{bill_id}", s.deleteBill)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.listSubscriptions)
			r.Post("/", s.createSubscription)
			r.Get("/{subscription_id}", s.getSubscription)
			r.Put("/{subscription_id}", s.updateSubscription)
			r.Delete("/{subscription_id}", s.deleteSubscription)
		})

		r.Get("/categories", s.listCategories)

		r.Route("/suggestions", func(r chi.Router) {
			r.Get("/", s.listSuggestions)
			r.Post("/{suggestion_id}/dismiss", s.dismissSuggestion)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.listReminders)
			r.Post("/", s.createReminder)
			r.Post("/{reminder_id}/dismiss", s.dismissReminder)
		})

		r.Get("/stats", s.getStats)
		r.Get("/forecast", s.getForecast)

		r.Post("/sms/import", s.importSMS)
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server with sane timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        s.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}
