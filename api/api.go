// Package api provides the HTTP API for the campground booking backend. It
// exposes the booking cancellation and checkout endpoints and the payment
// gateway webhook.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/log"
	"github.com/opencamp-hq/backend/stripe"
)

// Config holds the configuration of the API HTTP server.
type Config struct {
	Host      string
	Port      int
	DB        *db.MongoStorage
	Stripe    *stripe.Service
	WebAppURL string
}

// API type represents the API HTTP server.
type API struct {
	db        *db.MongoStorage
	stripe    *stripe.Service
	host      string
	port      int
	webAppURL string
}

// New creates a new API HTTP server. It does not start the server. Use
// Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		db:        conf.DB,
		stripe:    conf.Stripe,
		host:      conf.Host,
		port:      conf.Port,
		webAppURL: conf.WebAppURL,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	// cancel a booked trip and refund its charge
	log.Infow("new route", "method", "POST", "path", bookingsCancelEndpoint)
	r.Post(bookingsCancelEndpoint, a.cancelBookingHandler)
	// create a checkout session for a stay
	log.Infow("new route", "method", "POST", "path", bookingsCheckoutEndpoint)
	r.Post(bookingsCheckoutEndpoint, a.checkoutHandler)
	// receive payment gateway webhook events
	log.Infow("new route", "method", "POST", "path", stripeWebhookEndpoint)
	r.Post(stripeWebhookEndpoint, a.stripeWebhookHandler)

	return r
}
