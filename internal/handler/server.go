// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. They are split into domain-specific
// files (health.go, trip.go, item.go, gap.go) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary-analyzer/api"
	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/validation"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemServicer defines the business operations the item handlers depend on.
type ItemServicer interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error)
	Delete(ctx context.Context, tripID, itemID uuid.UUID) error
}

// GapAnalyzer produces the gap report for a trip.
type GapAnalyzer interface {
	Analyze(ctx context.Context, tripID uuid.UUID) (domain.GapReport, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	items    ItemServicer
	gaps     GapAnalyzer
	log      *slog.Logger
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, items ItemServicer, gaps GapAnalyzer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, items: items, gaps: gaps, log: log, validate: validation.New()}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/items", s.CreateItem)
			r.Get("/items", s.ListItems)
			r.Get("/items/{itemId}", s.GetItem)
			r.Delete("/items/{itemId}", s.DeleteItem)

			r.Get("/gaps", s.GetGaps)
		})
	})
}

// Handler returns a chi router with every endpoint registered and no
// middleware. main.go adds middleware on its own router and mounts this.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}
