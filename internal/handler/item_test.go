package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/handler"
	"github.com/pkordes/itinerary-analyzer/internal/middleware"
)

// mockItemServicer is a test double for handler.ItemServicer.
type mockItemServicer struct {
	create       func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID      func(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error)
	delete       func(ctx context.Context, tripID, itemID uuid.UUID) error
}

func (m *mockItemServicer) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemServicer) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, tripID, itemID)
}
func (m *mockItemServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockItemServicer) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	return m.delete(ctx, tripID, itemID)
}

var _ handler.ItemServicer = (*mockItemServicer)(nil)

func newItemHandler(svc handler.ItemServicer) http.Handler {
	return handler.NewServer(nil, svc, nil, nil).Handler()
}

func f64(v float64) *float64 { return &v }

func flightFixture(tripID uuid.UUID) domain.Item {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return domain.Item{
		ID:        uuid.New(),
		TripID:    tripID,
		Kind:      domain.ItemKindFlight,
		Title:     "NYC to Paris",
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
		Flight: &domain.FlightDetail{
			Airline:      "AF",
			FlightNumber: "AF007",
			Departure:    domain.GeoPoint{Address: "JFK Airport", City: "New York", Latitude: f64(40.6413), Longitude: f64(-73.7781)},
			Arrival:      domain.GeoPoint{Address: "CDG Airport", City: "Paris"},
		},
	}
}

func flightRequest() map[string]any {
	return map[string]any{
		"kind":       "flight",
		"title":      "NYC to Paris",
		"start_time": "2025-06-01T08:00:00Z",
		"end_time":   "2025-06-01T16:00:00Z",
		"flight": map[string]any{
			"airline":       "AF",
			"flight_number": "AF007",
			"departure":     map[string]any{"address": "JFK Airport", "city": "New York", "latitude": 40.6413, "longitude": -73.7781},
			"arrival":       map[string]any{"address": "CDG Airport", "city": "Paris"},
		},
	}
}

// ---- POST /trips/{id}/items ------------------------------------------------

func TestCreateItem_201(t *testing.T) {
	tripID := uuid.New()
	fixture := flightFixture(tripID)
	var got domain.Item
	svc := &mockItemServicer{
		create: func(_ context.Context, item domain.Item) (domain.Item, error) {
			got = item
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/items", jsonBody(t, flightRequest()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, tripID, got.TripID)
	assert.Equal(t, domain.ItemKindFlight, got.Kind)
	require.NotNil(t, got.Flight)
	assert.Equal(t, "Paris", got.Flight.Arrival.City)
	require.NotNil(t, got.Flight.Departure.Latitude)
	assert.InDelta(t, 40.6413, *got.Flight.Departure.Latitude, 1e-9)
	assert.Nil(t, got.Flight.Arrival.Latitude)
	assert.Nil(t, got.Transport)
	assert.Nil(t, got.Lodging)

	var resp handler.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, "flight", resp.Kind)
	require.NotNil(t, resp.Flight)
	assert.Equal(t, "AF007", resp.Flight.FlightNumber)
}

func TestCreateItem_TransportModeDefaultsToOther(t *testing.T) {
	var got domain.Item
	svc := &mockItemServicer{
		create: func(_ context.Context, item domain.Item) (domain.Item, error) {
			got = item
			return item, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"kind":       "transport",
		"title":      "Shuttle",
		"start_time": "2025-06-01T08:00:00Z",
		"end_time":   "2025-06-01T09:00:00Z",
		"transport": map[string]any{
			"departure": map[string]any{"address": "Hotel"},
			"arrival":   map[string]any{"address": "Airport"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/items", body)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got.Transport)
	assert.Equal(t, domain.TransportModeOther, got.Transport.Mode)
}

func TestCreateItem_422_RequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(body map[string]any)
		wantMsg string
	}{
		{"unknown kind", func(b map[string]any) { b["kind"] = "cruise" }, "kind must be one of"},
		{"missing title", func(b map[string]any) { delete(b, "title") }, "title is required"},
		{"missing start", func(b map[string]any) { delete(b, "start_time") }, "start_time is required"},
		{"negative sequence", func(b map[string]any) { b["sequence_index"] = -1 }, "sequence_index"},
		{"missing address", func(b map[string]any) {
			b["flight"].(map[string]any)["arrival"] = map[string]any{"city": "Paris"}
		}, "flight.arrival.address is required"},
		{"latitude out of range", func(b map[string]any) {
			b["flight"].(map[string]any)["arrival"] = map[string]any{"address": "CDG", "latitude": 123.0, "longitude": 2.5}
		}, "flight.arrival.latitude"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := flightRequest()
			tc.mutate(body)
			req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/items", jsonBody(t, body))
			rec := httptest.NewRecorder()

			newItemHandler(&mockItemServicer{}).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, "validation_error", e.Code)
			assert.Contains(t, e.Message, tc.wantMsg)
		})
	}
}

func TestCreateItem_404_TripNotFound(t *testing.T) {
	svc := &mockItemServicer{
		create: func(_ context.Context, _ domain.Item) (domain.Item, error) {
			return domain.Item{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/items", jsonBody(t, flightRequest()))
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trip not found", decodeError(t, rec).Message)
}

// A body of unknown length is only cut off while it is being decoded; the
// handler must answer 413 rather than treat the truncated JSON as malformed.
func TestCreateItem_413_StreamedBodyOverLimit(t *testing.T) {
	const limit = 512
	h := middleware.NewMaxBodySizeHandler(limit)(newItemHandler(&mockItemServicer{}))

	notes := strings.Repeat("long notes ", 200)
	body := `{"kind":"flight","title":"NYC to Paris","start_time":"2025-06-01T08:00:00Z","end_time":"2025-06-01T16:00:00Z","notes":"` + notes + `"}`
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/items", strings.NewReader(body))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Equal(t, "request body too large", e.Message)
}

func TestCreateItem_StreamedBodyUnderLimit(t *testing.T) {
	svc := &mockItemServicer{
		create: func(_ context.Context, item domain.Item) (domain.Item, error) { return item, nil },
	}
	h := middleware.NewMaxBodySizeHandler(1 << 20)(newItemHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/items", jsonBody(t, flightRequest()))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// ---- GET /trips/{id}/items -------------------------------------------------

func TestListItems_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItemServicer{
		listByTripID: func(_ context.Context, id uuid.UUID) ([]domain.Item, error) {
			assert.Equal(t, tripID, id)
			return []domain.Item{flightFixture(tripID), flightFixture(tripID)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/items", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []handler.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestListItems_200_Empty(t *testing.T) {
	svc := &mockItemServicer{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Item, error) {
			return []domain.Item{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String()+"/items", nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- GET /trips/{id}/items/{itemId} ----------------------------------------

func TestGetItem_200(t *testing.T) {
	fixture := flightFixture(uuid.New())
	svc := &mockItemServicer{
		getByID: func(_ context.Context, tripID, itemID uuid.UUID) (domain.Item, error) {
			assert.Equal(t, fixture.TripID, tripID)
			assert.Equal(t, fixture.ID, itemID)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+fixture.TripID.String()+"/items/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestGetItem_404(t *testing.T) {
	svc := &mockItemServicer{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Item, error) {
			return domain.Item{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String()+"/items/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeError(t, rec).Message)
}

// ---- DELETE /trips/{id}/items/{itemId} -------------------------------------

func TestDeleteItem_204(t *testing.T) {
	svc := &mockItemServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.New().String()+"/items/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	newItemHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteItem_404_MalformedItemID(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.New().String()+"/items/nope", nil)
	rec := httptest.NewRecorder()

	newItemHandler(&mockItemServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
