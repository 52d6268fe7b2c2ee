package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
)

// ItemRepo defines the persistence operations for itinerary items and their
// per-kind detail rows. Every read returns items with the detail payload for
// their kind already attached.
type ItemRepo interface {
	// Create inserts an item and, when present, its detail row in a single
	// statement, and returns the persisted item.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves a single item scoped to the given tripID.
	// Returns domain.ErrNotFound if no item with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error)

	// ListByTripID returns all items for a trip ordered by sequence_index,
	// then start_time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error)

	// Delete removes an item and its detail row, scoped to the given tripID.
	// Returns domain.ErrNotFound if no item with that ID exists under that trip.
	Delete(ctx context.Context, tripID, itemID uuid.UUID) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemColumns = `id, trip_id, kind, title, start_time, end_time, notes, sequence_index, created_at, updated_at`

// selectItems joins each item to all three detail tables; at most one join
// matches.
const selectItems = `
	SELECT i.id, i.trip_id, i.kind, i.title, i.start_time, i.end_time, i.notes,
	       i.sequence_index, i.created_at, i.updated_at,
	       f.item_id, f.airline, f.flight_number, f.confirmation_number, f.departure, f.arrival,
	       t.item_id, t.mode, t.carrier, t.confirmation_number, t.departure, t.arrival,
	       l.item_id, l.name, l.confirmation_number, l.location
	FROM itinerary_items i
	LEFT JOIN flight_details f    ON f.item_id = i.id
	LEFT JOIN transport_details t ON t.item_id = i.id
	LEFT JOIN lodging_details l   ON l.item_id = i.id`

// Create inserts the item row and chains the detail insert as a data-modifying
// CTE, so a failure in either leaves nothing behind.
func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := pgx.NamedArgs{
		"trip_id":        item.TripID,
		"kind":           string(item.Kind),
		"title":          item.Title,
		"start_time":     item.StartTime,
		"end_time":       item.EndTime,
		"notes":          item.Notes,
		"sequence_index": item.SequenceIndex,
	}

	detail := ""
	switch {
	case item.Kind == domain.ItemKindFlight && item.Flight != nil:
		detail = `,
		detail AS (
			INSERT INTO flight_details (item_id, airline, flight_number, confirmation_number, departure, arrival)
			SELECT id, @airline::text, @flight_number::text, @confirmation_number::text, @departure::jsonb, @arrival::jsonb
			FROM item
		)`
		args["airline"] = item.Flight.Airline
		args["flight_number"] = item.Flight.FlightNumber
		args["confirmation_number"] = item.Flight.ConfirmationNumber
		args["departure"] = item.Flight.Departure
		args["arrival"] = item.Flight.Arrival
	case item.Kind == domain.ItemKindTransport && item.Transport != nil:
		detail = `,
		detail AS (
			INSERT INTO transport_details (item_id, mode, carrier, confirmation_number, departure, arrival)
			SELECT id, @mode::text, @carrier::text, @confirmation_number::text, @departure::jsonb, @arrival::jsonb
			FROM item
		)`
		args["mode"] = string(item.Transport.Mode)
		args["carrier"] = item.Transport.Carrier
		args["confirmation_number"] = item.Transport.ConfirmationNumber
		args["departure"] = item.Transport.Departure
		args["arrival"] = item.Transport.Arrival
	case item.Kind == domain.ItemKindLodging && item.Lodging != nil:
		detail = `,
		detail AS (
			INSERT INTO lodging_details (item_id, name, confirmation_number, location)
			SELECT id, @name::text, @confirmation_number::text, @location::jsonb
			FROM item
		)`
		args["name"] = item.Lodging.Name
		args["confirmation_number"] = item.Lodging.ConfirmationNumber
		args["location"] = item.Lodging.Location
	}

	q := `
		WITH item AS (
			INSERT INTO itinerary_items (trip_id, kind, title, start_time, end_time, notes, sequence_index)
			VALUES (@trip_id, @kind, @title, @start_time, @end_time, @notes, @sequence_index)
			RETURNING ` + itemColumns + `
		)` + detail + `
		SELECT ` + itemColumns + ` FROM item`

	var (
		result domain.Item
		kind   string
	)
	err := r.db.QueryRow(ctx, q, args).Scan(
		&result.ID, &result.TripID, &kind, &result.Title, &result.StartTime, &result.EndTime,
		&result.Notes, &result.SequenceIndex, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	result.Kind = domain.ItemKind(kind)

	// The CTE's detail row is not visible to the outer SELECT, so attach
	// the payload we just wrote.
	switch result.Kind {
	case domain.ItemKindFlight:
		if item.Flight != nil {
			d := *item.Flight
			d.ItemID = result.ID
			result.Flight = &d
		}
	case domain.ItemKindTransport:
		if item.Transport != nil {
			d := *item.Transport
			d.ItemID = result.ID
			result.Transport = &d
		}
	case domain.ItemKindLodging:
		if item.Lodging != nil {
			d := *item.Lodging
			d.ItemID = result.ID
			result.Lodging = &d
		}
	}
	return result, nil
}

// GetByID retrieves one item with its detail, scoped to tripID.
func (r *pgItemRepo) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.Item, error) {
	q := selectItems + `
	WHERE i.id = @id AND i.trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	result, err := scanItem(row)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns every item of a trip with details attached.
func (r *pgItemRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Item, error) {
	q := selectItems + `
	WHERE i.trip_id = @trip_id
	ORDER BY i.sequence_index, i.start_time, i.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: rows: %w", err)
	}
	return items, nil
}

// Delete removes an item; detail rows go with it via ON DELETE CASCADE.
func (r *pgItemRepo) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	const q = `DELETE FROM itinerary_items WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItem maps one row of selectItems into a domain.Item. NULL detail
// columns from the outer joins scan into invalid pgtype values and nil
// GeoPoint pointers.
func scanItem(s scanner) (domain.Item, error) {
	var (
		it   domain.Item
		kind string

		flightID                                  pgtype.UUID
		airline, flightNumber, flightConfirmation pgtype.Text
		flightDep, flightArr                      *domain.GeoPoint

		transportID                          pgtype.UUID
		mode, carrier, transportConfirmation pgtype.Text
		transportDep, transportArr           *domain.GeoPoint

		lodgingID                        pgtype.UUID
		lodgingName, lodgingConfirmation pgtype.Text
		lodgingLoc                       *domain.GeoPoint
	)

	err := s.Scan(
		&it.ID, &it.TripID, &kind, &it.Title, &it.StartTime, &it.EndTime, &it.Notes,
		&it.SequenceIndex, &it.CreatedAt, &it.UpdatedAt,
		&flightID, &airline, &flightNumber, &flightConfirmation, &flightDep, &flightArr,
		&transportID, &mode, &carrier, &transportConfirmation, &transportDep, &transportArr,
		&lodgingID, &lodgingName, &lodgingConfirmation, &lodgingLoc,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}
	it.Kind = domain.ItemKind(kind)

	if flightID.Valid && flightDep != nil && flightArr != nil {
		it.Flight = &domain.FlightDetail{
			ItemID:             it.ID,
			Airline:            airline.String,
			FlightNumber:       flightNumber.String,
			ConfirmationNumber: flightConfirmation.String,
			Departure:          *flightDep,
			Arrival:            *flightArr,
		}
	}
	if transportID.Valid && transportDep != nil && transportArr != nil {
		it.Transport = &domain.TransportDetail{
			ItemID:             it.ID,
			Mode:               domain.TransportMode(mode.String),
			Carrier:            carrier.String,
			ConfirmationNumber: transportConfirmation.String,
			Departure:          *transportDep,
			Arrival:            *transportArr,
		}
	}
	if lodgingID.Valid && lodgingLoc != nil {
		it.Lodging = &domain.LodgingDetail{
			ItemID:             it.ID,
			Name:               lodgingName.String,
			ConfirmationNumber: lodgingConfirmation.String,
			Location:           *lodgingLoc,
		}
	}
	return it, nil
}
