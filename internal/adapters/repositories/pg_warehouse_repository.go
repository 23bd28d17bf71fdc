package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
)

// Postgres-backed implementation of the WarehouseRepository port.
type PgWarehouseRepository struct{ DB *sql.DB }

func NewPgWarehouseRepository(db *sql.DB) *PgWarehouseRepository {
	return &PgWarehouseRepository{DB: db}
}

const warehouseColumns = `
	id,
	name,
	address,
	status,
	lat,
	lng,
	is_delivery_enabled,
	is_24x7_delivery,
	delivery_pincodes,
	max_delivery_radius_km,
	free_delivery_radius_km
`

// ListActive returns all active warehouses that have a populated location.
func (s *PgWarehouseRepository) ListActive(ctx context.Context) (_ []*domain.Warehouse, err error) {
	defer obs.Time(ctx, "warehouses.ListActive")(&err)

	if s.DB == nil {
		return nil, errors.New("warehouse repository: DB is nil")
	}

	query := `
	SELECT ` + warehouseColumns + `
	FROM warehouses
	WHERE status = $1
		AND lat IS NOT NULL
		AND lng IS NOT NULL
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, query, domain.WarehouseStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active warehouses: query warehouses table: %w", err)
	}
	defer rows.Close()

	return scanWarehouses(rows)
}

// FindByIDs returns warehouses matching the given ids. Unknown ids are
// absent from the result rather than an error.
func (s *PgWarehouseRepository) FindByIDs(ctx context.Context, ids []string) (_ []*domain.Warehouse, err error) {
	defer obs.Time(ctx, "warehouses.FindByIDs")(&err)

	if s.DB == nil {
		return nil, errors.New("warehouse repository: DB is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	if len(uniq) == 0 {
		return []*domain.Warehouse{}, nil
	}

	query := `
	SELECT ` + warehouseColumns + `
	FROM warehouses
	WHERE id = ANY($1::text[])
	ORDER BY id;
	`

	rows, err := s.DB.QueryContext(ctx, query, uniq)
	if err != nil {
		return nil, fmt.Errorf("find warehouses by ids: query warehouses table: %w", err)
	}
	defer rows.Close()

	return scanWarehouses(rows)
}

func scanWarehouses(rows *sql.Rows) ([]*domain.Warehouse, error) {
	warehouses := make([]*domain.Warehouse, 0, 16)
	for rows.Next() {
		var (
			w        domain.Warehouse
			lat, lng sql.NullFloat64
			pincodes sql.NullString
		)

		err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.Address,
			&w.Status,
			&lat,
			&lng,
			&w.DeliverySettings.IsDeliveryEnabled,
			&w.DeliverySettings.Is24x7Delivery,
			&pincodes,
			&w.DeliverySettings.MaxDeliveryRadiusKm,
			&w.DeliverySettings.FreeDeliveryRadiusKm,
		)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse row: %w", err)
		}

		w.Location = nullableLocation(lat, lng)
		w.DeliverySettings.DeliveryPincodes = splitPincodes(pincodes.String)

		warehouses = append(warehouses, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("warehouse row iteration: %w", err)
	}

	return warehouses, nil
}

// nullableLocation maps NULL lat/lng onto a coordinate that fails
// validation. The zero Coordinate is a real place (0, 0), so it cannot
// stand in for "location unset"; a warehouse row without a location must
// come out unusable, not anchored off the West African coast.
func nullableLocation(lat, lng sql.NullFloat64) domain.Coordinate {
	if lat.Valid && lng.Valid {
		return domain.Coordinate{Lat: lat.Float64, Lng: lng.Float64}
	}
	return domain.Coordinate{Lat: math.NaN(), Lng: math.NaN()}
}

// Pincodes are stored as a comma-separated text column; exact string
// matching happens in the domain, so only whitespace is trimmed here.
func splitPincodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
