package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Initialize the warehouses schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWarehousesQuery := `
	CREATE TABLE IF NOT EXISTS warehouses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		is_delivery_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		is_24x7_delivery BOOLEAN NOT NULL DEFAULT FALSE,
		delivery_pincodes TEXT NOT NULL DEFAULT '',
		max_delivery_radius_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		free_delivery_radius_km DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_warehouses_status
	ON warehouses(status);
	`

	statements := []string{
		createWarehousesQuery,
		createStatusIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type WarehouseSeed struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Address              string   `json:"address"`
	Status               string   `json:"status"`
	Lat                  *float64 `json:"lat"`
	Lng                  *float64 `json:"lng"`
	IsDeliveryEnabled    bool     `json:"is_delivery_enabled"`
	Is24x7Delivery       bool     `json:"is_24x7_delivery"`
	DeliveryPincodes     []string `json:"delivery_pincodes"`
	MaxDeliveryRadiusKm  float64  `json:"max_delivery_radius_km"`
	FreeDeliveryRadiusKm float64  `json:"free_delivery_radius_km"`
}

// Populate the database with warehouse data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed warehouses: read %q: %w", jsonPath, err)
	}

	var data []WarehouseSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed warehouses: parse json: %w", err)
	}

	for i, w := range data {
		if strings.TrimSpace(w.ID) == "" {
			return fmt.Errorf("seed warehouses: empty id at index %d", i+1)
		}
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("seed warehouses: id=%q: name cannot be empty", w.ID)
		}
		// The read side assumes but never enforces this ordering; surface
		// misconfiguration at seed time where it can still be fixed.
		if w.FreeDeliveryRadiusKm > w.MaxDeliveryRadiusKm {
			log.Printf(
				"seed warehouses: id=%s free_delivery_radius_km=%.1f exceeds max_delivery_radius_km=%.1f",
				w.ID, w.FreeDeliveryRadiusKm, w.MaxDeliveryRadiusKm,
			)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed warehouses: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO warehouses (
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
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		status = EXCLUDED.status,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		is_delivery_enabled = EXCLUDED.is_delivery_enabled,
		is_24x7_delivery = EXCLUDED.is_24x7_delivery,
		delivery_pincodes = EXCLUDED.delivery_pincodes,
		max_delivery_radius_km = EXCLUDED.max_delivery_radius_km,
		free_delivery_radius_km = EXCLUDED.free_delivery_radius_km;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed warehouses: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range data {
		status := strings.TrimSpace(w.Status)
		if status == "" {
			status = "active"
		}

		_, err := stmt.Exec(
			w.ID,
			w.Name,
			w.Address,
			status,
			w.Lat,
			w.Lng,
			w.IsDeliveryEnabled,
			w.Is24x7Delivery,
			strings.Join(w.DeliveryPincodes, ","),
			w.MaxDeliveryRadiusKm,
			w.FreeDeliveryRadiusKm,
		)
		if err != nil {
			return fmt.Errorf("seed warehouses: insert id=%q: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed warehouses: commit tx: %w", err)
	}

	return nil
}
