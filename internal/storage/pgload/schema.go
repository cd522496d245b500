package pgload

import (
	"context"

	"github.com/pkg/errors"
)

// EnsureSchema creates the tables the engine reads and writes. Production databases already
// have them; this is used by tests and by auto_migrate.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS fuzzystrmatch`,
		`
CREATE TABLE IF NOT EXISTS loadimports (
  id BIGSERIAL PRIMARY KEY,
  jobname TEXT NULL,
  payload_json TEXT NULL,
  payload_original TEXT NULL,
  carrier TEXT NULL,
  truck TEXT NULL,
  terminal TEXT NULL,
  state TEXT NULL,
  delivery_time TEXT NULL,
  load_number TEXT NULL,
  ticket_number TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS contact (
  id_contact BIGSERIAL PRIMARY KEY,
  first_name TEXT NULL,
  last_name TEXT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS vehicle (
  id_vehicle BIGSERIAL PRIMARY KEY,
  vehicle_number TEXT NULL,
  vehicle_name TEXT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS driver (
  id_driver BIGSERIAL PRIMARY KEY,
  id_contact BIGINT NOT NULL REFERENCES contact(id_contact),
  id_vehicle BIGINT NULL REFERENCES vehicle(id_vehicle)
)`,
		`CREATE INDEX IF NOT EXISTS idx_driver_id_contact ON driver(id_contact)`,
		`CREATE INDEX IF NOT EXISTS idx_driver_id_vehicle ON driver(id_vehicle)`,
		`
CREATE TABLE IF NOT EXISTS pull_point (
  id_pull_point BIGSERIAL PRIMARY KEY,
  pp_job TEXT NOT NULL,
  is_deleted SMALLINT NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS pad_location (
  id_pad_location BIGSERIAL PRIMARY KEY,
  pl_job TEXT NOT NULL,
  is_deleted SMALLINT NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS "join" (
  id_join BIGSERIAL PRIMARY KEY,
  id_pull_point BIGINT NOT NULL REFERENCES pull_point(id_pull_point),
  id_pad_location BIGINT NOT NULL REFERENCES pad_location(id_pad_location),
  is_deleted SMALLINT NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS "load" (
  id_load BIGSERIAL PRIMARY KEY,
  id_join BIGINT NULL,
  id_contact BIGINT NOT NULL,
  id_vehicle BIGINT NULL,
  load_date VARCHAR(10) NULL,
  delivery_time TIMESTAMP NULL,
  is_finished SMALLINT NULL,
  is_deleted SMALLINT NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS load_detail (
  id_load_detail BIGSERIAL PRIMARY KEY,
  id_load BIGINT NOT NULL REFERENCES "load"(id_load),
  input_method TEXT NOT NULL,
  input_id BIGINT NOT NULL,
  load_number TEXT NULL,
  ticket_number TEXT NULL,
  truck_number TEXT NULL,
  net_lbs BIGINT NULL
)`,
		// One committed load per import.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_load_detail_fingerprint ON load_detail(input_method, input_id)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
