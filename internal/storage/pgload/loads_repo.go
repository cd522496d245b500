package pgload

import (
	"context"
	"fmt"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

func fingerprintKey(d models.NewLoadDetail) string {
	return fmt.Sprintf("load_detail:%s:%d", d.InputMethod, d.InputID)
}

// CommitLoad writes a load and its load_detail fingerprint in one transaction. When the
// fingerprint already exists nothing is written and the existing pair is returned with
// created=false.
//
// Concurrent commits for the same import serialise on an advisory lock keyed by the
// fingerprint; the unique index on load_detail(input_method, input_id) backs it up.
func (s *Storage) CommitLoad(ctx context.Context, load models.NewLoad, detail models.NewLoadDetail) (models.ProcessedRef, bool, error) {
	ref, created, err := s.commitLoad(ctx, load, detail)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		existing, ferr := findProcessed(ctx, s.db, detail.InputMethod, detail.InputID)
		if ferr != nil {
			return models.ProcessedRef{}, false, ferr
		}
		if existing != nil {
			return *existing, false, nil
		}
	}
	return ref, created, err
}

func (s *Storage) commitLoad(ctx context.Context, load models.NewLoad, detail models.NewLoadDetail) (models.ProcessedRef, bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.ProcessedRef{}, false, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, fingerprintKey(detail)); err != nil {
		return models.ProcessedRef{}, false, errors.Wrap(err, "lock fingerprint")
	}

	existing, err := findProcessed(ctx, tx, detail.InputMethod, detail.InputID)
	if err != nil {
		return models.ProcessedRef{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}

	var finished *int16
	if load.Finished {
		one := int16(1)
		finished = &one
	}

	var ref models.ProcessedRef
	err = tx.QueryRow(ctx, `
INSERT INTO "load" (id_join, id_contact, id_vehicle, is_deleted, load_date, delivery_time, is_finished)
VALUES ($1, $2, $3, 0, $4, $5, $6)
RETURNING id_load
`, load.JoinID, load.ContactID, load.VehicleID, load.LoadDate, load.DeliveryTime, finished).Scan(&ref.LoadID)
	if err != nil {
		return models.ProcessedRef{}, false, errors.Wrap(err, "insert load")
	}

	err = tx.QueryRow(ctx, `
INSERT INTO load_detail (id_load, input_method, input_id, load_number, ticket_number, truck_number, net_lbs)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id_load_detail
`, ref.LoadID, detail.InputMethod, detail.InputID, detail.LoadNumber, detail.TicketNumber, detail.TruckNumber, detail.NetLbs).Scan(&ref.LoadDetailID)
	if err != nil {
		return models.ProcessedRef{}, false, errors.Wrap(err, "insert load_detail")
	}

	if err := tx.Commit(ctx); err != nil {
		return models.ProcessedRef{}, false, errors.Wrap(err, "commit tx")
	}
	return ref, true, nil
}
