package pgload

import (
	"context"
	"strings"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// importSelect lists the base columns plus whichever optional ones the schema has.
// Text-ish columns are cast so jsonb/varchar/timestamp variants all scan into strings.
func (s *Storage) importSelect() (string, []string) {
	cols := []string{
		"id",
		"jobname::text",
		"payload_json::text",
		"payload_original::text",
		"created_at",
		"updated_at",
	}
	var optional []string
	for _, c := range models.OptionalImportColumns {
		if s.caps.HasImportColumn(c) {
			cols = append(cols, c+"::text")
			optional = append(optional, c)
		}
	}
	return strings.Join(cols, ", "), optional
}

func optionalField(r *models.ImportRecord, col string) **string {
	switch col {
	case "carrier":
		return &r.Carrier
	case "truck":
		return &r.Truck
	case "terminal":
		return &r.Terminal
	case "state":
		return &r.State
	case "delivery_time":
		return &r.DeliveryTime
	case "load_number":
		return &r.LoadNumber
	case "ticket_number":
		return &r.TicketNumber
	}
	return new(*string)
}

func scanImport(row pgx.Row, optional []string) (*models.ImportRecord, error) {
	var r models.ImportRecord
	dest := []any{&r.ID, &r.JobName, &r.PayloadJSON, &r.PayloadOriginal, &r.CreatedAt, &r.UpdatedAt}
	for _, c := range optional {
		dest = append(dest, optionalField(&r, c))
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListImports returns the most recent imports first.
func (s *Storage) ListImports(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	cols, optional := s.importSelect()

	rows, err := s.db.Query(ctx, `SELECT `+cols+` FROM loadimports ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "select imports")
	}
	defer rows.Close()

	out := make([]*models.ImportRecord, 0, limit)
	for rows.Next() {
		r, err := scanImport(rows, optional)
		if err != nil {
			return nil, errors.Wrap(err, "scan import")
		}
		out = append(out, r)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetImport(ctx context.Context, id int64) (*models.ImportRecord, error) {
	cols, optional := s.importSelect()

	r, err := scanImport(s.db.QueryRow(ctx, `SELECT `+cols+` FROM loadimports WHERE id = $1`, id), optional)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select import")
	}
	return r, nil
}

// ProcessedImports returns the committed load per import id, for the ids that have one.
func (s *Storage) ProcessedImports(ctx context.Context, importIDs []int64) (map[int64]models.ProcessedRef, error) {
	out := make(map[int64]models.ProcessedRef, len(importIDs))
	if len(importIDs) == 0 {
		return out, nil
	}

	rows, err := s.db.Query(ctx, `
SELECT input_id, id_load, id_load_detail
FROM load_detail
WHERE input_method = $1 AND input_id = ANY($2)
ORDER BY id_load_detail
`, models.InputMethodImport, importIDs)
	if err != nil {
		return nil, errors.Wrap(err, "select load_detail")
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var ref models.ProcessedRef
		if err := rows.Scan(&id, &ref.LoadID, &ref.LoadDetailID); err != nil {
			return nil, errors.Wrap(err, "scan load_detail")
		}
		if _, ok := out[id]; !ok {
			out[id] = ref
		}
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// FindProcessed returns the load committed for an import, nil when there is none.
func (s *Storage) FindProcessed(ctx context.Context, importID int64) (*models.ProcessedRef, error) {
	return findProcessed(ctx, s.db, models.InputMethodImport, importID)
}

func findProcessed(ctx context.Context, q querier, inputMethod string, inputID int64) (*models.ProcessedRef, error) {
	var ref models.ProcessedRef
	err := q.QueryRow(ctx, `
SELECT id_load, id_load_detail
FROM load_detail
WHERE input_method = $1 AND input_id = $2
ORDER BY id_load_detail
LIMIT 1
`, inputMethod, inputID).Scan(&ref.LoadID, &ref.LoadDetailID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select load_detail")
	}
	return &ref, nil
}
