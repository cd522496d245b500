package pgload

import (
	"context"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/pkg/errors"
)

const (
	pullPointsTable = "pull_points"
	pullPointTable  = "pull_point"
)

// ProbeCapabilities inspects the current schema once. The result is kept on the storage
// for import reads and handed to the resolvers.
func (s *Storage) ProbeCapabilities(ctx context.Context) (models.SchemaCapabilities, error) {
	caps := models.SchemaCapabilities{
		ImportColumns:  map[string]bool{},
		PullPointTable: pullPointTable,
	}

	cols, err := s.tableColumns(ctx, "loadimports")
	if err != nil {
		return caps, err
	}
	for _, c := range models.OptionalImportColumns {
		if cols[c] {
			caps.ImportColumns[c] = true
		}
	}

	pp, err := s.tableColumns(ctx, pullPointsTable)
	if err != nil {
		return caps, err
	}
	if len(pp) > 0 {
		caps.PullPointTable = pullPointsTable
	}

	join, err := s.tableColumns(ctx, "join")
	if err != nil {
		return caps, err
	}
	caps.JoinTable = join["id_join"] && join["id_pull_point"] && join["id_pad_location"]
	caps.JoinSoftDelete = caps.JoinTable && join["is_deleted"]

	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = 'soundex')`).Scan(&caps.PhoneticMatch)
	if err != nil {
		return caps, errors.Wrap(err, "probe soundex")
	}

	s.caps = caps
	return caps, nil
}

func (s *Storage) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.db.Query(ctx, `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1
`, table)
	if err != nil {
		return nil, errors.Wrapf(err, "columns of %s", table)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan column")
		}
		out[name] = true
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
