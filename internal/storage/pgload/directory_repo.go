package pgload

import (
	"context"

	"github.com/BearBump/LoadBox/internal/matching"
	"github.com/BearBump/LoadBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var _ matching.Directory = (*Storage)(nil)

// SQL forms of the normalisations in package matching. Substring checks use strpos so
// user text is never read as a LIKE pattern.
const (
	contactFullName = `lower(trim(trim(COALESCE(first_name, '')) || ' ' || trim(COALESCE(last_name, ''))))`
	vehicleNumber   = `lower(regexp_replace(COALESCE(vehicle_number, ''), '[^a-zA-Z0-9]+', '', 'g'))`
	vehicleName     = `lower(regexp_replace(COALESCE(vehicle_name, ''), '[^a-zA-Z0-9]+', '', 'g'))`
	pullPointJob    = `regexp_replace(regexp_replace(lower(trim(pp_job)), '\s+', ' ', 'g'), '\s*-\s*', '-', 'g')`
	padLocationJob  = `regexp_replace(lower(trim(pl_job)), '\s+', ' ', 'g')`
)

const contactColumns = `id_contact, COALESCE(first_name, ''), COALESCE(last_name, '')`

func (s *Storage) ContactByFullName(ctx context.Context, normalized string) (*models.Contact, error) {
	var c models.Contact
	err := s.db.QueryRow(ctx, `
SELECT `+contactColumns+`
FROM contact
WHERE `+contactFullName+` = $1
ORDER BY id_contact
LIMIT 1
`, normalized).Scan(&c.ID, &c.FirstName, &c.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select contact")
	}
	return &c, nil
}

func (s *Storage) ContactsByFullNameLike(ctx context.Context, normalized string, limit int) ([]models.Contact, error) {
	return s.contacts(ctx, `strpos(`+contactFullName+`, $1) > 0`, normalized, limit)
}

func (s *Storage) ContactsBySoundex(ctx context.Context, column matching.NameColumn, value string, limit int) ([]models.Contact, error) {
	var where string
	switch column {
	case matching.FirstNameColumn:
		where = `soundex(trim(first_name)) = soundex($1)`
	case matching.LastNameColumn:
		where = `soundex(trim(last_name)) = soundex($1)`
	default:
		return nil, errors.Errorf("unsupported name column %q", column)
	}
	return s.contacts(ctx, where, value, limit)
}

func (s *Storage) ContactsByFirstNamePrefix(ctx context.Context, prefix string, limit int) ([]models.Contact, error) {
	return s.contacts(ctx, `starts_with(lower(trim(first_name)), $1)`, prefix, limit)
}

func (s *Storage) contacts(ctx context.Context, where, arg string, limit int) ([]models.Contact, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+contactColumns+`
FROM contact
WHERE `+where+`
ORDER BY id_contact
LIMIT $2
`, arg, limit)
	if err != nil {
		return nil, errors.Wrap(err, "select contacts")
	}
	defer rows.Close()

	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, errors.Wrap(err, "scan contact")
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) DriverByContact(ctx context.Context, contactID int64) (*models.Driver, error) {
	return s.driver(ctx, `id_contact = $1`, contactID)
}

func (s *Storage) DriverByVehicle(ctx context.Context, vehicleID int64) (*models.Driver, error) {
	return s.driver(ctx, `id_vehicle = $1`, vehicleID)
}

func (s *Storage) driver(ctx context.Context, where string, id int64) (*models.Driver, error) {
	var d models.Driver
	err := s.db.QueryRow(ctx, `
SELECT id_driver, id_contact, id_vehicle
FROM driver
WHERE `+where+`
ORDER BY id_driver
LIMIT 1
`, id).Scan(&d.ID, &d.ContactID, &d.VehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select driver")
	}
	return &d, nil
}

func (s *Storage) VehicleByTruck(ctx context.Context, truck string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.db.QueryRow(ctx, `
SELECT id_vehicle, COALESCE(vehicle_number, ''), COALESCE(vehicle_name, '')
FROM vehicle
WHERE `+vehicleNumber+` = $1 OR `+vehicleName+` = $1
ORDER BY id_vehicle
LIMIT 1
`, truck).Scan(&v.ID, &v.Number, &v.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select vehicle")
	}
	return &v, nil
}

// pullPointTableName guards the only identifier that is not a literal in the query text.
func pullPointTableName(table string) (string, error) {
	switch table {
	case pullPointsTable, pullPointTable:
		return table, nil
	}
	return "", errors.Errorf("unsupported pull point table %q", table)
}

func (s *Storage) PullPointByTerminal(ctx context.Context, table, normalized string) (*models.PullPoint, error) {
	table, err := pullPointTableName(table)
	if err != nil {
		return nil, err
	}

	var p models.PullPoint
	err = s.db.QueryRow(ctx, `
SELECT id_pull_point, pp_job
FROM `+table+`
WHERE is_deleted = 0 AND `+pullPointJob+` = $1
ORDER BY id_pull_point
LIMIT 1
`, normalized).Scan(&p.ID, &p.Job)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select pull point")
	}
	return &p, nil
}

func (s *Storage) PullPointsLike(ctx context.Context, table, normalized string, limit int) ([]models.PullPoint, error) {
	table, err := pullPointTableName(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
SELECT id_pull_point, pp_job
FROM `+table+`
WHERE is_deleted = 0 AND strpos(`+pullPointJob+`, $1) > 0
ORDER BY id_pull_point
LIMIT $2
`, normalized, limit)
	if err != nil {
		return nil, errors.Wrap(err, "select pull points")
	}
	defer rows.Close()

	var out []models.PullPoint
	for rows.Next() {
		var p models.PullPoint
		if err := rows.Scan(&p.ID, &p.Job); err != nil {
			return nil, errors.Wrap(err, "scan pull point")
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) PadLocationByJob(ctx context.Context, normalized string) (*models.PadLocation, error) {
	var p models.PadLocation
	err := s.db.QueryRow(ctx, `
SELECT id_pad_location, pl_job
FROM pad_location
WHERE is_deleted = 0 AND `+padLocationJob+` = $1
ORDER BY id_pad_location
LIMIT 1
`, normalized).Scan(&p.ID, &p.Job)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select pad location")
	}
	return &p, nil
}

func (s *Storage) PadLocationsLike(ctx context.Context, normalized, loose string, limit int) ([]models.PadLocation, error) {
	rows, err := s.db.Query(ctx, `
SELECT id_pad_location, pl_job
FROM pad_location
WHERE is_deleted = 0
  AND `+padLocationJob+` <> ''
  AND (
    strpos(`+padLocationJob+`, $1) > 0
    OR strpos(`+padLocationJob+`, $2) > 0
    OR strpos($1, `+padLocationJob+`) > 0
    OR strpos($2, `+padLocationJob+`) > 0
  )
ORDER BY id_pad_location
LIMIT $3
`, normalized, loose, limit)
	if err != nil {
		return nil, errors.Wrap(err, "select pad locations")
	}
	defer rows.Close()

	var out []models.PadLocation
	for rows.Next() {
		var p models.PadLocation
		if err := rows.Scan(&p.ID, &p.Job); err != nil {
			return nil, errors.Wrap(err, "scan pad location")
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) FindJoin(ctx context.Context, pullPointID, padLocationID int64, softDelete bool) (*models.Join, error) {
	q := `
SELECT id_join, id_pull_point, id_pad_location
FROM "join"
WHERE id_pull_point = $1 AND id_pad_location = $2`
	if softDelete {
		q += ` AND is_deleted = 0`
	}
	q += `
ORDER BY id_join
LIMIT 1`

	var j models.Join
	err := s.db.QueryRow(ctx, q, pullPointID, padLocationID).Scan(&j.ID, &j.PullPointID, &j.PadLocationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select join")
	}
	return &j, nil
}
