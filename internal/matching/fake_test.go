package matching

import (
	"context"
	"strings"

	"github.com/BearBump/LoadBox/internal/models"
)

// fakeDirectory is an in-memory production database with the same matching rules as pgload.
type fakeDirectory struct {
	contacts []models.Contact
	drivers  []models.Driver
	vehicles []models.Vehicle

	pullPoints   []models.PullPoint
	padLocations []models.PadLocation
	deleted      map[int64]bool // pull point / pad location ids

	joins        []models.Join
	deletedJoins map[int64]bool

	err   error
	calls []string
}

var _ Directory = (*fakeDirectory)(nil)

func (f *fakeDirectory) called(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeDirectory) wasCalled(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func fullNameKey(c models.Contact) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName)))
}

func (f *fakeDirectory) ContactByFullName(_ context.Context, normalized string) (*models.Contact, error) {
	f.called("ContactByFullName")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.contacts {
		if fullNameKey(f.contacts[i]) == normalized {
			return &f.contacts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) ContactsByFullNameLike(_ context.Context, normalized string, limit int) ([]models.Contact, error) {
	f.called("ContactsByFullNameLike")
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Contact
	for _, c := range f.contacts {
		if strings.Contains(fullNameKey(c), normalized) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) ContactsBySoundex(_ context.Context, column NameColumn, value string, limit int) ([]models.Contact, error) {
	f.called("ContactsBySoundex")
	if f.err != nil {
		return nil, f.err
	}
	want := soundex(value)
	var out []models.Contact
	for _, c := range f.contacts {
		v := c.LastName
		if column == FirstNameColumn {
			v = c.FirstName
		}
		if soundex(v) == want && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) ContactsByFirstNamePrefix(_ context.Context, prefix string, limit int) ([]models.Contact, error) {
	f.called("ContactsByFirstNamePrefix")
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Contact
	for _, c := range f.contacts {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.FirstName)), prefix) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) DriverByContact(_ context.Context, contactID int64) (*models.Driver, error) {
	f.called("DriverByContact")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.drivers {
		if f.drivers[i].ContactID == contactID {
			return &f.drivers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) DriverByVehicle(_ context.Context, vehicleID int64) (*models.Driver, error) {
	f.called("DriverByVehicle")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.drivers {
		if v := f.drivers[i].VehicleID; v != nil && *v == vehicleID {
			return &f.drivers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) VehicleByTruck(_ context.Context, truck string) (*models.Vehicle, error) {
	f.called("VehicleByTruck")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.vehicles {
		if NormalizeTruck(f.vehicles[i].Number) == truck || NormalizeTruck(f.vehicles[i].Name) == truck {
			return &f.vehicles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) PullPointByTerminal(_ context.Context, table, normalized string) (*models.PullPoint, error) {
	f.called("PullPointByTerminal:" + table)
	if f.err != nil {
		return nil, f.err
	}
	for i, p := range f.pullPoints {
		if !f.deleted[p.ID] && NormalizeTerminal(p.Job) == normalized {
			return &f.pullPoints[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) PullPointsLike(_ context.Context, table, normalized string, limit int) ([]models.PullPoint, error) {
	f.called("PullPointsLike:" + table)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.PullPoint
	for _, p := range f.pullPoints {
		if !f.deleted[p.ID] && strings.Contains(NormalizeTerminal(p.Job), normalized) && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDirectory) PadLocationByJob(_ context.Context, normalized string) (*models.PadLocation, error) {
	f.called("PadLocationByJob")
	if f.err != nil {
		return nil, f.err
	}
	for i, p := range f.padLocations {
		if !f.deleted[p.ID] && NormalizeJob(p.Job) == normalized {
			return &f.padLocations[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) PadLocationsLike(_ context.Context, normalized, loose string, limit int) ([]models.PadLocation, error) {
	f.called("PadLocationsLike")
	if f.err != nil {
		return nil, f.err
	}
	var out []models.PadLocation
	for _, p := range f.padLocations {
		if f.deleted[p.ID] || len(out) >= limit {
			continue
		}
		label := NormalizeJob(p.Job)
		if strings.Contains(label, normalized) || strings.Contains(label, loose) ||
			strings.Contains(normalized, label) || strings.Contains(loose, label) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDirectory) FindJoin(_ context.Context, pullPointID, padLocationID int64, softDelete bool) (*models.Join, error) {
	f.called("FindJoin")
	if f.err != nil {
		return nil, f.err
	}
	for i, j := range f.joins {
		if softDelete && f.deletedJoins[j.ID] {
			continue
		}
		if j.PullPointID == pullPointID && j.PadLocationID == padLocationID {
			return &f.joins[i], nil
		}
	}
	return nil, nil
}

// soundex is the classic American soundex, as PostgreSQL fuzzystrmatch computes it.
func soundex(s string) string {
	codes := map[rune]byte{
		'B': '1', 'F': '1', 'P': '1', 'V': '1',
		'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
		'D': '3', 'T': '3',
		'L': '4',
		'M': '5', 'N': '5',
		'R': '6',
	}

	var out []byte
	var last byte
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if r < 'A' || r > 'Z' {
			continue
		}
		c := codes[r]
		if len(out) == 0 {
			out = append(out, byte(r))
			last = c
			continue
		}
		if c != 0 && c != last {
			out = append(out, c)
		}
		if r != 'H' && r != 'W' {
			last = c
		}
		if len(out) == 4 {
			break
		}
	}
	for len(out) > 0 && len(out) < 4 {
		out = append(out, '0')
	}
	return string(out)
}

func i64(v int64) *int64 { return &v }

func str(s string) *string { return &s }
