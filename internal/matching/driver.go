package matching

import (
	"context"
	"fmt"
	"strings"

)

type DriverStatus string

const (
	DriverConfirmed DriverStatus = "CONFIRMED"
	DriverConflict  DriverStatus = "CONFLICT"
	DriverNameOnly  DriverStatus = "NAME_ONLY"
	DriverTruckOnly DriverStatus = "TRUCK_ONLY"
	DriverNone      DriverStatus = "NONE"
)

const MethodTruck = "TRUCK"

// ResolvedDriver is a driver found by one lookup path.
type ResolvedDriver struct {
	Method    string `json:"method"`
	DriverID  int64  `json:"id_driver"`
	ContactID int64  `json:"id_contact"`
	VehicleID *int64 `json:"id_vehicle"`
}

// DriverMatch reconciles the name and truck paths. Resolved is what a commit would use.
type DriverMatch struct {
	Status   DriverStatus    `json:"status"`
	Resolved *ResolvedDriver `json:"resolved"`
	ByName   *ResolvedDriver `json:"by_name"`
	ByTruck  *ResolvedDriver `json:"by_truck"`
	Notes    string          `json:"notes"`
}

type DriverResolver struct {
	names NameMatcher
	dir   DriverDirectory
}

func NewDriverResolver(names NameMatcher, dir DriverDirectory) *DriverResolver {
	return &DriverResolver{names: names, dir: dir}
}

// Resolve looks the driver up by name (name -> contact -> driver) and by truck
// (truck -> vehicle -> driver) and reconciles the two answers.
func (r *DriverResolver) Resolve(ctx context.Context, driverName, truckNumber *string) (DriverMatch, error) {
	var notes []string

	byName, nameNotes, err := r.byName(ctx, driverName)
	if err != nil {
		return DriverMatch{}, err
	}
	notes = append(notes, nameNotes...)

	byTruck, truckNote, err := r.byTruck(ctx, truckNumber)
	if err != nil {
		return DriverMatch{}, err
	}
	notes = append(notes, truckNote)

	m := DriverMatch{Status: DriverNone, ByName: byName, ByTruck: byTruck}
	switch {
	case byName != nil && byTruck != nil && byName.DriverID == byTruck.DriverID:
		resolved := *byName
		resolved.Method = byName.Method + "+" + MethodTruck
		m.Status, m.Resolved = DriverConfirmed, &resolved
	case byName != nil && byTruck != nil:
		m.Status, m.Resolved = DriverConflict, byName
		notes = append(notes, fmt.Sprintf("Conflict: name matched driver %d but truck matched driver %d.", byName.DriverID, byTruck.DriverID))
	case byName != nil:
		m.Status, m.Resolved = DriverNameOnly, byName
	case byTruck != nil:
		m.Status, m.Resolved = DriverTruckOnly, byTruck
	}

	m.Notes = joinNotes(notes)
	return m, nil
}

func (r *DriverResolver) byName(ctx context.Context, driverName *string) (*ResolvedDriver, []string, error) {
	if driverName == nil || strings.TrimSpace(*driverName) == "" {
		return nil, nil, nil
	}

	res, err := r.names.MatchName(ctx, *driverName)
	if err != nil {
		return nil, nil, err
	}
	notes := []string{res.Note}
	if res.Contact == nil {
		return nil, notes, nil
	}

	d, err := r.dir.DriverByContact(ctx, res.Contact.ID)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		notes = append(notes, fmt.Sprintf("Contact matched by name but no driver row found for id_contact=%d.", res.Contact.ID))
		return nil, notes, nil
	}

	return &ResolvedDriver{
		Method:    res.Method,
		DriverID:  d.ID,
		ContactID: d.ContactID,
		VehicleID: d.VehicleID,
	}, notes, nil
}

func (r *DriverResolver) byTruck(ctx context.Context, truckNumber *string) (*ResolvedDriver, string, error) {
	if truckNumber == nil {
		return nil, "", nil
	}
	truck := NormalizeTruck(*truckNumber)
	if truck == "" {
		return nil, "", nil
	}

	v, err := r.dir.VehicleByTruck(ctx, truck)
	if err != nil || v == nil {
		return nil, "", err
	}

	d, err := r.dir.DriverByVehicle(ctx, v.ID)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, fmt.Sprintf("Vehicle matched by truck but no driver row found for id_vehicle=%d.", v.ID), nil
	}

	vehicleID := v.ID
	return &ResolvedDriver{
		Method:    MethodTruck,
		DriverID:  d.ID,
		ContactID: d.ContactID,
		VehicleID: &vehicleID,
	}, "", nil
}

func joinNotes(notes []string) string {
	out := notes[:0]
	for _, n := range notes {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
