package models

import "time"

// Fingerprint input method for rows created from imports.
const InputMethodImport = "IMPORT"

// Normalised delivery states that carry commit rules.
const (
	LoadStateInTransit = "IN_TRANSIT"
	LoadStateDelivered = "DELIVERED"
)

// ImportRecord is one intake row from loadimports. Optional columns are nil when the
// column is absent from the schema or empty.
type ImportRecord struct {
	ID              int64
	JobName         *string
	PayloadJSON     *string
	PayloadOriginal *string

	Carrier      *string
	Truck        *string
	Terminal     *string
	State        *string
	DeliveryTime *string
	LoadNumber   *string
	TicketNumber *string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// ParsedFields is the normalised view of an ImportRecord. It is recomputed on every read.
type ParsedFields struct {
	DriverName   *string `json:"driver_name"`
	TruckNumber  *string `json:"truck_number"`
	JobName      *string `json:"jobname"`
	Terminal     *string `json:"terminal"`
	LoadNumber   *string `json:"load_number"`
	TicketNumber *string `json:"ticket_number"`
	State        *string `json:"state"`
	DeliveryTime *string `json:"delivery_time"`

	RawCarrier  *string `json:"raw_carrier"`
	RawTruck    *string `json:"raw_truck"`
	RawOriginal *string `json:"raw_original"`
}

type Contact struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Driver struct {
	ID        int64
	ContactID int64
	VehicleID *int64
}

type Vehicle struct {
	ID     int64
	Number string
	Name   string
}

type PullPoint struct {
	ID  int64  `json:"id_pull_point"`
	Job string `json:"pp_job"`
}

type PadLocation struct {
	ID  int64  `json:"id_pad_location"`
	Job string `json:"pl_job"`
}

type Join struct {
	ID            int64
	PullPointID   int64
	PadLocationID int64
}

// NewLoad is the placeholder row written to the production "load" table.
type NewLoad struct {
	JoinID       *int64
	ContactID    int64
	VehicleID    *int64
	LoadDate     *string // MM-DD-YYYY
	DeliveryTime *time.Time
	Finished     bool
}

// NewLoadDetail carries the idempotency fingerprint (InputMethod, InputID).
type NewLoadDetail struct {
	InputMethod  string
	InputID      int64
	LoadNumber   *string
	TicketNumber *string
	TruckNumber  *string
	NetLbs       *int64
}

// ProcessedRef points at the load/load_detail pair created for an import.
type ProcessedRef struct {
	LoadID       int64
	LoadDetailID int64
}

// Optional loadimports columns.
var OptionalImportColumns = []string{
	"carrier", "truck", "terminal", "state", "delivery_time", "load_number", "ticket_number",
}

// SchemaCapabilities is resolved once at startup so the resolvers never probe the schema.
type SchemaCapabilities struct {
	// ImportColumns holds the optional loadimports columns that exist.
	ImportColumns map[string]bool

	// PullPointTable is "pull_points" when present, otherwise "pull_point".
	PullPointTable string

	// JoinTable is true when "join" has id_join, id_pull_point and id_pad_location.
	JoinTable      bool
	JoinSoftDelete bool

	// PhoneticMatch is true when soundex() is callable.
	PhoneticMatch bool
}

func (c SchemaCapabilities) HasImportColumn(name string) bool {
	return c.ImportColumns[name]
}
