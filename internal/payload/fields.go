package payload

import (
	"github.com/BearBump/LoadBox/internal/models"
)

type field int

const (
	fieldJobName field = iota
	fieldTerminal
	fieldState
	fieldDeliveryTime
	fieldLoadNumber
	fieldTicketNumber
	fieldCarrier
	fieldTruck
)

type source struct {
	column func(r *models.ImportRecord) *string
	keys   []string
}

// sources lists, per field, the dedicated column and then the payload aliases in priority order.
var sources = map[field]source{
	fieldJobName:      {column: func(r *models.ImportRecord) *string { return r.JobName }, keys: []string{"jobname"}},
	fieldTerminal:     {column: func(r *models.ImportRecord) *string { return r.Terminal }, keys: []string{"terminal"}},
	fieldState:        {column: func(r *models.ImportRecord) *string { return r.State }, keys: []string{"status", "state"}},
	fieldDeliveryTime: {column: func(r *models.ImportRecord) *string { return r.DeliveryTime }, keys: []string{"delivery_time", "datetime_delivered"}},
	fieldLoadNumber:   {column: func(r *models.ImportRecord) *string { return r.LoadNumber }, keys: []string{"loadnumber", "load_number"}},
	fieldTicketNumber: {column: func(r *models.ImportRecord) *string { return r.TicketNumber }, keys: []string{"ticket_no", "ticket_number"}},
	fieldCarrier:      {column: func(r *models.ImportRecord) *string { return r.Carrier }, keys: []string{"carrier"}},
	fieldTruck:        {column: func(r *models.ImportRecord) *string { return r.Truck }, keys: []string{"truck_trailer", "truck_number", "truck"}},
}

func resolve(f field, r *models.ImportRecord, blob Blob) *string {
	src := sources[f]
	if v := trimPtr(src.column(r)); v != nil {
		return v
	}
	return blob.String(src.keys...)
}

// Parse derives ParsedFields from an import row. Missing signals stay nil; parsing never fails.
func Parse(r *models.ImportRecord) models.ParsedFields {
	blob := Decode(r.PayloadJSON)

	carrier := resolve(fieldCarrier, r, blob)
	truck := resolve(fieldTruck, r, blob)
	original := trimPtr(r.PayloadOriginal)

	// without dedicated carrier/truck text, the original free text is the evidence
	if carrier == nil && original != nil {
		carrier = original
	}
	if truck == nil && original != nil {
		truck = original
	}

	return models.ParsedFields{
		DriverName:   ExtractDriverName(carrier),
		TruckNumber:  ExtractTruckNumber(truck),
		JobName:      resolve(fieldJobName, r, blob),
		Terminal:     resolve(fieldTerminal, r, blob),
		LoadNumber:   resolve(fieldLoadNumber, r, blob),
		TicketNumber: resolve(fieldTicketNumber, r, blob),
		State:        resolve(fieldState, r, blob),
		DeliveryTime: resolve(fieldDeliveryTime, r, blob),

		RawCarrier:  carrier,
		RawTruck:    truck,
		RawOriginal: original,
	}
}
