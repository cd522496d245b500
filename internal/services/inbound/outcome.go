package inbound

import "fmt"

// OutcomeKind is the terminal state reached by ProcessImport.
type OutcomeKind string

const (
	OutcomeNotFound              OutcomeKind = "NOT_FOUND"
	OutcomeAlreadyProcessed      OutcomeKind = "ALREADY_PROCESSED"
	OutcomeDriverUnresolved      OutcomeKind = "DRIVER_UNRESOLVED"
	OutcomeJourneyNotReady       OutcomeKind = "JOURNEY_NOT_READY"
	OutcomeStateValidationFailed OutcomeKind = "STATE_VALIDATION_FAILED"
	OutcomeCommitted             OutcomeKind = "COMMITTED"
)

// Outcome is returned to the caller as-is; failures are values, not errors.
type Outcome struct {
	Kind OutcomeKind `json:"-"`

	OK               bool   `json:"ok"`
	AlreadyProcessed *bool  `json:"already_processed,omitempty"`
	LoadID           *int64 `json:"id_load,omitempty"`
	LoadDetailID     *int64 `json:"id_load_detail,omitempty"`
	Error            string `json:"error,omitempty"`
}

func failed(kind OutcomeKind, format string, args ...any) Outcome {
	return Outcome{Kind: kind, Error: fmt.Sprintf(format, args...)}
}

func succeeded(kind OutcomeKind, loadID, loadDetailID int64) Outcome {
	already := kind == OutcomeAlreadyProcessed
	return Outcome{
		Kind:             kind,
		OK:               true,
		AlreadyProcessed: &already,
		LoadID:           &loadID,
		LoadDetailID:     &loadDetailID,
	}
}

const (
	errImportNotFound    = "Import id=%d not found."
	errNoDriver          = "No driver resolved. Cannot process."
	errJourneyNotReady   = "Journey is not READY (%s). Cannot process."
	errInTransitNoWeight = "IN_TRANSIT but no weight found in payload (expected total_weight / box_numbers / weight)."
	errDeliveredNoTime   = "DELIVERED but delivery_time is missing in import."
	errDeliveredBadTime  = "DELIVERED but delivery_time is not parseable: '%s'. Expected e.g. 02/12/2026 08:23 PM"
)
