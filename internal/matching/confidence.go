package matching

import "strings"

// Confidence is the queue triage signal.
type Confidence string

const (
	ConfidenceGreen  Confidence = "GREEN"
	ConfidenceYellow Confidence = "YELLOW"
	ConfidenceRed    Confidence = "RED"
)

// ScoreDriver maps a driver status to a confidence level. It never gates a commit.
func ScoreDriver(status DriverStatus) Confidence {
	switch status {
	case DriverConfirmed:
		return ConfidenceGreen
	case DriverNameOnly, DriverTruckOnly, DriverConflict:
		return ConfidenceYellow
	}
	return ConfidenceRed
}

// ParseConfidence reads a filter value; anything but GREEN/YELLOW/RED means "no filter".
func ParseConfidence(s string) (Confidence, bool) {
	switch c := Confidence(strings.ToUpper(strings.TrimSpace(s))); c {
	case ConfidenceGreen, ConfidenceYellow, ConfidenceRed:
		return c, true
	}
	return "", false
}
