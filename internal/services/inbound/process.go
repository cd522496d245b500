package inbound

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/BearBump/LoadBox/internal/broker/messages"
	"github.com/BearBump/LoadBox/internal/models"
	"github.com/BearBump/LoadBox/internal/payload"
	"github.com/BearBump/LoadBox/internal/storage/pgload"
	"github.com/pkg/errors"
)

// ProcessImport commits one import as a load/load_detail pair. Resolution is always redone
// here; nothing shown in the queue is trusted. The error return is reserved for storage failures.
func (s *Service) ProcessImport(ctx context.Context, importID int64) (Outcome, error) {
	log := s.log.With("import_id", importID)

	rec, err := s.repo.GetImport(ctx, importID)
	if errors.Is(err, pgload.ErrNotFound) {
		return failed(OutcomeNotFound, errImportNotFound, importID), nil
	}
	if err != nil {
		return Outcome{}, err
	}

	existing, err := s.repo.FindProcessed(ctx, importID)
	if err != nil {
		return Outcome{}, err
	}
	if existing != nil {
		return succeeded(OutcomeAlreadyProcessed, existing.LoadID, existing.LoadDetailID), nil
	}

	parsed := payload.Parse(rec)

	driver, err := s.matcher.ResolveDriver(ctx, parsed.DriverName, parsed.TruckNumber)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "resolve driver")
	}
	if driver.Resolved == nil {
		return failed(OutcomeDriverUnresolved, errNoDriver), nil
	}

	_, _, journey, err := s.matcher.ResolveLocations(ctx, parsed.Terminal, parsed.JobName)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "resolve journey")
	}
	if !journey.Ready() {
		return failed(OutcomeJourneyNotReady, errJourneyNotReady, journey.Status), nil
	}

	state := payload.NormalizeState(parsed.State)
	weights := payload.ExtractWeights(rec.PayloadJSON)
	load := models.NewLoad{
		JoinID:    journey.JoinID,
		ContactID: driver.Resolved.ContactID,
		VehicleID: driver.Resolved.VehicleID,
		LoadDate:  payload.GuessLoadDate(parsed.DeliveryTime, rec.CreatedAt),
	}

	switch state {
	case models.LoadStateInTransit:
		if weights.NetLbs == nil {
			return failed(OutcomeStateValidationFailed, errInTransitNoWeight), nil
		}
	case models.LoadStateDelivered:
		if parsed.DeliveryTime == nil || strings.TrimSpace(*parsed.DeliveryTime) == "" {
			return failed(OutcomeStateValidationFailed, errDeliveredNoTime), nil
		}
		dt, ok := payload.ParseDeliveryTime(*parsed.DeliveryTime)
		if !ok {
			return failed(OutcomeStateValidationFailed, errDeliveredBadTime, *parsed.DeliveryTime), nil
		}
		load.DeliveryTime = &dt
		load.Finished = true
	}

	detail := models.NewLoadDetail{
		InputMethod:  models.InputMethodImport,
		InputID:      importID,
		LoadNumber:   parsed.LoadNumber,
		TicketNumber: parsed.TicketNumber,
		TruckNumber:  parsed.TruckNumber,
	}
	if weights.NetLbs != nil {
		net := int64(math.Round(*weights.NetLbs))
		detail.NetLbs = &net
	}

	ref, created, err := s.repo.CommitLoad(ctx, load, detail)
	if err != nil {
		log.Error("commit load failed", "error", err)
		return Outcome{}, err
	}
	if !created {
		// параллельный коммит успел раньше
		log.Info("import committed concurrently", "id_load", ref.LoadID)
		return succeeded(OutcomeAlreadyProcessed, ref.LoadID, ref.LoadDetailID), nil
	}

	log.Info("import committed", "id_load", ref.LoadID, "id_load_detail", ref.LoadDetailID, "state", state)
	s.notifyCommitted(ctx, messages.LoadCommitted{
		ImportID:     importID,
		LoadID:       ref.LoadID,
		LoadDetailID: ref.LoadDetailID,
		State:        state,
		CommittedAt:  s.now(),
	})
	return succeeded(OutcomeCommitted, ref.LoadID, ref.LoadDetailID), nil
}

func (s *Service) notifyCommitted(ctx context.Context, msg messages.LoadCommitted) {
	if s.pub == nil || s.cfg.CommittedTopic == "" {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.pub.Publish(ctx, s.cfg.CommittedTopic, msg.Key(), b); err != nil {
		s.log.Warn("publish load committed failed", "import_id", msg.ImportID, "topic", s.cfg.CommittedTopic, "error", err)
	}
}
