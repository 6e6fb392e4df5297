package service

import (
	"context"
	"time"

	"rentalspot/internal/bookings/repository"
	"rentalspot/internal/pricing"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/config"
	"rentalspot/pkg/metrics"
	"rentalspot/pkg/model"
)

const sweepBatchSize = 500

// HoldSweeper releases on-hold bookings whose holdUntil has passed. Expired
// holds already stop blocking dates at generation time; cancelling them keeps
// the bookings collection honest and triggers a regeneration of their nights.
type HoldSweeper struct {
	repo     repository.BookingRepository
	notifier regeneration.ChangeNotifier
	cfg      *config.Config
	now      func() time.Time
}

func NewHoldSweeper(repo repository.BookingRepository, notifier regeneration.ChangeNotifier, cfg *config.Config) *HoldSweeper {
	return &HoldSweeper{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Sweep expires every hold past its deadline and returns how many it released.
// A failure on one hold is logged and does not stop the others.
func (s *HoldSweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now().UTC()
	released := 0

	for {
		holds, err := s.repo.FindExpiredHolds(ctx, now, sweepBatchSize)
		if err != nil {
			s.cfg.Log.Error("Failed to list expired holds", "error", err)
			return released, err
		}

		progressed := false
		for _, hold := range holds {
			changed, err := s.repo.ExpireHold(ctx, hold.ID, now)
			if err != nil {
				s.cfg.Log.Error("Failed to expire hold", "booking_id", hold.ID, "property_id", hold.PropertyID, "error", err)
				continue
			}
			if !changed {
				continue
			}
			progressed = true
			released++
			metrics.HoldsExpired.Inc()

			s.cfg.Log.Info("Expired hold released",
				"booking_id", hold.ID,
				"property_id", hold.PropertyID,
				"check_in", hold.CheckInDate,
				"check_out", hold.CheckOutDate,
			)
			s.announce(ctx, hold)
		}

		if len(holds) < sweepBatchSize || !progressed {
			break
		}
	}

	if released > 0 {
		s.cfg.Log.Info("Hold sweep completed", "released", released)
	}
	return released, nil
}

func (s *HoldSweeper) announce(ctx context.Context, hold model.Booking) {
	event := model.PricingInputChanged{
		PropertyID: hold.PropertyID,
		Source:     model.ChangeSourceBooking,
		OccurredAt: s.now().UTC(),
	}
	if checkIn, err := pricing.ParseDate(hold.CheckInDate); err == nil {
		event.StartDate = pricing.DateKey(checkIn)
	}
	if checkOut, err := pricing.ParseDate(hold.CheckOutDate); err == nil {
		event.EndDate = pricing.DateKey(checkOut.AddDate(0, 0, -1))
	}

	if err := s.notifier.Notify(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to announce released hold", "booking_id", hold.ID, "property_id", hold.PropertyID, "error", err)
	}
}
