package regeneration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalspot/internal/pricing"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/kafka"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/middleware"
	"rentalspot/pkg/model"
)

type fakeRegenerator struct {
	window []pricing.YearMonth
	calls  map[string][]pricing.YearMonth
	err    error
}

func newFakeRegenerator() *fakeRegenerator {
	return &fakeRegenerator{
		window: pricing.Window(pricing.YearMonth{Year: 2025, Month: time.July}, 12),
		calls:  map[string][]pricing.YearMonth{},
	}
}

func (f *fakeRegenerator) RegenerateMonths(ctx context.Context, propertyID string, months []pricing.YearMonth) ([]*model.PriceCalendar, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls[propertyID] = months
	return nil, nil
}

func (f *fakeRegenerator) Window() []pricing.YearMonth {
	return f.window
}

type fakePublisher struct {
	messages []kafka.Message
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func ym(year int, month time.Month) pricing.YearMonth {
	return pricing.YearMonth{Year: year, Month: month}
}

func TestAffectedMonths(t *testing.T) {
	window := pricing.Window(ym(2025, time.July), 12)

	tests := []struct {
		name  string
		event model.PricingInputChanged
		want  []pricing.YearMonth
	}{
		{
			name:  "no range means whole window",
			event: model.PricingInputChanged{PropertyID: "p"},
			want:  window,
		},
		{
			name:  "range inside window",
			event: model.PricingInputChanged{StartDate: "2025-08-30", EndDate: "2025-09-02"},
			want:  []pricing.YearMonth{ym(2025, time.August), ym(2025, time.September)},
		},
		{
			name:  "range clipped to window",
			event: model.PricingInputChanged{StartDate: "2025-05-01", EndDate: "2025-07-03"},
			want:  []pricing.YearMonth{ym(2025, time.July)},
		},
		{
			name:  "open ended range",
			event: model.PricingInputChanged{StartDate: "2026-05-15"},
			want:  []pricing.YearMonth{ym(2026, time.May), ym(2026, time.June)},
		},
		{
			name:  "range entirely in the past",
			event: model.PricingInputChanged{StartDate: "2024-01-01", EndDate: "2024-02-01"},
			want:  nil,
		},
		{
			name:  "reversed range",
			event: model.PricingInputChanged{StartDate: "2025-10-02", EndDate: "2025-09-28"},
			want:  []pricing.YearMonth{ym(2025, time.September), ym(2025, time.October)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AffectedMonths(tt.event, window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := AffectedMonths(model.PricingInputChanged{StartDate: "soon"}, window)
	assert.Error(t, err)
}

func TestKafkaNotifier_Publish(t *testing.T) {
	pub := &fakePublisher{}
	notifier := NewKafkaNotifier(pub, testConfig())
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")

	event := model.PricingInputChanged{PropertyID: "beach-house", Source: model.ChangeSourceSeasonalPricing, StartDate: "2025-08-01", EndDate: "2025-08-31"}
	require.NoError(t, notifier.Notify(ctx, event))

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, "beach-house", msg.Key)
	assert.Equal(t, EventTypePricingInputChanged, msg.GetEventType())
	assert.Equal(t, "req-1", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	var decoded model.PricingInputChanged
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.StartDate, decoded.StartDate)
	assert.Equal(t, event.Source, decoded.Source)
}

func TestKafkaNotifier_Errors(t *testing.T) {
	pub := &fakePublisher{err: kafka.ErrProducerClosed}
	notifier := NewKafkaNotifier(pub, testConfig())

	assert.ErrorIs(t, notifier.Notify(context.Background(), model.PricingInputChanged{PropertyID: "p"}), kafka.ErrProducerClosed)
	assert.Error(t, notifier.Notify(context.Background(), model.PricingInputChanged{}))
}

func TestInlineNotifier(t *testing.T) {
	regen := newFakeRegenerator()
	notifier := NewInlineNotifier(regen, testConfig())

	require.NoError(t, notifier.Notify(context.Background(), model.PricingInputChanged{PropertyID: "p", StartDate: "2025-12-24", EndDate: "2025-12-26"}))
	assert.Equal(t, []pricing.YearMonth{ym(2025, time.December)}, regen.calls["p"])

	require.NoError(t, notifier.Notify(context.Background(), model.PricingInputChanged{PropertyID: "old", StartDate: "2020-01-01", EndDate: "2020-01-02"}))
	assert.NotContains(t, regen.calls, "old")
}

func eventMessage(t *testing.T, event any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey("beach-house").
		WithValue(event).
		WithEventType(EventTypePricingInputChanged).
		Build()
	require.NoError(t, err)
	return msg
}

func TestEventHandler_Regenerates(t *testing.T) {
	regen := newFakeRegenerator()
	handler := NewEventHandler(regen, testConfig())

	err := handler.Handle(context.Background(), eventMessage(t, model.PricingInputChanged{
		PropertyID: "beach-house", Source: model.ChangeSourceDateOverride,
		StartDate: "2025-11-05", EndDate: "2025-11-05",
	}))

	require.NoError(t, err)
	assert.Equal(t, []pricing.YearMonth{ym(2025, time.November)}, regen.calls["beach-house"])
}

func TestEventHandler_KeyFillsMissingPropertyID(t *testing.T) {
	regen := newFakeRegenerator()
	handler := NewEventHandler(regen, testConfig())

	require.NoError(t, handler.Handle(context.Background(), eventMessage(t, model.PricingInputChanged{Source: model.ChangeSourceProperty})))
	assert.Len(t, regen.calls["beach-house"], 12)
}

func TestEventHandler_ErrorClassification(t *testing.T) {
	t.Run("undecodable payload is permanent", func(t *testing.T) {
		handler := NewEventHandler(newFakeRegenerator(), testConfig())
		msg := kafka.Message{Key: "p", Value: []byte("{not json")}

		err := handler.Handle(context.Background(), msg)
		assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
	})

	t.Run("bad range is permanent", func(t *testing.T) {
		handler := NewEventHandler(newFakeRegenerator(), testConfig())

		err := handler.Handle(context.Background(), eventMessage(t, model.PricingInputChanged{PropertyID: "p", StartDate: "tomorrow"}))
		assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
	})

	t.Run("store failure is transient", func(t *testing.T) {
		regen := newFakeRegenerator()
		regen.err = apperrors.Internal("Failed to store price calendars", errors.New("connection reset"))
		handler := NewEventHandler(regen, testConfig())

		err := handler.Handle(context.Background(), eventMessage(t, model.PricingInputChanged{PropertyID: "p"}))
		assert.Equal(t, kafka.ErrorTypeTransient, kafka.ClassifyError(err))
		assert.True(t, kafka.ShouldRetry(err, 0, 3))
	})

	t.Run("unknown property is dropped", func(t *testing.T) {
		regen := newFakeRegenerator()
		regen.err = apperrors.NotFoundWithID("Property", "p")
		handler := NewEventHandler(regen, testConfig())

		assert.NoError(t, handler.Handle(context.Background(), eventMessage(t, model.PricingInputChanged{PropertyID: "p"})))
	})

	t.Run("foreign event type is skipped", func(t *testing.T) {
		regen := newFakeRegenerator()
		handler := NewEventHandler(regen, testConfig())
		msg := eventMessage(t, model.PricingInputChanged{PropertyID: "p"})
		msg.Headers[kafka.HeaderEventType] = "booking.created"

		assert.NoError(t, handler.Handle(context.Background(), msg))
		assert.Empty(t, regen.calls)
	})
}

func TestScheduler_Add(t *testing.T) {
	s := NewScheduler(logger.Discard())
	defer s.Stop()

	assert.NoError(t, s.Add("regenerate", "0 0 3 * * *", func(ctx context.Context) error { return nil }))
	assert.NoError(t, s.Add("sweep", "@every 1m", func(ctx context.Context) error { return nil }))
	assert.Error(t, s.Add("broken", "every day", func(ctx context.Context) error { return nil }))
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler(logger.Discard())
	ran := make(chan struct{}, 1)

	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("logged, not fatal")
	}))
	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
