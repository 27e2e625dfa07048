package booking

import (
	"context"
	"log/slog"
	"time"

	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainturf "turfmania/internal/domain/turf"
)

const (
	monthlyEarningsKey      = "booking.earnings_monthly"
	currentMonthEarningsKey = "booking.earnings_current_month"
)

// MonthlyEarningsQuery returns a zero-filled twelve month series for one
// earnings component of a turf.
type MonthlyEarningsQuery struct {
	TurfID         string
	OrganizationID string
	Year           int
	Component      domainbooking.EarningsComponent
}

func (q MonthlyEarningsQuery) Key() string { return monthlyEarningsKey }

// CurrentMonthEarningsQuery returns the running total for the current month.
type CurrentMonthEarningsQuery struct {
	TurfID         string
	OrganizationID string
	Component      domainbooking.EarningsComponent
	Now            time.Time
}

func (q CurrentMonthEarningsQuery) Key() string { return currentMonthEarningsKey }

// EarningsHandler serves dashboard aggregations. Aggregation failures degrade
// to a zero series instead of failing the request; the numbers are display
// only and never feed back into payment state.
type EarningsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *EarningsHandler) HandleMonthly(ctx context.Context, q MonthlyEarningsQuery) (*dto.MonthlyEarnings, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	turf, err := h.authorizedTurf(ctx, unit, q.TurfID, q.OrganizationID)
	if err != nil {
		return nil, err
	}
	component := normalizeComponent(q.Component)

	sums, err := unit.Bookings().MonthlyEarnings(ctx, turf.ID, q.Year, component)
	if err != nil {
		h.logger().WarnContext(ctx, "earnings aggregation failed, serving zero series",
			slog.String("turf_id", q.TurfID),
			slog.Int("year", q.Year),
			slog.Any("error", err))
		sums = nil
	}

	months := make([]dto.MonthEarning, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, dto.MonthEarning{Month: int(m), Amount: sums[m]})
	}
	return &dto.MonthlyEarnings{
		TurfID:    q.TurfID,
		Year:      q.Year,
		Component: string(component),
		Currency:  turf.BasePrice.Currency,
		Months:    months,
	}, nil
}

func (h *EarningsHandler) HandleCurrentMonth(ctx context.Context, q CurrentMonthEarningsQuery) (*dto.CurrentMonthEarnings, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	turf, err := h.authorizedTurf(ctx, unit, q.TurfID, q.OrganizationID)
	if err != nil {
		return nil, err
	}
	component := normalizeComponent(q.Component)

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	var amount int64
	sums, err := unit.Bookings().MonthlyEarnings(ctx, turf.ID, now.Year(), component)
	if err != nil {
		h.logger().WarnContext(ctx, "earnings aggregation failed, serving zero amount",
			slog.String("turf_id", q.TurfID),
			slog.Any("error", err))
	} else {
		amount = sums[now.Month()]
	}

	return &dto.CurrentMonthEarnings{
		TurfID:    q.TurfID,
		Year:      now.Year(),
		Month:     int(now.Month()),
		Component: string(component),
		Currency:  turf.BasePrice.Currency,
		Amount:    amount,
	}, nil
}

func (h *EarningsHandler) authorizedTurf(ctx context.Context, unit uow.UnitOfWork, turfID, organizationID string) (*domainturf.Turf, error) {
	turf, err := unit.Turfs().ByID(ctx, domainturf.TurfID(turfID))
	if err != nil {
		return nil, err
	}
	if turf.OrganizationID != organizationID {
		return nil, domainbooking.ErrNotAuthorized
	}
	return turf, nil
}

func (h *EarningsHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func normalizeComponent(c domainbooking.EarningsComponent) domainbooking.EarningsComponent {
	switch c {
	case domainbooking.ComponentAdvance, domainbooking.ComponentFinal, domainbooking.ComponentTotal:
		return c
	default:
		return domainbooking.ComponentTotal
	}
}

// MonthlyEarningsHandler and CurrentMonthEarningsHandler adapt the shared
// handler to the query bus.
type MonthlyEarningsHandler struct{ *EarningsHandler }

func (h MonthlyEarningsHandler) Handle(ctx context.Context, q MonthlyEarningsQuery) (*dto.MonthlyEarnings, error) {
	return h.HandleMonthly(ctx, q)
}

type CurrentMonthEarningsHandler struct{ *EarningsHandler }

func (h CurrentMonthEarningsHandler) Handle(ctx context.Context, q CurrentMonthEarningsQuery) (*dto.CurrentMonthEarnings, error) {
	return h.HandleCurrentMonth(ctx, q)
}

var (
	_ queries.Handler[MonthlyEarningsQuery, *dto.MonthlyEarnings]           = MonthlyEarningsHandler{}
	_ queries.Handler[CurrentMonthEarningsQuery, *dto.CurrentMonthEarnings] = CurrentMonthEarningsHandler{}
)
