package booking

import (
	"context"

	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainturf "turfmania/internal/domain/turf"
)

const listTurfBookingsKey = "booking.list_by_turf"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListTurfBookingsQuery pages through a turf's bookings, organization-scoped.
type ListTurfBookingsQuery struct {
	TurfID         string
	OrganizationID string
	Filters        domainbooking.ListFilters
}

func (q ListTurfBookingsQuery) Key() string { return listTurfBookingsKey }

type ListTurfBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListTurfBookingsHandler) Handle(ctx context.Context, q ListTurfBookingsQuery) (*dto.BookingCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	turf, err := unit.Turfs().ByID(ctx, domainturf.TurfID(q.TurfID))
	if err != nil {
		return nil, err
	}
	if turf.OrganizationID != q.OrganizationID {
		return nil, domainbooking.ErrNotAuthorized
	}

	filters := normalizeFilters(q.Filters)
	items, total, err := unit.Bookings().ListByTurf(ctx, turf.ID, filters)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))
	return &dto.BookingCollection{
		Items: dto.MapBookings(items),
		Meta: dto.BookingMeta{
			Total:   total,
			Page:    filters.Page,
			Pages:   pages,
			Filters: describeFilters(filters),
		},
	}, nil
}

func normalizeFilters(f domainbooking.ListFilters) domainbooking.ListFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
	return f
}

func describeFilters(f domainbooking.ListFilters) map[string]any {
	out := map[string]any{}
	if f.Status != "" {
		out["status"] = string(f.Status)
	}
	if !f.From.IsZero() {
		out["from"] = f.From
	}
	if !f.To.IsZero() {
		out["to"] = f.To
	}
	if f.Paid != nil {
		out["is_paid"] = *f.Paid
	}
	return out
}

var _ queries.Handler[ListTurfBookingsQuery, *dto.BookingCollection] = (*ListTurfBookingsHandler)(nil)
