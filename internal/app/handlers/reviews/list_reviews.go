package reviews

import (
	"context"

	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
	domainturf "turfmania/internal/domain/turf"
)

const listReviewsKey = "reviews.list_by_turf"

const defaultReviewsLimit = 50

// ListReviewsQuery returns a turf's reviews, newest first.
type ListReviewsQuery struct {
	TurfID string
	Limit  int
	Offset int
}

func (q ListReviewsQuery) Key() string { return listReviewsKey }

type ListReviewsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListReviewsHandler) Handle(ctx context.Context, q ListReviewsQuery) (*dto.ReviewCollection, error) {
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

	limit := q.Limit
	if limit < 1 || limit > 200 {
		limit = defaultReviewsLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	items, err := unit.Reviews().ListByTurf(ctx, turf.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Review, 0, len(items))
	for _, r := range items {
		out = append(out, dto.MapReview(r))
	}
	return &dto.ReviewCollection{Items: out}, nil
}

var _ queries.Handler[ListReviewsQuery, *dto.ReviewCollection] = (*ListReviewsHandler)(nil)
