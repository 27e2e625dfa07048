package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	reviewsapp "turfmania/internal/app/handlers/reviews"
	"turfmania/internal/app/queries"
)

type ReviewHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type submitReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

func (h ReviewHandler) Submit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}
	cmd := reviewsapp.SubmitReviewCommand{
		TurfID:     c.Param("turfId"),
		BookingID:  req.BookingID,
		AuthorID:   user.UserID,
		Rating:     req.Rating,
		Text:       req.Text,
		RequestKey: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reviewsapp.SubmitReviewCommand, *dto.Review](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result, "review submitted")
}

func (h ReviewHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	q := reviewsapp.ListReviewsQuery{
		TurfID: c.Param("turfId"),
		Limit:  limit,
		Offset: offset,
	}
	result, err := queries.Ask[reviewsapp.ListReviewsQuery, *dto.ReviewCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}
