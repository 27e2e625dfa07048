package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	bookingapp "turfmania/internal/app/handlers/booking"
	"turfmania/internal/app/queries"
	domainbooking "turfmania/internal/domain/booking"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	TurfID               string   `json:"turfId"`
	TimeSlotIDs          []string `json:"timeSlotIds"`
	AdvanceTransactionID string   `json:"advancePaymentTransactionId"`
}

func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}
	cmd := bookingapp.CreateBookingCommand{
		UserID:               user.UserID,
		TurfID:               req.TurfID,
		SlotIDs:              req.TimeSlotIDs,
		AdvanceTransactionID: req.AdvanceTransactionID,
		RequestKey:           c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CreateBookingCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result, "booking confirmed")
}

func (h BookingHandler) CompleteCash(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	cmd := bookingapp.CompleteCashCommand{
		BookingID:      c.Param("id"),
		OrganizationID: org.OrganizationID,
		RequestKey:     c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CompleteCashCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "booking completed")
}

type completeStripeRequest struct {
	TransactionID string `json:"transactionId"`
}

func (h BookingHandler) CompleteStripe(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req completeStripeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}
	cmd := bookingapp.CompleteStripeCommand{
		BookingID:          c.Param("id"),
		OrganizationID:     org.OrganizationID,
		FinalTransactionID: req.TransactionID,
		RequestKey:         c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CompleteStripeCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "booking completed")
}

func (h BookingHandler) Reject(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	cmd := bookingapp.RejectBookingCommand{
		BookingID:      c.Param("id"),
		OrganizationID: org.OrganizationID,
		RequestKey:     c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RejectBookingCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "booking rejected")
}

func (h BookingHandler) ListByTurf(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	filters, err := parseListFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}
	q := bookingapp.ListTurfBookingsQuery{
		TurfID:         c.Param("turfId"),
		OrganizationID: org.OrganizationID,
		Filters:        filters,
	}
	result, err := queries.Ask[bookingapp.ListTurfBookingsQuery, *dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}

func (h BookingHandler) Mine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	q := bookingapp.MyBookingsQuery{UserID: user.UserID}
	result, err := queries.Ask[bookingapp.MyBookingsQuery, []dto.Booking](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}

func (h BookingHandler) MonthlyEarnings(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, envelope{Success: false, Error: "year must be numeric"})
			return
		}
		year = parsed
	}
	q := bookingapp.MonthlyEarningsQuery{
		TurfID:         c.Param("turfId"),
		OrganizationID: org.OrganizationID,
		Year:           year,
		Component:      domainbooking.EarningsComponent(c.Query("component")),
	}
	result, err := queries.Ask[bookingapp.MonthlyEarningsQuery, *dto.MonthlyEarnings](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}

func (h BookingHandler) CurrentMonthEarnings(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	q := bookingapp.CurrentMonthEarningsQuery{
		TurfID:         c.Param("turfId"),
		OrganizationID: org.OrganizationID,
		Component:      domainbooking.EarningsComponent(c.Query("component")),
	}
	result, err := queries.Ask[bookingapp.CurrentMonthEarningsQuery, *dto.CurrentMonthEarnings](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}

func parseListFilters(c *gin.Context) (domainbooking.ListFilters, error) {
	var f domainbooking.ListFilters
	f.Status = domainbooking.Status(c.Query("status"))
	f.SortBy = c.Query("sortBy")
	f.SortOrder = c.Query("sortOrder")

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.Limit = limit
	}
	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return f, err
		}
		f.From = from
	}
	if raw := c.Query("toDate"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return f, err
		}
		// toDate is inclusive on the API.
		f.To = to.Add(24 * time.Hour)
	}
	if raw := c.Query("isPaid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return f, err
		}
		f.Paid = &paid
	}
	return f, nil
}
