package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	slotsapp "turfmania/internal/app/handlers/slots"
	"turfmania/internal/app/queries"
)

const dateLayout = "2006-01-02"

type SlotHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type generateSlotsRequest struct {
	TurfID       string `json:"turfId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SlotDuration int    `json:"slotDuration"`
}

func (h SlotHandler) Generate(c *gin.Context) {
	org, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req generateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: "startDate must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: "endDate must be YYYY-MM-DD"})
		return
	}

	cmd := slotsapp.GenerateSlotsCommand{
		TurfID:         req.TurfID,
		OrganizationID: org.OrganizationID,
		StartDate:      start,
		EndDate:        end,
		SlotDuration:   time.Duration(req.SlotDuration) * time.Minute,
		RequestKey:     c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[slotsapp.GenerateSlotsCommand, *slotsapp.GenerateSlotsResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result, "time slots generated")
}

func (h SlotHandler) Available(c *gin.Context) {
	turfID := c.Param("turfId")
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, envelope{Success: false, Error: "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	q := slotsapp.GetAvailabilityQuery{TurfID: turfID, Day: day}
	result, err := queries.Ask[slotsapp.GetAvailabilityQuery, *dto.TimeSlotCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result, "")
}
