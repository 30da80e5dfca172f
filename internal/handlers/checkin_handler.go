package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/services"
)

// EventCheckin is hit from the scanned link. The link carries event id,
// attendee id and the event times; the form adds the attendee's email.
func EventCheckin(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId := helpers.StringTrim(c.Query("event"))
		attendee := helpers.StringTrim(c.Query("attendee"))

		parsedEventId, err := uuid.Parse(eventId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid event ID in check-in link"))
			return
		}

		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		var start, end time.Time
		if s := c.Query("start"); s != "" {
			if start, err = time.Parse(time.RFC3339, s); err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid start time in check-in link"))
				return
			}
		}
		if e := c.Query("end"); e != "" {
			if end, err = time.Parse(time.RFC3339, e); err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid end time in check-in link"))
				return
			}
		}

		result, err := cs.CheckIn(c.Request.Context(), services.CheckinRequest{
			Email:      req.Email,
			AttendeeID: attendee,
			EventID:    parsedEventId,
			EventStart: start,
			EventEnd:   end,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAttendeeMismatch):
				c.JSON(http.StatusNotFound, helpers.ErrorResponse("no matching attendee found"))
			case errors.Is(err, services.ErrNoBookingFound):
				c.JSON(http.StatusNotFound, helpers.ErrorResponse("no booking found for this event"))
			default:
				c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			}
			return
		}

		message := "Checked in successfully"
		if result.AlreadyChecked {
			message = "Already checked in"
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result.Attendance, message))
	}
}

// GetCheckinLink returns the scannable link for a package; only the creator
// may generate one.
func GetCheckinLink(catalog *services.CatalogService, origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))
		parsedId, err := uuid.Parse(packageId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		callerId, claims, ok := callerID(c)
		if !ok {
			return
		}

		pkg, err := catalog.GetPackage(c.Request.Context(), parsedId, uuid.Nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}
		if pkg == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("package not found"))
			return
		}

		if pkg.CreatorID != callerId && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("only the package creator can generate check-in links"))
			return
		}

		attendee := helpers.StringTrim(c.DefaultQuery("attendee", helpers.GeneralAttendee))
		link := services.BuildCheckinLink(origin, pkg, attendee)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"link":    link,
		})
	}
}
