package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
	"github.com/wanderly/wanderly-server/internal/services"
)

// CheckAvailability is the capacity gate the client calls before opening the
// date-selection dialog.
func CheckAvailability(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))
		parsedId, err := uuid.Parse(packageId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		pkg, err := bs.CheckAvailability(c.Request.Context(), parsedId)
		if err != nil {
			writeBookingError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(pkg, ""))
	}
}

// CreateBooking handles both traveler reservations and guide applications;
// the kind field selects the workflow variant.
func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			PackageID string      `json:"package_id" binding:"required"`
			Kind      string      `json:"kind"`
			Dates     []time.Time `json:"dates" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		packageId, err := uuid.Parse(req.PackageID)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		kind := models.BookingKind(req.Kind)
		if kind == "" {
			kind = models.KindReservation
		}
		if kind != models.KindReservation && kind != models.KindGuideApplication {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("unknown booking kind"))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		booking, err := bs.Book(c.Request.Context(), services.BookingRequest{
			UserID:      callerId,
			PackageID:   packageId,
			Kind:        kind,
			Dates:       req.Dates,
			AccessToken: accessToken,
		})
		if err != nil {
			writeBookingError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(booking, "Booking confirmed"))
	}
}

func ListMyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		accessToken, _ := c.Cookie("access_token")

		bookings, err := bs.ListForUser(c.Request.Context(), callerId, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(bookings, ""))
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := helpers.StringTrim(c.Param("id"))
		parsedId, err := uuid.Parse(bookingId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid booking ID format"))
			return
		}

		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		accessToken, _ := c.Cookie("access_token")

		if err := bs.Cancel(c.Request.Context(), callerId, parsedId, accessToken); err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Booking cancelled"))
	}
}

// writeBookingError maps workflow failures onto HTTP statuses: validation
// refusals are 4xx, everything else is a 500.
func writeBookingError(c *gin.Context, err error) {
	var conflict *services.DateConflictError
	var outside *services.OutsideWindowError

	switch {
	case errors.Is(err, services.ErrPackageNotFound):
		c.JSON(http.StatusNotFound, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrFullyBooked):
		c.JSON(http.StatusConflict, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrNoDatesSelected):
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, helpers.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrRoleNotAllowed):
		c.JSON(http.StatusForbidden, helpers.ErrorResponse(err.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"success":           false,
			"error":             conflict.Error(),
			"conflicting_dates": conflict.Dates,
		})
	case errors.As(err, &outside):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"error":         outside.Error(),
			"invalid_dates": outside.Dates,
		})
	default:
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
	}
}
