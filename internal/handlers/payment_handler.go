package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/services"
)

// StartTopup opens a hosted checkout session and returns the URL the browser
// should be redirected to.
func StartTopup(cs *services.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			Tier    string `json:"tier" binding:"required"`
			Credits int    `json:"credits" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		session, err := cs.StartTopup(c.Request.Context(), callerId, req.Tier, req.Credits)
		if err != nil {
			c.JSON(http.StatusBadGateway, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(session, ""))
	}
}

// ConfirmTopup is hit by the success redirect; it applies the purchased
// credits in one transaction and returns the new balance.
func ConfirmTopup(cs *services.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			Credits  int    `json:"credits" binding:"required,gt=0"`
			IntentID string `json:"payment_intent_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		balance, err := cs.ConfirmTopup(c.Request.Context(), callerId, req.Credits, req.IntentID, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"balance": balance,
		})
	}
}

func GetLedger(cs *services.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		accessToken, _ := c.Cookie("access_token")

		entries, err := cs.Ledger(c.Request.Context(), callerId, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(entries, ""))
	}
}
