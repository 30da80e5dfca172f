package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
	"github.com/wanderly/wanderly-server/internal/services"
)

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			GuideID string `json:"guide_id" binding:"required"`
			Rating  int    `json:"rating" binding:"required,min=1,max=5"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		guideId, err := uuid.Parse(req.GuideID)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid guide ID format"))
			return
		}

		review, err := rs.CreateReview(c.Request.Context(), &models.GuideReview{
			UserID:  callerId,
			GuideID: guideId,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(review, "Review submitted"))
	}
}

func GetGuideReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideId := helpers.StringTrim(c.Param("guide_id"))
		parsedId, err := uuid.Parse(guideId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid guide ID format"))
			return
		}

		reviews, err := rs.GetReviewsByGuide(c.Request.Context(), parsedId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		ranking, err := rs.GetGuideRanking(c.Request.Context(), parsedId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"ranking": ranking,
			"reviews": reviews,
		})
	}
}
