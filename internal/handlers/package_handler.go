package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
	"github.com/wanderly/wanderly-server/internal/services"
)

func CreatePackage(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, claims, ok := callerID(c)
		if !ok {
			return
		}

		if !claims.CanCreatePackages() {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("only agents, venues and guides can create packages"))
			return
		}

		var pkg models.EventPackage
		if err := c.ShouldBindJSON(&pkg); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		accessToken, _ := c.Cookie("access_token")

		created, err := cs.CreatePackage(c.Request.Context(), &pkg, callerId, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Package created successfully"))
	}
}

// SearchPackages filters the catalog by free-text term, category tab and an
// optional date window, all passed as query parameters.
func SearchPackages(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.CatalogFilter{
			Term:     strings.TrimSpace(c.Query("term")),
			Category: strings.TrimSpace(c.Query("category")),
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse(time.RFC3339, fromStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid 'from' date, expected RFC3339"))
				return
			}
			filter.From = &from
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse(time.RFC3339, toStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid 'to' date, expected RFC3339"))
				return
			}
			filter.To = &to
		}

		pkgs, err := cs.Search(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(pkgs, ""))
	}
}

func GetPackage(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))
		if packageId == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("package ID is required"))
			return
		}

		parsedId, err := uuid.Parse(packageId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		// Viewer identity is optional here; detail pages are public
		viewerId := uuid.Nil
		if userClaims, exists := c.Get("user"); exists {
			if claims, ok := userClaims.(*helpers.EnhancedClaims); ok {
				if parsed, err := uuid.Parse(claims.UserID); err == nil {
					viewerId = parsed
				}
			}
		}

		pkg, err := cs.GetPackage(c.Request.Context(), parsedId, viewerId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}
		if pkg == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("package not found"))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(pkg, ""))
	}
}

func ListPackagesByCreator(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorId := helpers.StringTrim(c.Param("creator_id"))
		parsedId, err := uuid.Parse(creatorId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid creator ID format"))
			return
		}

		pkgs, err := cs.ListByCreator(c.Request.Context(), parsedId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(pkgs, ""))
	}
}

func DeletePackage(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))
		parsedId, err := uuid.Parse(packageId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		accessToken, _ := c.Cookie("access_token")

		if err := cs.DeletePackage(c.Request.Context(), callerId, parsedId, accessToken); err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Package deleted successfully"))
	}
}

func GetPackageVisitorStats(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))
		parsedId, err := uuid.Parse(packageId)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid package ID format"))
			return
		}

		stats, err := cs.GetVisitorStats(c.Request.Context(), parsedId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}
