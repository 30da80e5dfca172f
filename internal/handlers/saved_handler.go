package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/services"
)

func SavePackage(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))

		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		saved, err := s.SavePackage(c.Request.Context(), callerId, packageId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

func UnsavePackage(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageId := helpers.StringTrim(c.Param("id"))

		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		if err := s.UnsavePackage(c.Request.Context(), callerId, packageId); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "package removed from saved list"})
	}
}

func GetSavedPackages(s *services.SavedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		saved, err := s.GetSaved(c.Request.Context(), callerId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}
