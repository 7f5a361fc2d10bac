package controller

import (
	"net/http"
	"regexp"

	"dpofinder/domain"
	"dpofinder/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var pinParamPattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

type addressQueryParameters struct {
	Address string `form:"address"`
	Limit   int    `form:"limit"`
}

// ResolveAddress handles GET /resolve?address=...
func ResolveAddress(c *gin.Context) {
	var params addressQueryParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		log.WithError(err).Warn("Failed to parse query parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if params.Address == "" {
		log.Warn("Missing address parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing address parameter"})
		return
	}

	resolution := resolverService.ResolveAddress(c.Request.Context(), params.Address)
	c.JSON(http.StatusOK, resolution)
}

// ValidateAddress handles GET /validate?address=... and surfaces PIN
// mismatches between the input and the locality prediction.
func ValidateAddress(c *gin.Context) {
	var params addressQueryParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		log.WithError(err).Warn("Failed to parse query parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if params.Address == "" {
		log.Warn("Missing address parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing address parameter"})
		return
	}

	resolution := resolverService.ValidatePIN(c.Request.Context(), params.Address)
	c.JSON(http.StatusOK, resolution)
}

// SuggestOffices handles GET /suggest?address=...&limit=n
func SuggestOffices(c *gin.Context) {
	var params addressQueryParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		log.WithError(err).Warn("Failed to parse query parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if params.Address == "" {
		log.Warn("Missing address parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing address parameter"})
		return
	}

	limit := params.Limit
	if limit <= 0 {
		limit = utils.Cfg.Server.SuggestionLimit
	}
	if limit > 50 {
		limit = 50
	}

	suggestions := resolverService.Suggest(c.Request.Context(), params.Address, limit)
	if suggestions == nil {
		// nil marshals to JSON null; clients expect an array
		suggestions = []domain.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}

// OfficesByPIN handles GET /offices/:pin
func OfficesByPIN(c *gin.Context) {
	pin := c.Param("pin")
	if !pinParamPattern.MatchString(pin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed PIN code"})
		return
	}

	offices := resolverService.OfficesByPIN(pin)
	if len(offices) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown PIN code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pincode": pin,
		"count":   len(offices),
		"offices": offices,
	})
}
