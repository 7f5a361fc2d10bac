package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dpofinder/db"
	"dpofinder/domain"
	"dpofinder/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type shareRequest struct {
	Address   string `json:"address" binding:"required"`
	SessionID string `json:"sessionId"`
}

// CreateShare handles POST /share: resolves the address and persists
// the result under a shareable id.
func CreateShare(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("Failed to parse share request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share request"})
		return
	}

	query := domain.Query{
		Address:    req.Address,
		Parsed:     service.ParseAddress(req.Address),
		Resolution: resolverService.ResolveAddress(c.Request.Context(), req.Address),
		Timestamp:  time.Now().Unix(),
		SessionID:  req.SessionID,
	}
	query.GenerateQueryHash()

	shareId, err := db.SaveQuery(c.Request.Context(), db.QueryEntity{Query: query})
	if err != nil {
		if errors.Is(err, db.ErrShareDbDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sharing is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save query"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shareId": shareId, "query": query})
}

// GetShare handles GET /share/:id
func GetShare(c *gin.Context) {
	shareId := c.Param("id")

	query, err := db.GetQueryById(c.Request.Context(), shareId)
	if err != nil {
		if errors.Is(err, db.ErrShareDbDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sharing is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load query"})
		return
	}
	if query == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown share id"})
		return
	}

	c.JSON(http.StatusOK, query)
}

// SubmitFeedback handles POST /feedback: a user reports that the
// suggested PIN or office was wrong.
func SubmitFeedback(c *gin.Context) {
	var report domain.Feedback
	if err := c.ShouldBindJSON(&report); err != nil {
		log.WithError(err).Warn("Failed to parse feedback")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback"})
		return
	}

	if report.Query == "" || report.ReportedPIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback needs the original query and the reported PIN"})
		return
	}
	if !pinParamPattern.MatchString(report.ReportedPIN) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed reported PIN"})
		return
	}

	feedbackSink.Submit(report)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// RecentFeedback handles GET /feedback?limit=n
func RecentFeedback(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	reports, err := db.RecentFeedback(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, db.ErrShareDbDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feedback is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(reports), "feedback": reports})
}
