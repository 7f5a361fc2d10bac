package controller

import (
	"context"
	"net/http"
	"strconv"

	"dpofinder/domain"
	"dpofinder/metric"

	"github.com/gin-gonic/gin"
)

// ResolverService is the lookup surface the handlers need.
type ResolverService interface {
	ResolveAddress(ctx context.Context, raw string) domain.Resolution
	ValidatePIN(ctx context.Context, raw string) domain.Resolution
	Suggest(ctx context.Context, raw string, limit int) []domain.Suggestion
	OfficesByPIN(pin string) []*domain.PostalOffice
}

// FeedbackSink accepts user correction reports.
type FeedbackSink interface {
	Submit(report domain.Feedback)
}

var (
	resolverService ResolverService
	feedbackSink    FeedbackSink
)

func SetupRouter(resolver ResolverService, feedback FeedbackSink) *gin.Engine {
	resolverService = resolver
	feedbackSink = feedback

	r := gin.New()
	r.Use(gin.ErrorLogger())
	r.Use(gin.Recovery())
	r.Use(requestMetrics())

	r.GET("/resolve", ResolveAddress)
	r.GET("/validate", ValidateAddress)
	r.GET("/suggest", SuggestOffices)
	r.GET("/offices/:pin", OfficesByPIN)

	r.POST("/share", CreateShare)
	r.GET("/share/:id", GetShare)
	r.POST("/feedback", SubmitFeedback)
	r.GET("/feedback", RecentFeedback)

	r.GET("/healthz", Healthz)
	r.GET("/metrics", gin.WrapH(metric.GetInstance().HTTPHandler()))

	return r
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestMetrics counts requests per route and status code. The route
// template is used instead of the raw path so /offices/:pin stays one
// label value.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metric.GetInstance().RecordRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
