package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/risk"
)

const defaultRequestTimeout = 30 * time.Second

// RiskService computes the composite report for a request.
type RiskService interface {
	ComputeRisk(ctx context.Context, req risk.Request) (risk.CompositeReport, error)
}

// RatingsClient resolves one competitor's directory rating.
type RatingsClient interface {
	FetchRatings(ctx context.Context, name, location string) (*risk.CompetitorRating, error)
}

// AlertsClient fetches the county weather-alert summary.
type AlertsClient interface {
	FetchAlertSummary(ctx context.Context, state, county string) (*risk.AlertSummary, error)
}

// Handlers exposes the risk API over HTTP. Collaborator fetch failures
// degrade their dimensions instead of failing the request.
type Handlers struct {
	aggregator RiskService
	ratings    RatingsClient
	alerts     AlertsClient
	logger     *zap.Logger
	sfGroup    singleflight.Group
	timeout    time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(aggregator RiskService, ratings RatingsClient, alerts AlertsClient, logger *zap.Logger, timeout time.Duration) *Handlers {
	if aggregator == nil {
		panic("nil RiskService provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Handlers{
		aggregator: aggregator,
		ratings:    ratings,
		alerts:     alerts,
		logger:     logger.Named("http-handler"),
		timeout:    timeout,
	}
}

// Register wires the routes onto the engine.
func (h *Handlers) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/v1/risk", h.GetRisk)
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type riskQuery struct {
	Zip         string   `form:"zip" binding:"required"`
	State       string   `form:"state" binding:"required"`
	County      string   `form:"county"`
	City        string   `form:"city"`
	Lat         *float64 `form:"lat"`
	Lon         *float64 `form:"lon"`
	Competitors []string `form:"competitor"`
}

// GetRisk computes the composite risk report for a resolved location.
// Identical concurrent requests share one computation via singleflight.
func (h *Handlers) GetRisk(c *gin.Context) {
	var q riskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zip, err := census.NormalizeZip(q.Zip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zip code"})
		return
	}

	key := fmt.Sprintf("risk:%s:%s:%s:%s:%s:%s", zip, q.State, q.County, q.City,
		formatCoord(q.Lat)+"/"+formatCoord(q.Lon), strings.Join(q.Competitors, ","))
	v, err, shared := h.sfGroup.Do(key, func() (any, error) {
		// Detached from the leader's request context so a follower is not
		// failed by the leader's cancellation; the timeout still applies.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.timeout)
		defer cancel()
		return h.computeReport(ctx, zip, q)
	})
	if err != nil {
		h.logger.Error("risk computation failed", zap.String("zip", zip), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "risk computation failed"})
		return
	}
	if shared {
		h.logger.Debug("singleflight shared report", zap.String("key", key))
	}

	c.JSON(http.StatusOK, v)
}

func formatCoord(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

func (h *Handlers) computeReport(ctx context.Context, zip string, q riskQuery) (risk.CompositeReport, error) {
	location := risk.Location{
		City:      q.City,
		County:    q.County,
		State:     q.State,
		ZipCode:   zip,
		Latitude:  q.Lat,
		Longitude: q.Lon,
	}

	var alerts *risk.AlertSummary
	if h.alerts != nil && q.County != "" {
		summary, err := h.alerts.FetchAlertSummary(ctx, q.State, q.County)
		if err != nil {
			h.logger.Warn("alert fetch failed", zap.String("county", q.County), zap.Error(err))
		} else {
			alerts = summary
		}
	}

	ratings := h.fetchCompetitorRatings(ctx, q)

	return h.aggregator.ComputeRisk(ctx, risk.Request{
		Location:          location,
		NumCompetitors:    len(q.Competitors),
		CompetitorRatings: ratings,
		Alerts:            alerts,
	})
}

func (h *Handlers) fetchCompetitorRatings(ctx context.Context, q riskQuery) []risk.CompetitorRating {
	if h.ratings == nil {
		return nil
	}
	region := q.City + ", " + q.State

	var out []risk.CompetitorRating
	for _, name := range q.Competitors {
		rating, err := h.ratings.FetchRatings(ctx, name, region)
		if err != nil {
			h.logger.Warn("rating lookup failed", zap.String("competitor", name), zap.Error(err))
			continue
		}
		if rating == nil {
			continue
		}
		out = append(out, *rating)
	}
	return out
}
