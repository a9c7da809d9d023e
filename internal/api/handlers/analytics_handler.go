package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/engine"
	"github.com/jaego-dev/jaegoboard/internal/service"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// respond maps the empty-dataset condition to a distinct response so clients
// can tell "nothing ingested yet" from a server failure.
func respond(c *gin.Context, err error, payload any) {
	if err != nil {
		if errors.Is(err, engine.ErrNoAnchorDate) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no sales data ingested yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analytics unavailable", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dash, err := h.service.Dashboard(c.Request.Context())
	respond(c, err, dash)
}

func (h *AnalyticsHandler) GetSkus(c *gin.Context) {
	includeUnregistered, _ := strconv.ParseBool(c.DefaultQuery("include_unregistered", "false"))
	skus, err := h.service.Skus(c.Request.Context(), includeUnregistered)
	if err != nil {
		respond(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skus": skus, "total": len(skus)})
}

func (h *AnalyticsHandler) GetGroups(c *gin.Context) {
	groups, err := h.service.Groups(c.Request.Context())
	respond(c, err, groups)
}

func (h *AnalyticsHandler) GetRisks(c *gin.Context) {
	risks, err := h.service.StockOutRisks(c.Request.Context())
	respond(c, err, risks)
}

func (h *AnalyticsHandler) GetDeadStock(c *gin.Context) {
	dead, err := h.service.DeadStock(c.Request.Context())
	respond(c, err, dead)
}

func (h *AnalyticsHandler) GetAnchor(c *gin.Context) {
	anchor, err := h.service.Anchor(c.Request.Context())
	if err != nil {
		respond(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"anchor": anchor})
}

func (h *AnalyticsHandler) Recompute(c *gin.Context) {
	result, err := h.service.Recompute(c.Request.Context())
	if err != nil {
		respond(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"anchor": result.Anchor, "computed_at": result.ComputedAt, "skus": len(result.Skus)})
}

func (h *AnalyticsHandler) IngestSales(c *gin.Context) {
	var facts []domain.SalesFact
	if err := c.ShouldBindJSON(&facts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sales payload", "details": err.Error()})
		return
	}
	if err := h.service.IngestSalesFacts(c.Request.Context(), facts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest sales facts", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingested": len(facts)})
}

func (h *AnalyticsHandler) IngestSnapshots(c *gin.Context) {
	var snapshots []domain.StockSnapshot
	if err := c.ShouldBindJSON(&snapshots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot payload", "details": err.Error()})
		return
	}
	if err := h.service.IngestStockSnapshots(c.Request.Context(), snapshots); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest stock snapshots", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingested": len(snapshots)})
}

func (h *AnalyticsHandler) UpsertRegistry(c *gin.Context) {
	var entries []domain.ProductRegistryEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registry payload", "details": err.Error()})
		return
	}
	if err := h.service.UpsertRegistry(c.Request.Context(), entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upsert registry", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upserted": len(entries)})
}
