package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bazaar-tracker/internal/services"
	"bazaar-tracker/internal/storage"
)

// MarketHandler serves the pipeline's persisted outputs: stats, the
// opportunity export, the flip watchlist, and raw snapshots.
type MarketHandler struct {
	snapshots     *services.SnapshotService
	profit        *services.ProfitCalculator
	opportunities *services.OpportunityMatcher
	flips         *services.FlipService
}

func NewMarketHandler(snapshots *services.SnapshotService, profit *services.ProfitCalculator, opportunities *services.OpportunityMatcher, flips *services.FlipService) *MarketHandler {
	return &MarketHandler{
		snapshots:     snapshots,
		profit:        profit,
		opportunities: opportunities,
		flips:         flips,
	}
}

// GetStats returns the stats document for ?date= (default today).
func (h *MarketHandler) GetStats(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	stats, err := h.profit.ReadStats(date)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stats for " + date})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetOpportunities returns the current opportunity export.
func (h *MarketHandler) GetOpportunities(c *gin.Context) {
	export, err := h.opportunities.Current()
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no opportunity export yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, export)
}

// GetFlips returns the flip watchlist.
func (h *MarketHandler) GetFlips(c *gin.Context) {
	c.JSON(http.StatusOK, h.flips.Load())
}

// GetDailySnapshot returns the aggregated snapshot for /daily/:date.
func (h *MarketHandler) GetDailySnapshot(c *gin.Context) {
	date := c.Param("date")

	records, err := h.snapshots.ReadDaily(date)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no daily snapshot for " + date})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "records": records})
}

// GetHourlyPartitions lists the hourly partition keys currently on disk.
func (h *MarketHandler) GetHourlyPartitions(c *gin.Context) {
	hours, err := h.snapshots.HourKeys()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": hours})
}
