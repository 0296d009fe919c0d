package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bazaar-tracker/internal/services"
)

// PipelineHandler exposes pipeline status and the manual trigger.
type PipelineHandler struct {
	pipeline *services.Pipeline
}

func NewPipelineHandler(pipeline *services.Pipeline) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// GetStatus returns the pipeline's run counters and timing.
func (h *PipelineHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.pipeline.Status())
}

// Run triggers one cycle outside the schedule. Nothing serializes a manual
// trigger against the ticker; callers own that risk.
func (h *PipelineHandler) Run(c *gin.Context) {
	go h.pipeline.RunCycle(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"status": "cycle started"})
}
