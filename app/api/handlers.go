package api

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feedsift/feedsift/app/storage"
	"github.com/feedsift/feedsift/app/tasks"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func NewHandler(runRepo storage.RunRepository, itemRepo storage.ItemRepository,
	digestStore *storage.DigestStore, pipeline *tasks.Pipeline,
	scheduler tasks.TaskSchedulerInterface, version string) *Handler {
	return &Handler{
		runRepo:     runRepo,
		itemRepo:    itemRepo,
		digestStore: digestStore,
		pipeline:    pipeline,
		scheduler:   scheduler,
		version:     version,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.runRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_runs":    stats.TotalRuns,
		"total_items":   stats.TotalItems,
		"last_run_at":   stats.LastRunAt,
		"last_run_tier": stats.LastRunTier,
	})
}

func (h *Handler) GetDigest(c *gin.Context) {
	date := c.Param("date")
	if !dateRe.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	markdown, err := h.digestStore.Load(date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no digest for " + date})
		return
	}

	c.Header("Content-Type", "text/markdown; charset=utf-8")
	c.String(http.StatusOK, markdown)
}

func (h *Handler) TriggerRun(c *gin.Context) {
	task := tasks.NewRunPipelineTask(h.pipeline)

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue pipeline run", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not enqueue run"})
		return
	}

	slog.Info("Pipeline run triggered via API", "task_id", task.GetID())

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "enqueued",
		"task_id": task.GetID(),
	})
}

func (h *Handler) ListItems(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	items, err := h.itemRepo.GetRecentItems(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.runRepo.GetRecentRuns(20)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}
