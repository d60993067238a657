package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adf-relay/internal/adf"
	commonerrors "adf-relay/internal/common/errors"
	"adf-relay/internal/common/logger"
	"adf-relay/internal/common/metrics"
	"adf-relay/internal/dedupe"
	"adf-relay/internal/lead"
)

// Processor is the transform-persist-notify pipeline behind the webhook.
type Processor interface {
	Process(ctx context.Context, leads []lead.Lead, source string) error
}

type Handler struct {
	processor Processor
	seen      dedupe.Set
	log       logger.Logger
	started   time.Time
}

func NewHandler(processor Processor, seen dedupe.Set, log logger.Logger) *Handler {
	return &Handler{
		processor: processor,
		seen:      seen,
		log:       log,
		started:   time.Now(),
	}
}

// HandleWebhook ingests one raw lead record. The response contract is fixed:
// 400 for anything the payload got wrong, 200 with a duplicate marker for an
// already-seen id, 200 on success, 500 only for relay-side failures.
func (h *Handler) HandleWebhook(c *gin.Context) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.WebhookDuration.WithLabelValues(strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	}()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		status = http.StatusBadRequest
		c.JSON(status, gin.H{"error": "request body is empty or unreadable"})
		return
	}
	c.Set(payloadKey, string(body))

	if err := lead.ValidatePayload(body); err != nil {
		var stdErr *commonerrors.StandardError
		detail := "invalid payload"
		if errors.As(err, &stdErr) {
			detail = stdErr.Details
		}
		status = http.StatusBadRequest
		c.JSON(status, gin.H{"error": detail})
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		status = http.StatusBadRequest
		c.JSON(status, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	record := lead.FromMap(raw)

	logID := record.ID
	reserved := false
	if logID == "" {
		// Not deduplicable without an id; tag for logs only.
		logID = "anon-" + uuid.NewString()
	} else {
		added, err := h.seen.Add(c.Request.Context(), record.ID)
		if err != nil {
			// Dedup store trouble fails open: relaying twice beats dropping a lead.
			h.log.Error("Dedup check failed, processing anyway", map[string]interface{}{
				"lead_id": record.ID,
				"error":   err.Error(),
			})
		} else if !added {
			metrics.LeadsDuplicate.Inc()
			h.log.Info("Duplicate lead ignored", map[string]interface{}{
				"lead_id": record.ID,
			})
			c.JSON(status, gin.H{"message": "Lead already processed", "duplicate": true})
			return
		} else {
			reserved = true
		}
	}

	if err := h.processor.Process(c.Request.Context(), []lead.Lead{record}, "webhook"); err != nil {
		// Release the reservation so a retry of this lead is not refused
		// as a duplicate when nothing was relayed.
		if reserved {
			if rmErr := h.seen.Remove(c.Request.Context(), record.ID); rmErr != nil {
				h.log.Error("Failed to release dedup entry", map[string]interface{}{
					"lead_id": record.ID,
					"error":   rmErr.Error(),
				})
			}
		}

		if errors.Is(err, adf.ErrNoLeads) {
			status = http.StatusBadRequest
			c.JSON(status, gin.H{"error": "lead record carries no usable fields"})
			return
		}

		h.log.Error("Lead processing failed", map[string]interface{}{
			"lead_id": logID,
			"error":   err.Error(),
		})
		status = http.StatusInternalServerError
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}

	h.log.Info("Lead processed", map[string]interface{}{
		"lead_id": logID,
	})
	c.JSON(status, gin.H{"message": "Lead processed successfully"})
}

func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}
