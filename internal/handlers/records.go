package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"emocare/api/internal/models"
	"emocare/api/internal/service"
)

type recordRequest struct {
	Emotion          string     `json:"emotion" binding:"required"`
	IntensityLevel   int        `json:"intensityLevel" binding:"required"`
	Notes            *string    `json:"notes"`
	Location         *string    `json:"location"`
	TriggerEvent     *string    `json:"triggerEvent"`
	PhysicalSymptoms *string    `json:"physicalSymptoms"`
	RecordedAt       *time.Time `json:"recordedAt"`
}

func (r recordRequest) toInput() service.RecordInput {
	return service.RecordInput{
		Emotion:          models.RecordEmotion(r.Emotion),
		IntensityLevel:   r.IntensityLevel,
		Notes:            r.Notes,
		Location:         r.Location,
		TriggerEvent:     r.TriggerEvent,
		PhysicalSymptoms: r.PhysicalSymptoms,
		RecordedAt:       r.RecordedAt,
	}
}

func (h HandlerSet) CreateRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.recordService.Create(c.Request.Context(), currentUser(c).ID, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecordResponse(record))
}

// ListRecords returns the caller's diary entries, optionally filtered by
// emotion type or a recordedAt date range.
func (h HandlerSet) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c).ID

	if emotion := c.Query("emotion"); emotion != "" {
		records, err := h.recordService.ListByType(ctx, userID, models.RecordEmotion(emotion))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": toRecordResponses(records)})
		return
	}

	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start timestamp"})
			return
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end timestamp"})
			return
		}

		records, err := h.recordService.ListByDateRange(ctx, userID, start, end)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": toRecordResponses(records)})
		return
	}

	records, err := h.recordService.ListByUser(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": toRecordResponses(records)})
}

func (h HandlerSet) GetRecord(c *gin.Context) {
	record, err := h.recordService.GetByID(c.Request.Context(), c.Param("id"), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecordResponse(record))
}

func (h HandlerSet) UpdateRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.recordService.Update(c.Request.Context(), c.Param("id"), currentUser(c).ID, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecordResponse(record))
}

func (h HandlerSet) DeleteRecord(c *gin.Context) {
	if err := h.recordService.Delete(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
