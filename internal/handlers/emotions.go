package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"emocare/api/internal/models"
	"emocare/api/internal/service"
)

type createEmotionRequest struct {
	Type       string     `json:"type" binding:"required"`
	Confidence float64    `json:"confidence" binding:"min=0,max=1"`
	RecordedAt *time.Time `json:"recordedAt"`
}

func (h HandlerSet) CreateEmotion(c *gin.Context) {
	var req createEmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emotion, err := h.emotionService.Create(c.Request.Context(), service.CreateEmotionInput{
		PatientID:  currentUser(c).ID,
		Type:       models.EmotionType(req.Type),
		Confidence: req.Confidence,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEmotionResponse(emotion))
}

// DetectEmotion accepts a multipart image upload, runs it through the
// external classifier and records the resulting emotion for the caller.
func (h HandlerSet) DetectEmotion(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	emotion, err := h.emotionService.CreateFromImage(c.Request.Context(), currentUser(c).ID, data, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEmotionResponse(emotion))
}

func (h HandlerSet) GetEmotion(c *gin.Context) {
	emotion, err := h.emotionService.GetByID(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmotionResponse(emotion))
}

func (h HandlerSet) PatientEmotionHistory(c *gin.Context) {
	emotions, err := h.emotionService.History(c.Request.Context(), c.Param("patientId"), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]emotionResponse, 0, len(emotions))
	for _, emotion := range emotions {
		out = append(out, toEmotionResponse(emotion))
	}
	c.JSON(http.StatusOK, gin.H{"emotions": out})
}

func (h HandlerSet) PatientStatistics(c *gin.Context) {
	stats, err := h.statsService.PatientStatistics(c.Request.Context(), c.Param("patientId"), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
