package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createTagRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	Tag       string `json:"tag" binding:"required"`
}

func (h HandlerSet) CreateTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req.PatientID, currentUser(c).ID, req.Tag)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTagResponse(tag))
}

func (h HandlerSet) TagsByPatient(c *gin.Context) {
	tags, err := h.tagService.ListByPatient(c.Request.Context(), c.Param("patientId"), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": toTagResponses(tags)})
}

func (h HandlerSet) TagsByPatientAndDoctor(c *gin.Context) {
	tags, err := h.tagService.ListByPatientAndDoctor(c.Request.Context(), c.Param("patientId"), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": toTagResponses(tags)})
}

func (h HandlerSet) DeleteTag(c *gin.Context) {
	if err := h.tagService.RemoveByID(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h HandlerSet) DeleteTagByName(c *gin.Context) {
	err := h.tagService.RemoveByName(c.Request.Context(), c.Param("patientId"), currentUser(c).ID, c.Param("tag"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
