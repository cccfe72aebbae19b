package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createNoteRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	Note      string `json:"note" binding:"required"`
}

func (h HandlerSet) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req.PatientID, currentUser(c).ID, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteResponse(note))
}

func (h HandlerSet) NotesByPatient(c *gin.Context) {
	notes, err := h.noteService.ListByPatient(c.Request.Context(), c.Param("patientId"), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": toNoteResponses(notes)})
}

func (h HandlerSet) NotesByDoctor(c *gin.Context) {
	notes, err := h.noteService.ListByDoctor(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": toNoteResponses(notes)})
}

type updateNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

func (h HandlerSet) UpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), c.Param("id"), currentUser(c).ID, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNoteResponse(note))
}

func (h HandlerSet) DeleteNote(c *gin.Context) {
	if err := h.noteService.Delete(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
