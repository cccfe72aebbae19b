package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"emocare/api/internal/models"
)

func (h HandlerSet) DoctorAlerts(c *gin.Context) {
	alerts, err := h.alertService.ListByDoctor(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": toAlertResponses(alerts)})
}

func (h HandlerSet) UnreadAlerts(c *gin.Context) {
	alerts, err := h.alertService.ListUnreadByDoctor(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": toAlertResponses(alerts)})
}

func (h HandlerSet) PatientAlerts(c *gin.Context) {
	caller := currentUser(c)
	patientID := c.Param("patientId")
	if caller.Role == models.RolePatient && patientID != caller.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	alerts, err := h.alertService.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": toAlertResponses(alerts)})
}

func (h HandlerSet) MarkAlertRead(c *gin.Context) {
	if err := h.alertService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
