package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"emocare/api/internal/models"
	"emocare/api/internal/service"
)

func (h HandlerSet) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

type updateProfileRequest struct {
	FullName       string  `json:"fullName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	ProfilePicture *string `json:"profilePicture"`
	Specialty      *string `json:"specialty"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateProfileInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Age:            req.Age,
		ProfilePicture: req.ProfilePicture,
		Specialty:      req.Specialty,
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		input.Gender = &gender
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c).Email, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), currentUser(c).Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
}

func (h HandlerSet) GetUser(c *gin.Context) {
	caller := currentUser(c)
	id := c.Param("id")
	if caller.Role == models.RolePatient && id != caller.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": toUserResponses(users)})
}

func (h HandlerSet) ListPatients(c *gin.Context) {
	patients, err := h.userService.ListPatients(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": toUserResponses(patients)})
}

func (h HandlerSet) AssignedPatients(c *gin.Context) {
	ids, err := h.userService.AssignedPatientIDs(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patientIds": ids})
}

func (h HandlerSet) AssignPatient(c *gin.Context) {
	err := h.userService.AssignPatient(c.Request.Context(), currentUser(c).ID, c.Param("patientId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "assigned"})
}

func (h HandlerSet) UnassignPatient(c *gin.Context) {
	err := h.userService.UnassignPatient(c.Request.Context(), currentUser(c).ID, c.Param("patientId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unassigned"})
}

type updatePatientRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (h HandlerSet) UpdatePatientInfo(c *gin.Context) {
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.userService.UpdatePatientInfo(c.Request.Context(), c.Param("patientId"), currentUser(c).ID, service.UpdatePatientInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(patient))
}
