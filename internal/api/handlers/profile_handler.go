package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/services"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type UpdateProfileRequest struct {
	AgeBracket      *string   `json:"age_bracket,omitempty"`
	Interests       *[]string `json:"interests,omitempty"`
	Goals           *[]string `json:"goals,omitempty"`
	ExperienceLevel *string   `json:"experience_level,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Skills          *[]string `json:"skills,omitempty"`

	LearningPreferences *models.LearningPreferences `json:"learning_preferences,omitempty"`
	CareerPreferences   *models.CareerPreferences   `json:"career_preferences,omitempty"`
}

// Update applies a partial update; fields left out of the body keep their stored value.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ProfileHandler.Update", err)
		return
	}

	p, err := h.svc.Merge(c.Request.Context(), userID, services.ProfilePatch{
		AgeBracket:          req.AgeBracket,
		Interests:           req.Interests,
		Goals:               req.Goals,
		ExperienceLevel:     req.ExperienceLevel,
		Skills:              req.Skills,
		LearningPreferences: req.LearningPreferences,
		CareerPreferences:   req.CareerPreferences,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
