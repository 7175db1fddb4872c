package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/services"
)

type TemplateHandler struct {
	sessions services.SessionService
	svc      services.TemplateService
}

func NewTemplateHandler(sessions services.SessionService, svc services.TemplateService) *TemplateHandler {
	return &TemplateHandler{sessions: sessions, svc: svc}
}

type CreateTemplateRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Description string                     `json:"description"`
	Duration    int                        `json:"duration" binding:"gte=0"`
	Agenda      []string                   `json:"agenda"`
	Preparation models.TemplatePreparation `json:"preparation"`
	Resources   []models.TemplateResource  `json:"resources"`
	Category    string                     `json:"category" binding:"omitempty,oneof=career technical soft_skills goal_setting code_review general"`
	Difficulty  string                     `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags        []string                   `json:"tags"`
	IsPublic    bool                       `json:"is_public"`
}

type ListTemplatesQuery struct {
	Category   string `form:"category"`
	Difficulty string `form:"difficulty"`
}

type UseTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	const op = "TemplateHandler.Create"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), services.NewTemplate{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Agenda:      req.Agenda,
		Preparation: req.Preparation,
		Resources:   req.Resources,
		Category:    models.TemplateCategory(req.Category),
		Difficulty:  models.Difficulty(req.Difficulty),
		Tags:        req.Tags,
		CreatedBy:   userID,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TemplateHandler) List(c *gin.Context) {
	const op = "TemplateHandler.List"

	var q ListTemplatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, op, err)
		return
	}

	list, err := h.svc.List(c.Request.Context(), services.TemplateFilter{
		Category:   models.TemplateCategory(q.Category),
		Difficulty: models.Difficulty(q.Difficulty),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("template_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TemplateHandler) Apply(c *gin.Context) {
	const op = "TemplateHandler.Apply"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req UseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	writeOutcome(c, op, h.svc.Use(c.Request.Context(), sess.SessionID, req.TemplateID))
}
