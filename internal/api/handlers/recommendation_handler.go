package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/services"
	"github.com/yoockh/mentorship/internal/utils"
)

type RecommendationHandler struct {
	svc services.RecommendationService
}

func NewRecommendationHandler(svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recs, err := h.svc.Recommendations(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *RecommendationHandler) LearningPath(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal := c.Query("goal")
	if goal == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RecommendationHandler.LearningPath", "goal query parameter is required", nil))
		return
	}

	path, err := h.svc.LearningPath(c.Request.Context(), userID, goal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (h *RecommendationHandler) Insights(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.Insights(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
