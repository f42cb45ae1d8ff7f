package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathlab/models"
	ai "pathlab/services/intelligence"
	"pathlab/services/lab"
)

// AIHandler maps symptoms to suggested catalog tests.
type AIHandler struct {
	Store       *lab.Store
	Recommender ai.RecommendationService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(store *lab.Store, recommender ai.RecommendationService) *AIHandler {
	return &AIHandler{Store: store, Recommender: recommender}
}

// AIRecommendHandler always answers 200; recommendation failures produce an
// empty list.
func (h *AIHandler) AIRecommendHandler(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	catalog := h.Store.Tests()
	ids, err := h.Recommender.Recommend(c.Request.Context(), req.Symptoms, catalog)
	if err != nil {
		getLogger(c).Warn("Recommendation failed", zap.Error(err))
		ids = []string{}
	}
	c.JSON(http.StatusOK, models.RecommendResponse{
		TestIDs: ids,
		Tests:   ai.SelectTests(catalog, ids),
	})
}
