package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifetrack/internal/classifier"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/services"
)

// AIHandler exposes the category classifier.
type AIHandler struct {
	suggester services.CategorySuggester
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(suggester services.CategorySuggester) *AIHandler {
	return &AIHandler{suggester: suggester}
}

// CategorizeRequest is a description to classify.
type CategorizeRequest struct {
	Description string `json:"description" binding:"required,max=500"`
	Type        string `json:"type" binding:"omitempty,transaction_type"`
}

// CategoriesResponse lists the candidate categories per transaction type.
type CategoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// Categorize suggests a category for a description
// @Summary     Suggest a category
// @Description Classify a transaction description. Falls back to keyword rules when the remote model is unavailable.
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategorizeRequest true "Description and type"
// @Success     200 {object} classifier.Result "Suggestion"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Router      /ai/categorize [post]
func (h *AIHandler) Categorize(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txType := classifier.ResolveType(req.Type)
	result := h.suggester.Predict(c.Request.Context(), req.Description, txType)

	c.JSON(http.StatusOK, gin.H{"type": txType, "suggestion": result})
}

// ListCategories returns the candidate categories
// @Summary     List categories
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoriesResponse "Categories per type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *AIHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Expense: withDefault(h.suggester.Labels(classifier.TypeExpense)),
		Income:  withDefault(h.suggester.Labels(classifier.TypeIncome)),
	})
}

func withDefault(labels []string) []string {
	for _, l := range labels {
		if l == classifier.DefaultCategory {
			return labels
		}
	}
	return append(labels, classifier.DefaultCategory)
}
