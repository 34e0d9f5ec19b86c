package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/ledger"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
	"budgeteer/internal/services"
)

// BudgetHandler handles budget and period level requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Omitting both start days selects the configured default rule.
type CreateBudgetRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	StartDay1 int    `json:"start_day_1" binding:"omitempty,min=1,max=28"`
	StartDay2 int    `json:"start_day_2" binding:"omitempty,min=1,max=28"`
}

// SetPeriodAmountRequest represents the request payload for setting a
// period's budget amount. Amount is a raw arithmetic expression.
type SetPeriodAmountRequest struct {
	Amount string `json:"amount" binding:"required,max=100"`
}

// PayDownRequest represents the request payload for paying down
// carried-over debt or withdrawing carried-over savings.
type PayDownRequest struct {
	Kind   string `json:"kind" binding:"required,carry_kind"`
	Amount string `json:"amount" binding:"required,max=100"`
}

// CreateBudget handles the creation of a new budget.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule := models.PeriodRule{StartDay1: req.StartDay1, StartDay2: req.StartDay2}
	budget, err := h.budgetService.CreateBudget(req.Name, rule)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing stored budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budgets, err := h.budgetService.ListBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudget handles fetching a single budget by ID.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget by ID.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}

// GetSummary handles fetching the derived figures for a budget's
// current period.
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.Summary(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// SetPeriodAmount handles setting the budget amount of a current or
// past period, including retroactive edits.
func (h *BudgetHandler) SetPeriodAmount(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	periodID, err := parseIDParam(c, "periodId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPeriodAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetPeriodAmount(budgetID, periodID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// PayDown handles spending part of the carried-over debt or savings.
func (h *BudgetHandler) PayDown(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PayDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.PayDown(budgetID, ledger.CarryKind(req.Kind), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
