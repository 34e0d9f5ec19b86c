package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/services"
)

// EntryHandler handles entry-level requests within a budget.
type EntryHandler struct {
	budgetService services.BudgetServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(budgetService services.BudgetServicer) *EntryHandler {
	return &EntryHandler{budgetService: budgetService}
}

// AddEntryRequest represents the request payload for adding an entry.
// Amount is a raw arithmetic expression string; Date defaults to now
// and may be any date, past dates included.
type AddEntryRequest struct {
	Amount               string     `json:"amount" binding:"required,max=100"`
	Description          string     `json:"description" binding:"omitempty,max=200"`
	Date                 *time.Time `json:"date"`
	ExcludeFromDepletion bool       `json:"exclude_from_depletion"`
}

// EditEntryRequest represents the request payload for editing an entry.
// Absent fields are left unchanged.
type EditEntryRequest struct {
	Amount               *string    `json:"amount" binding:"omitempty,max=100"`
	Description          *string    `json:"description" binding:"omitempty,max=200"`
	Date                 *time.Time `json:"date"`
	ExcludeFromDepletion *bool      `json:"exclude_from_depletion"`
}

// AddEntry handles adding an entry to a budget.
func (h *EntryHandler) AddEntry(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.AddEntry(budgetID, services.AddEntryInput{
		Amount:               req.Amount,
		Description:          req.Description,
		Date:                 req.Date,
		ExcludeFromDepletion: req.ExcludeFromDepletion,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// EditEntry handles a partial update of an entry.
func (h *EntryHandler) EditEntry(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parseIDParam(c, "entryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.EditEntry(budgetID, entryID, services.EntryPatchInput{
		Amount:               req.Amount,
		Description:          req.Description,
		Date:                 req.Date,
		ExcludeFromDepletion: req.ExcludeFromDepletion,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteEntry handles removing an entry from a budget.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parseIDParam(c, "entryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.DeleteEntry(budgetID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
