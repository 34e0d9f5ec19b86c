package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/services"
)

func setupEntryRouter(handler *EntryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/budgets/:id/entries", handler.AddEntry)
	r.PATCH("/budgets/:id/entries/:entryId", handler.EditEntry)
	r.DELETE("/budgets/:id/entries/:entryId", handler.DeleteEntry)
	return r
}

func TestEntryHandler_AddEntry(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var captured services.AddEntryInput
		svc := &mockBudgetService{
			addEntryFn: func(budgetID string, input services.AddEntryInput) (*models.Budget, error) {
				captured = input
				return &models.Budget{ID: budgetID}, nil
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/entries",
			`{"amount":"10+5+3.25","description":"groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Amount != "10+5+3.25" {
			t.Errorf("expected raw expression to be passed, got %q", captured.Amount)
		}
		if captured.Description != "groceries" {
			t.Errorf("expected groceries, got %q", captured.Description)
		}
		if captured.Date != nil {
			t.Errorf("expected nil date when omitted, got %v", captured.Date)
		}
	})

	t.Run("passes backdated entries through", func(t *testing.T) {
		var captured services.AddEntryInput
		svc := &mockBudgetService{
			addEntryFn: func(budgetID string, input services.AddEntryInput) (*models.Budget, error) {
				captured = input
				return &models.Budget{ID: budgetID}, nil
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		doRequest(r, "POST", "/budgets/"+testBudgetID+"/entries",
			`{"amount":"120.50","date":"2025-01-20T10:00:00Z","exclude_from_depletion":true}`)

		want := time.Date(2025, time.January, 20, 10, 0, 0, 0, time.UTC)
		if captured.Date == nil || !captured.Date.Equal(want) {
			t.Errorf("expected date %v, got %v", want, captured.Date)
		}
		if !captured.ExcludeFromDepletion {
			t.Error("expected exclude_from_depletion to be passed")
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewEntryHandler(&mockBudgetService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/entries", `{"description":"groceries"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid expression", func(t *testing.T) {
		svc := &mockBudgetService{
			addEntryFn: func(_ string, _ services.AddEntryInput) (*models.Budget, error) {
				return nil, apperrors.ErrInvalidAmountExpression
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/entries", `{"amount":"rm(-rf)"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT_EXPRESSION")
	})

	t.Run("returns 404 on unknown budget", func(t *testing.T) {
		svc := &mockBudgetService{
			addEntryFn: func(_ string, _ services.AddEntryInput) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/entries", `{"amount":"10"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid budget ID", func(t *testing.T) {
		handler := NewEntryHandler(&mockBudgetService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/budgets/abc/entries", `{"amount":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEntryHandler_EditEntry(t *testing.T) {
	t.Run("returns 200 with patched fields only", func(t *testing.T) {
		var captured services.EntryPatchInput
		svc := &mockBudgetService{
			editEntryFn: func(budgetID, _ string, patch services.EntryPatchInput) (*models.Budget, error) {
				captured = patch
				return &models.Budget{ID: budgetID}, nil
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "PATCH", "/budgets/"+testBudgetID+"/entries/"+testEntryID,
			`{"amount":"80+5"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Amount == nil || *captured.Amount != "80+5" {
			t.Errorf("expected amount patch 80+5, got %v", captured.Amount)
		}
		if captured.Description != nil || captured.Date != nil || captured.ExcludeFromDepletion != nil {
			t.Error("expected omitted fields to stay nil")
		}
	})

	t.Run("returns 400 on invalid entry ID", func(t *testing.T) {
		handler := NewEntryHandler(&mockBudgetService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "PATCH", "/budgets/"+testBudgetID+"/entries/xyz", `{"amount":"80"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestEntryHandler_DeleteEntry(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var capturedEntry string
		svc := &mockBudgetService{
			deleteEntryFn: func(budgetID, entryID string) (*models.Budget, error) {
				capturedEntry = entryID
				return &models.Budget{ID: budgetID}, nil
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID+"/entries/"+testEntryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedEntry != testEntryID {
			t.Errorf("expected entry id %s, got %s", testEntryID, capturedEntry)
		}
	})

	t.Run("returns 404 on unknown budget", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteEntryFn: func(_, _ string) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewEntryHandler(svc)
		r := setupEntryRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID+"/entries/"+testEntryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
