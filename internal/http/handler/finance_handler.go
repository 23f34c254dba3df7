package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
	logger         *zap.Logger
}

func NewFinanceHandler(financeService *service.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description Get expenses within a date range, newest first
// @Tags Finance
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD), defaults to start of current month"
// @Param to query string false "Range end (YYYY-MM-DD), defaults to end of current month"
// @Success 200 {array} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	expenses, err := h.financeService.ListExpenses(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list expenses", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list expenses",
		})
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// CreateExpense godoc
// @Summary Create expense
// @Description Record a new expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body domain.CreateExpenseRequest true "Expense data"
// @Success 201 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/expenses [post]
func (h *FinanceHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.financeService.CreateExpense(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create expense", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create expense",
		})
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// UpdateExpense godoc
// @Summary Update expense
// @Description Update an existing expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Expense ID" format(uuid)
// @Param request body domain.CreateExpenseRequest true "Expense data"
// @Success 200 {object} domain.ExpenseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid expense ID format",
		})
		return
	}

	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.financeService.UpdateExpense(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Expense not found",
			})
			return
		}
		h.logger.Error("failed to update expense", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update expense",
		})
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// DeleteExpense godoc
// @Summary Delete expense
// @Description Delete an expense
// @Tags Finance
// @Param id path string true "Expense ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid expense ID format",
		})
		return
	}

	if err := h.financeService.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Expense not found",
			})
			return
		}
		h.logger.Error("failed to delete expense", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete expense",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListIncomes godoc
// @Summary List income entries
// @Description Get income entries within a date range, newest first
// @Tags Finance
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD), defaults to start of current month"
// @Param to query string false "Range end (YYYY-MM-DD), defaults to end of current month"
// @Success 200 {array} domain.IncomeDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/incomes [get]
func (h *FinanceHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	incomes, err := h.financeService.ListIncomes(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list incomes", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list incomes",
		})
		return
	}

	respondJSON(w, http.StatusOK, incomes)
}

// CreateIncome godoc
// @Summary Create income entry
// @Description Record a manual income entry
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body domain.CreateIncomeRequest true "Income data"
// @Success 201 {object} domain.IncomeDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/incomes [post]
func (h *FinanceHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	income, err := h.financeService.CreateIncome(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create income", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create income",
		})
		return
	}

	respondJSON(w, http.StatusCreated, income)
}

// UpdateIncome godoc
// @Summary Update income entry
// @Description Update a manual income entry. Entries created from paid proposals cannot be edited.
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Income ID" format(uuid)
// @Param request body domain.CreateIncomeRequest true "Income data"
// @Success 200 {object} domain.IncomeDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Entry is linked to a proposal"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/incomes/{id} [put]
func (h *FinanceHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid income ID format",
		})
		return
	}

	var req domain.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	income, err := h.financeService.UpdateIncome(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncomeNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Income entry not found",
			})
		case errors.Is(err, service.ErrIncomeLinkedToProposal):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Income entries created from proposals cannot be modified",
			})
		default:
			h.logger.Error("failed to update income", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to update income",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, income)
}

// DeleteIncome godoc
// @Summary Delete income entry
// @Description Delete a manual income entry. Entries created from paid proposals cannot be deleted.
// @Tags Finance
// @Param id path string true "Income ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Entry is linked to a proposal"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/incomes/{id} [delete]
func (h *FinanceHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid income ID format",
		})
		return
	}

	if err := h.financeService.DeleteIncome(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrIncomeNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Income entry not found",
			})
		case errors.Is(err, service.ErrIncomeLinkedToProposal):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Income entries created from proposals cannot be deleted",
			})
		default:
			h.logger.Error("failed to delete income", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to delete income",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary godoc
// @Summary Finance summary
// @Description Get totals, net result and per-category breakdowns for a date range
// @Tags Finance
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD), defaults to start of current month"
// @Param to query string false "Range end (YYYY-MM-DD), defaults to end of current month"
// @Success 200 {object} domain.FinanceSummary
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /finance/summary [get]
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	summary, err := h.financeService.GetSummary(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to get finance summary", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get finance summary",
		})
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
