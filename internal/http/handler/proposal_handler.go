package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/service"
)

type ProposalHandler struct {
	proposalService *service.ProposalService
	logger          *zap.Logger
}

func NewProposalHandler(proposalService *service.ProposalService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		logger:          logger,
	}
}

// List godoc
// @Summary List proposals
// @Description Get paginated list of proposals with optional filters
// @Tags Proposals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(draft, sent, accepted, declined, expired)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProposalDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals [get]
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	status := r.URL.Query().Get("status")

	var customerID *uuid.UUID
	if s := r.URL.Query().Get("customerId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid customerId format",
			})
			return
		}
		customerID = &id
	}

	result, err := h.proposalService.List(r.Context(), page, pageSize, status, customerID)
	if err != nil {
		h.logger.Error("failed to list proposals", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list proposals",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get proposal by ID
// @Description Get a proposal with its line items in order
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid proposal ID format",
		})
		return
	}

	proposal, err := h.proposalService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Proposal not found",
			})
			return
		}
		h.logger.Error("failed to get proposal", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get proposal",
		})
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Create godoc
// @Summary Create proposal
// @Description Create a new draft proposal with line items
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body domain.CreateProposalRequest true "Proposal data"
// @Success 201 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Customer not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals [post]
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProposalRequest
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

	proposal, err := h.proposalService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Customer not found",
			})
			return
		}
		h.logger.Error("failed to create proposal", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create proposal",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/proposals/"+proposal.ID.String())
	respondJSON(w, http.StatusCreated, proposal)
}

// Update godoc
// @Summary Update proposal
// @Description Update a draft proposal. Line items are replaced wholesale. Proposals that have been sent cannot be edited.
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Param request body domain.UpdateProposalRequest true "Proposal data"
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Proposal no longer editable"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [put]
func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid proposal ID format",
		})
		return
	}

	var req domain.UpdateProposalRequest
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

	proposal, err := h.proposalService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProposalNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Proposal not found",
			})
		case errors.Is(err, service.ErrProposalNotEditable):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Only draft proposals can be edited",
			})
		default:
			h.logger.Error("failed to update proposal", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to update proposal",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Delete godoc
// @Summary Delete proposal
// @Description Delete a proposal and its line items
// @Tags Proposals
// @Param id path string true "Proposal ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid proposal ID format",
		})
		return
	}

	if err := h.proposalService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Proposal not found",
			})
			return
		}
		h.logger.Error("failed to delete proposal", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete proposal",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Send godoc
// @Summary Send proposal
// @Description Mark a draft proposal as sent. Sets the sent timestamp and defaults the validity window to 30 days when unset.
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Proposal is not a draft"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/send [post]
func (h *ProposalHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.proposalService.Send, "send")
}

// Accept godoc
// @Summary Accept proposal
// @Description Mark a sent proposal as accepted
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Proposal is not in sent status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/accept [post]
func (h *ProposalHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.proposalService.Accept, "accept")
}

// Decline godoc
// @Summary Decline proposal
// @Description Mark a sent proposal as declined
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Proposal is not in sent status"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/decline [post]
func (h *ProposalHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.proposalService.Decline, "decline")
}

// MarkPaid godoc
// @Summary Mark proposal paid
// @Description Mark an accepted proposal as paid and record the matching income entry
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Proposal not accepted or already paid"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /proposals/{id}/mark-paid [post]
func (h *ProposalHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.proposalService.MarkPaid, "mark paid")
}

// lifecycle runs a status transition and maps its sentinel errors to
// HTTP responses
func (h *ProposalHandler) lifecycle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error), action string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid proposal ID format",
		})
		return
	}

	proposal, err := fn(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProposalNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Proposal not found",
			})
		case errors.Is(err, service.ErrInvalidStatusTransition),
			errors.Is(err, service.ErrProposalNotAccepted),
			errors.Is(err, service.ErrAlreadyPaid):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
		default:
			h.logger.Error("proposal transition failed", zap.String("action", action), zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to " + action + " proposal",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}
