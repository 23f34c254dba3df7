package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/portal"
)

// PortalHandler serves the token-gated client portal. Every access
// failure, whatever the cause, surfaces as a plain 404 so the endpoints
// leak nothing about which tokens exist.
type PortalHandler struct {
	portalService *portal.Service
	logger        *zap.Logger
}

func NewPortalHandler(portalService *portal.Service, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{
		portalService: portalService,
		logger:        logger,
	}
}

// GetCustomer godoc
// @Summary Portal customer profile
// @Description Get the customer profile behind a portal token
// @Tags Portal
// @Produce json
// @Param token path string true "Portal token"
// @Success 200 {object} domain.PortalCustomerDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /portal/{token} [get]
func (h *PortalHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	customer, err := h.portalService.GetCustomer(r.Context(), token)
	if err != nil {
		h.respondPortalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// ListShoots godoc
// @Summary Portal shoots
// @Description Get the shoots belonging to the customer behind a portal token
// @Tags Portal
// @Produce json
// @Param token path string true "Portal token"
// @Success 200 {array} domain.ShootDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /portal/{token}/shoots [get]
func (h *PortalHandler) ListShoots(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	shoots, err := h.portalService.ListShoots(r.Context(), token)
	if err != nil {
		h.respondPortalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, shoots)
}

// ListDeliverables godoc
// @Summary Portal deliverables
// @Description Get deliverables across all of the customer's shoots
// @Tags Portal
// @Produce json
// @Param token path string true "Portal token"
// @Success 200 {array} domain.DeliverableDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /portal/{token}/deliverables [get]
func (h *PortalHandler) ListDeliverables(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	deliverables, err := h.portalService.ListDeliverables(r.Context(), token)
	if err != nil {
		h.respondPortalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deliverables)
}

// VerifyPin godoc
// @Summary Verify portal PIN
// @Description Check a PIN against the customer behind a portal token. Always returns 200 with a validity flag, never an error, so responses are indistinguishable for unknown tokens.
// @Tags Portal
// @Accept json
// @Produce json
// @Param token path string true "Portal token"
// @Param request body domain.VerifyPinRequest true "PIN to check"
// @Success 200 {object} domain.VerifyPinResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /portal/{token}/verify-pin [post]
func (h *PortalHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req domain.VerifyPinRequest
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

	valid := h.portalService.VerifyPin(r.Context(), token, req.Pin)
	respondJSON(w, http.StatusOK, domain.VerifyPinResponse{Valid: valid})
}

// FinanceSummary godoc
// @Summary Portal finance summary
// @Description Get the customer's financial overview. Requires the portal PIN in the X-Portal-PIN header on every call.
// @Tags Portal
// @Produce json
// @Param token path string true "Portal token"
// @Param X-Portal-PIN header string true "Portal PIN"
// @Success 200 {object} domain.PortalFinanceSummary
// @Failure 404 {object} domain.ErrorResponse
// @Router /portal/{token}/finance [get]
func (h *PortalHandler) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	pin := r.Header.Get("X-Portal-PIN")

	summary, err := h.portalService.GetFinanceSummary(r.Context(), token, pin)
	if err != nil {
		h.respondPortalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (h *PortalHandler) respondPortalError(w http.ResponseWriter, err error) {
	if !errors.Is(err, portal.ErrAccessDenied) {
		h.logger.Error("portal request failed", zap.Error(err))
	}
	respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
		Error:   "Not Found",
		Message: "Resource not found",
	})
}
