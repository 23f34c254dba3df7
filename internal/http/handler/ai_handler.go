package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/ai"
	"github.com/framelight/studio-api/internal/domain"
)

// fallbackEquipment is returned when generation succeeds but produces
// nothing usable, so the client always gets a workable starting list.
var fallbackEquipment = []string{
	"Camera body",
	"Prime lens kit",
	"Tripod",
	"LED light panel",
	"Lavalier microphone",
	"Extra batteries",
	"Memory cards",
}

type AIHandler struct {
	generator *ai.Generator
	logger    *zap.Logger
}

func NewAIHandler(generator *ai.Generator, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateProposalItems godoc
// @Summary Generate proposal line items
// @Description Generate suggested proposal line items for a project title. Output is advisory and not persisted.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body domain.GenerateProposalItemsRequest true "Generation input"
// @Success 200 {array} domain.GeneratedProposalItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse "Generation failed"
// @Failure 503 {object} domain.ErrorResponse "AI generation not configured"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ai/proposal-items [post]
func (h *AIHandler) GenerateProposalItems(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateProposalItemsRequest
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

	items, err := h.generator.GenerateProposalItems(r.Context(), req.ProjectTitle, req.Tone)
	if err != nil {
		h.respondGenerationError(w, err, "proposal items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// GenerateShotList godoc
// @Summary Generate shot list
// @Description Generate suggested scenes for a shoot. Output is advisory and not persisted.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body domain.GenerateShotListRequest true "Generation input"
// @Success 200 {array} domain.GeneratedScene
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 502 {object} domain.ErrorResponse "Generation failed"
// @Failure 503 {object} domain.ErrorResponse "AI generation not configured"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ai/shot-list [post]
func (h *AIHandler) GenerateShotList(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateShotListRequest
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

	scenes, err := h.generator.GenerateShotList(r.Context(), req.ShootTitle, req.Description)
	if err != nil {
		h.respondGenerationError(w, err, "shot list")
		return
	}

	respondJSON(w, http.StatusOK, scenes)
}

// GenerateEquipmentList godoc
// @Summary Generate equipment checklist
// @Description Generate a suggested equipment checklist for a shoot. Falls back to a standard kit list when generation yields nothing usable.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body domain.GenerateEquipmentListRequest true "Generation input"
// @Success 200 {array} string
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse "AI generation not configured"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ai/equipment-list [post]
func (h *AIHandler) GenerateEquipmentList(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateEquipmentListRequest
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

	items, err := h.generator.GenerateEquipmentList(r.Context(), req.ShootTitle, req.Description)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			respondJSON(w, http.StatusServiceUnavailable, domain.ErrorResponse{
				Error:   "Service Unavailable",
				Message: "AI generation is not configured",
			})
			return
		}
		h.logger.Warn("equipment list generation failed, using fallback", zap.Error(err))
		respondJSON(w, http.StatusOK, fallbackEquipment)
		return
	}
	if len(items) == 0 {
		items = fallbackEquipment
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *AIHandler) respondGenerationError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, ai.ErrNotConfigured) {
		respondJSON(w, http.StatusServiceUnavailable, domain.ErrorResponse{
			Error:   "Service Unavailable",
			Message: "AI generation is not configured",
		})
		return
	}
	h.logger.Error("generation failed", zap.String("what", what), zap.Error(err))
	respondJSON(w, http.StatusBadGateway, domain.ErrorResponse{
		Error:   "Bad Gateway",
		Message: "Failed to generate " + what,
	})
}
