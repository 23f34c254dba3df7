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

type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListServiceItems godoc
// @Summary List service items
// @Description Get catalog service items with optional category filter
// @Tags Catalog
// @Produce json
// @Param category query string false "Filter by category"
// @Param activeOnly query bool false "Only return active items"
// @Success 200 {array} domain.ServiceItemDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/services [get]
func (h *CatalogHandler) ListServiceItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	items, err := h.catalogService.ListServiceItems(r.Context(), category, activeOnly)
	if err != nil {
		h.logger.Error("failed to list service items", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list service items",
		})
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// CreateServiceItem godoc
// @Summary Create service item
// @Description Add a new service to the catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceItemRequest true "Service item data"
// @Success 201 {object} domain.ServiceItemDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/services [post]
func (h *CatalogHandler) CreateServiceItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceItemRequest
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

	item, err := h.catalogService.CreateServiceItem(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create service item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create service item",
		})
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// UpdateServiceItem godoc
// @Summary Update service item
// @Description Update a catalog service item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service item ID" format(uuid)
// @Param request body domain.CreateServiceItemRequest true "Service item data"
// @Success 200 {object} domain.ServiceItemDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/services/{id} [put]
func (h *CatalogHandler) UpdateServiceItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service item ID format",
		})
		return
	}

	var req domain.CreateServiceItemRequest
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

	item, err := h.catalogService.UpdateServiceItem(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceItemNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service item not found",
			})
			return
		}
		h.logger.Error("failed to update service item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update service item",
		})
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteServiceItem godoc
// @Summary Delete service item
// @Description Remove a service from the catalog
// @Tags Catalog
// @Param id path string true "Service item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/services/{id} [delete]
func (h *CatalogHandler) DeleteServiceItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service item ID format",
		})
		return
	}

	if err := h.catalogService.DeleteServiceItem(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrServiceItemNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service item not found",
			})
			return
		}
		h.logger.Error("failed to delete service item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete service item",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBundles godoc
// @Summary List bundles
// @Description Get all bundles with resolved items and computed prices
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.BundleDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/bundles [get]
func (h *CatalogHandler) ListBundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.catalogService.ListBundles(r.Context())
	if err != nil {
		h.logger.Error("failed to list bundles", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list bundles",
		})
		return
	}

	respondJSON(w, http.StatusOK, bundles)
}

// GetBundle godoc
// @Summary Get bundle by ID
// @Description Get a bundle with resolved items and computed price
// @Tags Catalog
// @Produce json
// @Param id path string true "Bundle ID" format(uuid)
// @Success 200 {object} domain.BundleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/bundles/{id} [get]
func (h *CatalogHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid bundle ID format",
		})
		return
	}

	bundle, err := h.catalogService.GetBundle(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBundleNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Bundle not found",
			})
			return
		}
		h.logger.Error("failed to get bundle", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get bundle",
		})
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}

// CreateBundle godoc
// @Summary Create bundle
// @Description Create a bundle of catalog services with an optional discount
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateBundleRequest true "Bundle data"
// @Success 201 {object} domain.BundleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Referenced service item not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/bundles [post]
func (h *CatalogHandler) CreateBundle(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBundleRequest
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

	bundle, err := h.catalogService.CreateBundle(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceItemNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "One or more referenced service items were not found",
			})
			return
		}
		h.logger.Error("failed to create bundle", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create bundle",
		})
		return
	}

	respondJSON(w, http.StatusCreated, bundle)
}

// UpdateBundle godoc
// @Summary Update bundle
// @Description Update a bundle. Items are replaced wholesale.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Bundle ID" format(uuid)
// @Param request body domain.CreateBundleRequest true "Bundle data"
// @Success 200 {object} domain.BundleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/bundles/{id} [put]
func (h *CatalogHandler) UpdateBundle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid bundle ID format",
		})
		return
	}

	var req domain.CreateBundleRequest
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

	bundle, err := h.catalogService.UpdateBundle(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBundleNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Bundle not found",
			})
		case errors.Is(err, service.ErrServiceItemNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "One or more referenced service items were not found",
			})
		default:
			h.logger.Error("failed to update bundle", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to update bundle",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}

// DeleteBundle godoc
// @Summary Delete bundle
// @Description Delete a bundle and its item links. Catalog services themselves are untouched.
// @Tags Catalog
// @Param id path string true "Bundle ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /catalog/bundles/{id} [delete]
func (h *CatalogHandler) DeleteBundle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid bundle ID format",
		})
		return
	}

	if err := h.catalogService.DeleteBundle(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrBundleNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Bundle not found",
			})
			return
		}
		h.logger.Error("failed to delete bundle", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete bundle",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
