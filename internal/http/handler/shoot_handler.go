package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/service"
)

type ShootHandler struct {
	shootService    *service.ShootService
	maxUploadSizeMB int64
	logger          *zap.Logger
}

func NewShootHandler(shootService *service.ShootService, maxUploadSizeMB int64, logger *zap.Logger) *ShootHandler {
	return &ShootHandler{
		shootService:    shootService,
		maxUploadSizeMB: maxUploadSizeMB,
		logger:          logger,
	}
}

// List godoc
// @Summary List shoots
// @Description Get paginated list of shoots with optional filters, soonest first
// @Tags Shoots
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(planned, confirmed, completed)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ShootDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots [get]
func (h *ShootHandler) List(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.shootService.List(r.Context(), page, pageSize, status, customerID)
	if err != nil {
		h.logger.Error("failed to list shoots", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list shoots",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get shoot by ID
// @Description Get a shoot with its scenes and deliverables
// @Tags Shoots
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Success 200 {object} domain.ShootDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id} [get]
func (h *ShootHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	shoot, err := h.shootService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to get shoot", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get shoot",
		})
		return
	}

	respondJSON(w, http.StatusOK, shoot)
}

// Create godoc
// @Summary Create shoot
// @Description Schedule a new shoot for a customer
// @Tags Shoots
// @Accept json
// @Produce json
// @Param request body domain.CreateShootRequest true "Shoot data"
// @Success 201 {object} domain.ShootDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Customer not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots [post]
func (h *ShootHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateShootRequest
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

	shoot, err := h.shootService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Customer not found",
			})
			return
		}
		h.logger.Error("failed to create shoot", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create shoot",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/shoots/"+shoot.ID.String())
	respondJSON(w, http.StatusCreated, shoot)
}

// Update godoc
// @Summary Update shoot
// @Description Update an existing shoot
// @Tags Shoots
// @Accept json
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Param request body domain.UpdateShootRequest true "Shoot data"
// @Success 200 {object} domain.ShootDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id} [put]
func (h *ShootHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	var req domain.UpdateShootRequest
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

	shoot, err := h.shootService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to update shoot", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update shoot",
		})
		return
	}

	respondJSON(w, http.StatusOK, shoot)
}

// Delete godoc
// @Summary Delete shoot
// @Description Delete a shoot with its scenes and deliverables
// @Tags Shoots
// @Param id path string true "Shoot ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id} [delete]
func (h *ShootHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	if err := h.shootService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to delete shoot", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete shoot",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddScene godoc
// @Summary Add scene
// @Description Add a scene to a shoot's shot list. Scene numbers auto-increment when omitted.
// @Tags Shoots
// @Accept json
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Param request body domain.CreateSceneRequest true "Scene data"
// @Success 201 {object} domain.SceneDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id}/scenes [post]
func (h *ShootHandler) AddScene(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	var req domain.CreateSceneRequest
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

	scene, err := h.shootService.AddScene(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to add scene", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add scene",
		})
		return
	}

	respondJSON(w, http.StatusCreated, scene)
}

// UpdateScene godoc
// @Summary Update scene
// @Description Update a scene's number, description, angle or duration
// @Tags Shoots
// @Accept json
// @Produce json
// @Param sceneId path string true "Scene ID" format(uuid)
// @Param request body domain.UpdateSceneRequest true "Fields to update"
// @Success 200 {object} domain.SceneDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /scenes/{sceneId} [patch]
func (h *ShootHandler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sceneId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid scene ID format",
		})
		return
	}

	var req domain.UpdateSceneRequest
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

	scene, err := h.shootService.UpdateScene(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSceneNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Scene not found",
			})
			return
		}
		h.logger.Error("failed to update scene", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update scene",
		})
		return
	}

	respondJSON(w, http.StatusOK, scene)
}

// ToggleScene godoc
// @Summary Toggle scene completion
// @Description Flip a scene's completed flag
// @Tags Shoots
// @Produce json
// @Param sceneId path string true "Scene ID" format(uuid)
// @Success 200 {object} domain.SceneDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /scenes/{sceneId}/toggle [post]
func (h *ShootHandler) ToggleScene(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sceneId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid scene ID format",
		})
		return
	}

	scene, err := h.shootService.ToggleScene(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSceneNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Scene not found",
			})
			return
		}
		h.logger.Error("failed to toggle scene", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to toggle scene",
		})
		return
	}

	respondJSON(w, http.StatusOK, scene)
}

// DeleteScene godoc
// @Summary Delete scene
// @Description Remove a scene from the shot list
// @Tags Shoots
// @Param sceneId path string true "Scene ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /scenes/{sceneId} [delete]
func (h *ShootHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sceneId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid scene ID format",
		})
		return
	}

	if err := h.shootService.DeleteScene(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrSceneNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Scene not found",
			})
			return
		}
		h.logger.Error("failed to delete scene", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete scene",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDeliverables godoc
// @Summary List deliverables
// @Description Get a shoot's deliverables
// @Tags Shoots
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Success 200 {array} domain.DeliverableDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id}/deliverables [get]
func (h *ShootHandler) ListDeliverables(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	deliverables, err := h.shootService.ListDeliverables(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to list deliverables", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list deliverables",
		})
		return
	}

	respondJSON(w, http.StatusOK, deliverables)
}

// AddDeliverable godoc
// @Summary Add deliverable link
// @Description Register a deliverable that lives at an external URL
// @Tags Shoots
// @Accept json
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Param request body domain.CreateDeliverableRequest true "Deliverable data"
// @Success 201 {object} domain.DeliverableDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id}/deliverables [post]
func (h *ShootHandler) AddDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	var req domain.CreateDeliverableRequest
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

	deliverable, err := h.shootService.AddDeliverable(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to add deliverable", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add deliverable",
		})
		return
	}

	respondJSON(w, http.StatusCreated, deliverable)
}

// UploadDeliverable godoc
// @Summary Upload deliverable file
// @Description Upload a deliverable file as multipart form data. The deliverable type is inferred from the file's content type.
// @Tags Shoots
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Shoot ID" format(uuid)
// @Param file formData file true "File to upload"
// @Param title formData string false "Display title, defaults to the file name"
// @Success 201 {object} domain.DeliverableDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse "File too large"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /shoots/{id}/deliverables/upload [post]
func (h *ShootHandler) UploadDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid shoot ID format",
		})
		return
	}

	maxBytes := h.maxUploadSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, domain.ErrorResponse{
			Error:   "Request Entity Too Large",
			Message: "File exceeds the maximum upload size of " + strconv.FormatInt(h.maxUploadSizeMB, 10) + " MB",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Missing file field",
		})
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	contentType := header.Header.Get("Content-Type")

	deliverable, err := h.shootService.UploadDeliverable(r.Context(), id, title, header.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, service.ErrShootNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Shoot not found",
			})
			return
		}
		h.logger.Error("failed to upload deliverable", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to upload deliverable",
		})
		return
	}

	respondJSON(w, http.StatusCreated, deliverable)
}

// DownloadDeliverable godoc
// @Summary Download deliverable file
// @Description Stream a stored deliverable file
// @Tags Shoots
// @Produce octet-stream
// @Param deliverableId path string true "Deliverable ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deliverables/{deliverableId}/download [get]
func (h *ShootHandler) DownloadDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "deliverableId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid deliverable ID format",
		})
		return
	}

	deliverable, reader, err := h.shootService.DownloadDeliverable(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeliverableNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Deliverable not found",
			})
			return
		}
		h.logger.Error("failed to download deliverable", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to download deliverable",
		})
		return
	}
	defer reader.Close()

	contentType := deliverable.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+deliverable.FileName+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("deliverable stream interrupted",
			zap.String("deliverableId", id.String()),
			zap.Error(err))
	}
}

// DeleteDeliverable godoc
// @Summary Delete deliverable
// @Description Delete a deliverable and its stored file, if any
// @Tags Shoots
// @Param deliverableId path string true "Deliverable ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deliverables/{deliverableId} [delete]
func (h *ShootHandler) DeleteDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "deliverableId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid deliverable ID format",
		})
		return
	}

	if err := h.shootService.DeleteDeliverable(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrDeliverableNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Deliverable not found",
			})
			return
		}
		h.logger.Error("failed to delete deliverable", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete deliverable",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
