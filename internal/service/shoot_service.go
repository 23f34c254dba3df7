package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/internal/storage"
)

// ShootService manages shoots, their scene lists and deliverables
type ShootService struct {
	shootRepo       *repository.ShootRepository
	deliverableRepo *repository.DeliverableRepository
	customerRepo    *repository.CustomerRepository
	storage         storage.Storage
	logger          *zap.Logger
}

func NewShootService(
	shootRepo *repository.ShootRepository,
	deliverableRepo *repository.DeliverableRepository,
	customerRepo *repository.CustomerRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ShootService {
	return &ShootService{
		shootRepo:       shootRepo,
		deliverableRepo: deliverableRepo,
		customerRepo:    customerRepo,
		storage:         store,
		logger:          logger,
	}
}

func (s *ShootService) Create(ctx context.Context, req *domain.CreateShootRequest) (*domain.ShootDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	status := domain.ShootStatusPlanned
	if req.Status != "" {
		status = domain.ShootStatus(req.Status)
	}

	shoot := &domain.Shoot{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		ShootTime:   req.ShootTime,
		Location:    req.Location,
		Status:      status,
		Description: req.Description,
		Equipment:   pq.StringArray(req.Equipment),
		Notes:       req.Notes,
	}
	if req.ShootDate != "" {
		shootDate, err := time.Parse("2006-01-02", req.ShootDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid shootDate", ErrInvalidInput)
		}
		shoot.ShootDate = &shootDate
	}

	if err := s.shootRepo.Create(ctx, shoot); err != nil {
		return nil, fmt.Errorf("failed to create shoot: %w", err)
	}

	s.logger.Info("shoot created",
		zap.String("shoot_id", shoot.ID.String()),
		zap.String("customer_id", shoot.CustomerID.String()))

	dto := mapper.ToShootDTO(shoot)
	return &dto, nil
}

func (s *ShootService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShootDTO, error) {
	shoot, err := s.shootRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	dto := mapper.ToShootDTO(shoot)
	return &dto, nil
}

func (s *ShootService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateShootRequest) (*domain.ShootDTO, error) {
	shoot, err := s.shootRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	shoot.Title = req.Title
	shoot.ShootTime = req.ShootTime
	shoot.Location = req.Location
	shoot.Description = req.Description
	shoot.Equipment = pq.StringArray(req.Equipment)
	shoot.Notes = req.Notes
	if req.Status != "" {
		shoot.Status = domain.ShootStatus(req.Status)
	}
	shoot.ShootDate = nil
	if req.ShootDate != "" {
		shootDate, err := time.Parse("2006-01-02", req.ShootDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid shootDate", ErrInvalidInput)
		}
		shoot.ShootDate = &shootDate
	}

	if err := s.shootRepo.Update(ctx, shoot); err != nil {
		return nil, fmt.Errorf("failed to update shoot: %w", err)
	}

	dto := mapper.ToShootDTO(shoot)
	return &dto, nil
}

func (s *ShootService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.shootRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShootNotFound
		}
		return fmt.Errorf("failed to delete shoot: %w", err)
	}

	s.logger.Info("shoot deleted", zap.String("shoot_id", id.String()))
	return nil
}

func (s *ShootService) List(ctx context.Context, page, pageSize int, status string, customerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	shoots, total, err := s.shootRepo.List(ctx, page, pageSize, status, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoots: %w", err)
	}

	dtos := make([]domain.ShootDTO, len(shoots))
	for i, shoot := range shoots {
		dtos[i] = mapper.ToShootDTO(&shoot)
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// AddScene appends a scene to the shoot. When no scene number is given
// the next free number is used.
func (s *ShootService) AddScene(ctx context.Context, shootID uuid.UUID, req *domain.CreateSceneRequest) (*domain.SceneDTO, error) {
	if _, err := s.shootRepo.GetByID(ctx, shootID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	sceneNumber := req.SceneNumber
	if sceneNumber == 0 {
		maxNumber, err := s.shootRepo.MaxSceneNumber(ctx, shootID)
		if err != nil {
			return nil, fmt.Errorf("failed to get max scene number: %w", err)
		}
		sceneNumber = maxNumber + 1
	}

	scene := &domain.Scene{
		ShootID:     shootID,
		SceneNumber: sceneNumber,
		Description: req.Description,
		Angle:       req.Angle,
		Duration:    req.Duration,
	}

	if err := s.shootRepo.CreateScene(ctx, scene); err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	dto := mapper.ToSceneDTO(scene)
	return &dto, nil
}

// UpdateScene applies a partial update to a scene's descriptive fields
func (s *ShootService) UpdateScene(ctx context.Context, sceneID uuid.UUID, req *domain.UpdateSceneRequest) (*domain.SceneDTO, error) {
	scene, err := s.shootRepo.GetSceneByID(ctx, sceneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}

	if req.SceneNumber != nil {
		scene.SceneNumber = *req.SceneNumber
	}
	if req.Description != nil {
		scene.Description = *req.Description
	}
	if req.Angle != nil {
		scene.Angle = *req.Angle
	}
	if req.Duration != nil {
		scene.Duration = *req.Duration
	}

	if err := s.shootRepo.UpdateScene(ctx, scene); err != nil {
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}

	dto := mapper.ToSceneDTO(scene)
	return &dto, nil
}

// ToggleScene flips the completion flag of a single scene
func (s *ShootService) ToggleScene(ctx context.Context, sceneID uuid.UUID) (*domain.SceneDTO, error) {
	scene, err := s.shootRepo.GetSceneByID(ctx, sceneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}

	scene.IsCompleted = !scene.IsCompleted
	if err := s.shootRepo.UpdateScene(ctx, scene); err != nil {
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}

	dto := mapper.ToSceneDTO(scene)
	return &dto, nil
}

func (s *ShootService) DeleteScene(ctx context.Context, sceneID uuid.UUID) error {
	if err := s.shootRepo.DeleteScene(ctx, sceneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSceneNotFound
		}
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	return nil
}

func (s *ShootService) AddDeliverable(ctx context.Context, shootID uuid.UUID, req *domain.CreateDeliverableRequest) (*domain.DeliverableDTO, error) {
	if _, err := s.shootRepo.GetByID(ctx, shootID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	deliverable := &domain.Deliverable{
		ShootID:     shootID,
		Type:        domain.DeliverableType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}

	if err := s.deliverableRepo.Create(ctx, deliverable); err != nil {
		return nil, fmt.Errorf("failed to create deliverable: %w", err)
	}

	dto := mapper.ToDeliverableDTO(deliverable)
	return &dto, nil
}

// UploadDeliverable stores an asset file and records the deliverable
// pointing at it
func (s *ShootService) UploadDeliverable(ctx context.Context, shootID uuid.UUID, title, filename, contentType string, data io.Reader) (*domain.DeliverableDTO, error) {
	if _, err := s.shootRepo.GetByID(ctx, shootID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	storagePath, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store deliverable file: %w", err)
	}

	deliverable := &domain.Deliverable{
		ShootID:     shootID,
		Type:        deliverableTypeFromContentType(contentType),
		Title:       title,
		StoragePath: storagePath,
		FileName:    filename,
		ContentType: contentType,
		FileSize:    size,
	}

	if err := s.deliverableRepo.Create(ctx, deliverable); err != nil {
		// Do not leave orphaned files behind
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up stored file",
				zap.String("storage_path", storagePath),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create deliverable: %w", err)
	}

	s.logger.Info("deliverable uploaded",
		zap.String("shoot_id", shootID.String()),
		zap.String("deliverable_id", deliverable.ID.String()),
		zap.Int64("size", size))

	dto := mapper.ToDeliverableDTO(deliverable)
	return &dto, nil
}

// DownloadDeliverable opens the stored file of an uploaded deliverable
func (s *ShootService) DownloadDeliverable(ctx context.Context, id uuid.UUID) (*domain.Deliverable, io.ReadCloser, error) {
	deliverable, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDeliverableNotFound
		}
		return nil, nil, fmt.Errorf("failed to get deliverable: %w", err)
	}
	if deliverable.StoragePath == "" {
		return nil, nil, ErrDeliverableNotFound
	}

	reader, err := s.storage.Download(ctx, deliverable.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open deliverable file: %w", err)
	}
	return deliverable, reader, nil
}

func (s *ShootService) ListDeliverables(ctx context.Context, shootID uuid.UUID) ([]domain.DeliverableDTO, error) {
	if _, err := s.shootRepo.GetByID(ctx, shootID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShootNotFound
		}
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}

	deliverables, err := s.deliverableRepo.ListByShoot(ctx, shootID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliverables: %w", err)
	}

	dtos := make([]domain.DeliverableDTO, len(deliverables))
	for i, deliverable := range deliverables {
		dtos[i] = mapper.ToDeliverableDTO(&deliverable)
	}
	return dtos, nil
}

func (s *ShootService) DeleteDeliverable(ctx context.Context, id uuid.UUID) error {
	deliverable, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliverableNotFound
		}
		return fmt.Errorf("failed to get deliverable: %w", err)
	}

	if err := s.deliverableRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete deliverable: %w", err)
	}

	if deliverable.StoragePath != "" {
		if err := s.storage.Delete(ctx, deliverable.StoragePath); err != nil {
			s.logger.Warn("failed to delete stored file",
				zap.String("storage_path", deliverable.StoragePath),
				zap.Error(err))
		}
	}
	return nil
}

func deliverableTypeFromContentType(contentType string) domain.DeliverableType {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return domain.DeliverableTypeVideo
	case strings.HasPrefix(contentType, "image/"):
		return domain.DeliverableTypePhoto
	default:
		return domain.DeliverableTypeOther
	}
}
