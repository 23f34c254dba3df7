package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// CatalogService manages the service catalog and discounted bundles
type CatalogService struct {
	serviceItemRepo *repository.ServiceItemRepository
	bundleRepo      *repository.BundleRepository
	logger          *zap.Logger
}

func NewCatalogService(
	serviceItemRepo *repository.ServiceItemRepository,
	bundleRepo *repository.BundleRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		serviceItemRepo: serviceItemRepo,
		bundleRepo:      bundleRepo,
		logger:          logger,
	}
}

func (s *CatalogService) CreateServiceItem(ctx context.Context, req *domain.CreateServiceItemRequest) (*domain.ServiceItemDTO, error) {
	item := &domain.ServiceItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.serviceItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create service item: %w", err)
	}

	dto := mapper.ToServiceItemDTO(item)
	return &dto, nil
}

func (s *CatalogService) UpdateServiceItem(ctx context.Context, id uuid.UUID, req *domain.CreateServiceItemRequest) (*domain.ServiceItemDTO, error) {
	item, err := s.serviceItemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceItemNotFound
		}
		return nil, fmt.Errorf("failed to get service item: %w", err)
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.UnitPrice = req.UnitPrice
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.serviceItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update service item: %w", err)
	}

	dto := mapper.ToServiceItemDTO(item)
	return &dto, nil
}

func (s *CatalogService) DeleteServiceItem(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceItemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceItemNotFound
		}
		return fmt.Errorf("failed to delete service item: %w", err)
	}
	return nil
}

func (s *CatalogService) ListServiceItems(ctx context.Context, category string, activeOnly bool) ([]domain.ServiceItemDTO, error) {
	items, err := s.serviceItemRepo.List(ctx, category, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list service items: %w", err)
	}

	dtos := make([]domain.ServiceItemDTO, len(items))
	for i, item := range items {
		dtos[i] = mapper.ToServiceItemDTO(&item)
	}
	return dtos, nil
}

// CreateBundle builds a bundle from catalog services. Every referenced
// service must exist.
func (s *CatalogService) CreateBundle(ctx context.Context, req *domain.CreateBundleRequest) (*domain.BundleDTO, error) {
	items, err := s.buildBundleItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	bundle := &domain.Bundle{
		Name:            req.Name,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		Items:           items,
	}

	if err := s.bundleRepo.Create(ctx, bundle); err != nil {
		return nil, fmt.Errorf("failed to create bundle: %w", err)
	}

	return s.getBundleDTO(ctx, bundle.ID)
}

func (s *CatalogService) UpdateBundle(ctx context.Context, id uuid.UUID, req *domain.CreateBundleRequest) (*domain.BundleDTO, error) {
	bundle, err := s.bundleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}

	items, err := s.buildBundleItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	bundle.Name = req.Name
	bundle.Description = req.Description
	bundle.DiscountPercent = req.DiscountPercent
	bundle.Items = nil

	if err := s.bundleRepo.Update(ctx, bundle); err != nil {
		return nil, fmt.Errorf("failed to update bundle: %w", err)
	}
	if err := s.bundleRepo.ReplaceItems(ctx, bundle.ID, items); err != nil {
		return nil, fmt.Errorf("failed to replace bundle items: %w", err)
	}

	return s.getBundleDTO(ctx, id)
}

func (s *CatalogService) DeleteBundle(ctx context.Context, id uuid.UUID) error {
	if err := s.bundleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBundleNotFound
		}
		return fmt.Errorf("failed to delete bundle: %w", err)
	}
	return nil
}

func (s *CatalogService) GetBundle(ctx context.Context, id uuid.UUID) (*domain.BundleDTO, error) {
	return s.getBundleDTO(ctx, id)
}

func (s *CatalogService) ListBundles(ctx context.Context) ([]domain.BundleDTO, error) {
	bundles, err := s.bundleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}

	dtos := make([]domain.BundleDTO, len(bundles))
	for i, bundle := range bundles {
		dtos[i] = mapper.ToBundleDTO(&bundle)
	}
	return dtos, nil
}

func (s *CatalogService) buildBundleItems(ctx context.Context, reqs []domain.BundleItemRequest) ([]domain.BundleItem, error) {
	items := make([]domain.BundleItem, len(reqs))
	for i, req := range reqs {
		if _, err := s.serviceItemRepo.GetByID(ctx, req.ServiceItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceItemNotFound
			}
			return nil, fmt.Errorf("failed to get service item: %w", err)
		}
		items[i] = domain.BundleItem{
			ServiceItemID: req.ServiceItemID,
			Quantity:      req.Quantity,
		}
	}
	return items, nil
}

func (s *CatalogService) getBundleDTO(ctx context.Context, id uuid.UUID) (*domain.BundleDTO, error) {
	bundle, err := s.bundleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}

	dto := mapper.ToBundleDTO(bundle)
	return &dto, nil
}
