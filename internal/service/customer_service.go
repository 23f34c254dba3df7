package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

type CustomerService struct {
	customerRepo    *repository.CustomerRepository
	interactionRepo *repository.InteractionRepository
	proposalRepo    *repository.ProposalRepository
	shootRepo       *repository.ShootRepository
	logger          *zap.Logger
}

func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	interactionRepo *repository.InteractionRepository,
	proposalRepo *repository.ProposalRepository,
	shootRepo *repository.ShootRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		proposalRepo:    proposalRepo,
		shootRepo:       shootRepo,
		logger:          logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.CustomerDTO, error) {
	status := domain.CustomerStatusLead
	if req.Status != "" {
		status = domain.CustomerStatus(req.Status)
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  status,
		Tags:    pq.StringArray(req.Tags),
		Notes:   req.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name))

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Name = req.Name
	customer.Company = req.Company
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Tags = pq.StringArray(req.Tags)
	customer.Notes = req.Notes
	if req.Status != "" {
		customer.Status = domain.CustomerStatus(req.Status)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int, search, status, tag string) (*domain.PaginatedResponse, error) {
	customers, total, err := s.customerRepo.List(ctx, page, pageSize, search, status, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i, customer := range customers {
		dtos[i] = mapper.ToCustomerDTO(&customer)
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// GetTimeline builds the customer's unified activity feed from its
// proposals, shoots and interactions, newest first. Each source
// contributes its own date: proposals use created_at, shoots their
// shoot date (or created_at when unscheduled), interactions their
// logged date.
func (s *CustomerService) GetTimeline(ctx context.Context, customerID uuid.UUID) ([]domain.TimelineEntry, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	proposals, err := s.proposalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	shoots, err := s.shootRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoots: %w", err)
	}
	interactions, err := s.interactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	entries := make([]domain.TimelineEntry, 0, len(proposals)+len(shoots)+len(interactions))

	for _, proposal := range proposals {
		entries = append(entries, domain.TimelineEntry{
			Type:     domain.TimelineEntryProposal,
			ID:       proposal.ID,
			Title:    proposal.ProjectTitle,
			Subtitle: string(proposal.Status),
			Date:     proposal.CreatedAt,
		})
	}
	for _, shoot := range shoots {
		date := shoot.CreatedAt
		if shoot.ShootDate != nil {
			date = *shoot.ShootDate
		}
		entries = append(entries, domain.TimelineEntry{
			Type:     domain.TimelineEntryShoot,
			ID:       shoot.ID,
			Title:    shoot.Title,
			Subtitle: string(shoot.Status),
			Date:     date,
		})
	}
	for _, interaction := range interactions {
		entries = append(entries, domain.TimelineEntry{
			Type:     domain.TimelineEntryInteraction,
			ID:       interaction.ID,
			Title:    interaction.Content,
			Subtitle: string(interaction.Type),
			Date:     interaction.Date,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// RotatePortalCredentials issues a fresh portal token and PIN for the
// customer, invalidating any previous ones. The plain values are
// returned once for handing to the client.
func (s *CustomerService) RotatePortalCredentials(ctx context.Context, customerID uuid.UUID) (token, pin string, err error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrCustomerNotFound
		}
		return "", "", fmt.Errorf("failed to get customer: %w", err)
	}

	token, err = generatePortalToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate portal token: %w", err)
	}
	pin, err = generatePortalPin()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate portal pin: %w", err)
	}

	customer.PortalToken = &token
	customer.PortalPIN = &pin

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return "", "", fmt.Errorf("failed to store portal credentials: %w", err)
	}

	s.logger.Info("portal credentials rotated", zap.String("customer_id", customerID.String()))
	return token, pin, nil
}

// RevokePortalAccess clears the customer's portal token and PIN
func (s *CustomerService) RevokePortalAccess(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	customer.PortalToken = nil
	customer.PortalPIN = nil

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return fmt.Errorf("failed to revoke portal access: %w", err)
	}

	s.logger.Info("portal access revoked", zap.String("customer_id", customerID.String()))
	return nil
}

func (s *CustomerService) CreateInteraction(ctx context.Context, customerID uuid.UUID, req *domain.CreateInteractionRequest) (*domain.InteractionDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		date = parsed
	}

	interaction := &domain.Interaction{
		CustomerID: customerID,
		Type:       domain.InteractionType(req.Type),
		Content:    req.Content,
		Date:       date,
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}

	dto := mapper.ToInteractionDTO(interaction)
	return &dto, nil
}

func (s *CustomerService) ListInteractions(ctx context.Context, customerID uuid.UUID) ([]domain.InteractionDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	interactions, err := s.interactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	dtos := make([]domain.InteractionDTO, len(interactions))
	for i, interaction := range interactions {
		dtos[i] = mapper.ToInteractionDTO(&interaction)
	}
	return dtos, nil
}

func (s *CustomerService) DeleteInteraction(ctx context.Context, id uuid.UUID) error {
	if err := s.interactionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInteractionNotFound
		}
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}

// generatePortalToken returns 32 random bytes hex-encoded
func generatePortalToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// generatePortalPin returns a random 4 digit PIN
func generatePortalPin() (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := int(buf[0])<<8 | int(buf[1])
	return fmt.Sprintf("%04d", n%10000), nil
}
