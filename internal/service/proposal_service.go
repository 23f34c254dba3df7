package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// ProposalService manages proposals, their line items and the
// draft -> sent -> accepted/declined/expired lifecycle.
type ProposalService struct {
	proposalRepo *repository.ProposalRepository
	customerRepo *repository.CustomerRepository
	incomeRepo   *repository.IncomeRepository
	logger       *zap.Logger
}

func NewProposalService(
	proposalRepo *repository.ProposalRepository,
	customerRepo *repository.CustomerRepository,
	incomeRepo *repository.IncomeRepository,
	logger *zap.Logger,
) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		customerRepo: customerRepo,
		incomeRepo:   incomeRepo,
		logger:       logger,
	}
}

func (s *ProposalService) Create(ctx context.Context, req *domain.CreateProposalRequest) (*domain.ProposalDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	items := buildProposalItems(req.Items)

	proposal := &domain.Proposal{
		CustomerID:    req.CustomerID,
		ProjectTitle:  req.ProjectTitle,
		Status:        domain.ProposalStatusDraft,
		TaxRate:       req.TaxRate,
		PaymentStatus: domain.PaymentStatusPending,
		Notes:         req.Notes,
		Items:         items,
	}
	if req.Currency != "" {
		proposal.Currency = req.Currency
	}
	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid validUntil", ErrInvalidInput)
		}
		proposal.ValidUntil = &validUntil
	}
	proposal.TotalAmount = mapper.CalculateProposalTotal(items, proposal.TaxRate)

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	s.logger.Info("proposal created",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("customer_id", proposal.CustomerID.String()),
		zap.Float64("total", proposal.TotalAmount))

	return s.getDTO(ctx, proposal.ID)
}

func (s *ProposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	return s.getDTO(ctx, id)
}

// Update replaces the proposal's fields and full line item set. The
// item swap and total recalculation happen in one transaction. Only
// draft proposals are editable.
func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProposalRequest) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if proposal.Status != domain.ProposalStatusDraft {
		return nil, ErrProposalNotEditable
	}

	proposal.ProjectTitle = req.ProjectTitle
	proposal.TaxRate = req.TaxRate
	proposal.Notes = req.Notes
	if req.Currency != "" {
		proposal.Currency = req.Currency
	}
	proposal.ValidUntil = nil
	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid validUntil", ErrInvalidInput)
		}
		proposal.ValidUntil = &validUntil
	}

	items := buildProposalItems(req.Items)
	totalAmount := mapper.CalculateProposalTotal(items, proposal.TaxRate)
	proposal.Items = nil
	proposal.TotalAmount = totalAmount

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}
	if err := s.proposalRepo.ReplaceItems(ctx, proposal.ID, items, totalAmount); err != nil {
		return nil, fmt.Errorf("failed to replace proposal items: %w", err)
	}

	return s.getDTO(ctx, id)
}

func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProposalNotFound
		}
		return fmt.Errorf("failed to delete proposal: %w", err)
	}

	s.logger.Info("proposal deleted", zap.String("proposal_id", id.String()))
	return nil
}

func (s *ProposalService) List(ctx context.Context, page, pageSize int, status string, customerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	proposals, total, err := s.proposalRepo.List(ctx, page, pageSize, status, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	dtos := make([]domain.ProposalDTO, len(proposals))
	for i, proposal := range proposals {
		dtos[i] = mapper.ToProposalDTO(&proposal)
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Send transitions a draft proposal to sent. The sent timestamp is
// recorded and, when no expiry was chosen, the proposal stays valid
// for 30 days.
func (s *ProposalService) Send(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if proposal.Status != domain.ProposalStatusDraft {
		return nil, ErrInvalidStatusTransition
	}

	now := time.Now()
	proposal.Status = domain.ProposalStatusSent
	proposal.SentAt = &now
	if proposal.ValidUntil == nil {
		validUntil := now.AddDate(0, 0, 30)
		proposal.ValidUntil = &validUntil
	}

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to send proposal: %w", err)
	}

	s.logger.Info("proposal sent", zap.String("proposal_id", id.String()))
	return s.getDTO(ctx, id)
}

// Accept transitions a sent proposal to accepted
func (s *ProposalService) Accept(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	return s.transition(ctx, id, domain.ProposalStatusSent, domain.ProposalStatusAccepted)
}

// Decline transitions a sent proposal to declined
func (s *ProposalService) Decline(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	return s.transition(ctx, id, domain.ProposalStatusSent, domain.ProposalStatusDeclined)
}

// MarkPaid records payment on an accepted proposal and writes the
// matching income entry. Paying twice is rejected.
func (s *ProposalService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if proposal.Status != domain.ProposalStatusAccepted {
		return nil, ErrProposalNotAccepted
	}
	if proposal.PaymentStatus == domain.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	proposal.PaymentStatus = domain.PaymentStatusPaid
	proposal.PaidAt = &now

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to mark proposal paid: %w", err)
	}

	income := &domain.Income{
		Amount:      proposal.TotalAmount,
		Source:      domain.IncomeSourceProposal,
		Category:    "production",
		Description: fmt.Sprintf("Payment for proposal '%s'", proposal.ProjectTitle),
		Date:        now,
		ProposalID:  &proposal.ID,
	}
	if err := s.incomeRepo.Create(ctx, income); err != nil {
		// The payment itself succeeded. Log and carry on so the
		// caller does not retry the whole operation.
		s.logger.Error("failed to record income for paid proposal",
			zap.String("proposal_id", id.String()),
			zap.Error(err))
	} else {
		s.logger.Info("proposal paid",
			zap.String("proposal_id", id.String()),
			zap.Float64("amount", proposal.TotalAmount))
	}

	return s.getDTO(ctx, id)
}

// ExpireOverdue flips sent proposals whose validity window has passed
// to expired. Called from the scheduled sweep.
func (s *ProposalService) ExpireOverdue(ctx context.Context) (int64, error) {
	count, err := s.proposalRepo.MarkExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire proposals: %w", err)
	}
	if count > 0 {
		s.logger.Info("proposals expired", zap.Int64("count", count))
	}
	return count, nil
}

func (s *ProposalService) transition(ctx context.Context, id uuid.UUID, from, to domain.ProposalStatus) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if proposal.Status != from {
		return nil, ErrInvalidStatusTransition
	}

	proposal.Status = to
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to update proposal status: %w", err)
	}

	s.logger.Info("proposal status changed",
		zap.String("proposal_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return s.getDTO(ctx, id)
}

func (s *ProposalService) getDTO(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func buildProposalItems(reqs []domain.ProposalItemRequest) []domain.ProposalItem {
	items := make([]domain.ProposalItem, len(reqs))
	for i, req := range reqs {
		items[i] = domain.ProposalItem{
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			OrderIndex:  i,
		}
	}
	return items
}
