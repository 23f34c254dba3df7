// Package portal implements the token-gated client portal. Every
// failure mode collapses to the same denied result so that callers
// cannot distinguish a wrong token from a missing customer; details
// are only ever logged server-side.
package portal

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// ErrAccessDenied is the single error every portal failure maps to
var ErrAccessDenied = errors.New("portal access denied")

type Service struct {
	customerRepo    *repository.CustomerRepository
	shootRepo       *repository.ShootRepository
	deliverableRepo *repository.DeliverableRepository
	proposalRepo    *repository.ProposalRepository
	logger          *zap.Logger
}

func NewService(
	customerRepo *repository.CustomerRepository,
	shootRepo *repository.ShootRepository,
	deliverableRepo *repository.DeliverableRepository,
	proposalRepo *repository.ProposalRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		customerRepo:    customerRepo,
		shootRepo:       shootRepo,
		deliverableRepo: deliverableRepo,
		proposalRepo:    proposalRepo,
		logger:          logger,
	}
}

// resolve maps a portal token to its customer. An empty token never
// matches anything.
func (s *Service) resolve(ctx context.Context, token string) (*domain.Customer, error) {
	if token == "" {
		return nil, ErrAccessDenied
	}

	customer, err := s.customerRepo.GetByPortalToken(ctx, token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("portal token lookup failed", zap.Error(err))
		}
		return nil, ErrAccessDenied
	}
	return customer, nil
}

// GetCustomer returns the reduced customer view for a valid token
func (s *Service) GetCustomer(ctx context.Context, token string) (*domain.PortalCustomerDTO, error) {
	customer, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToPortalCustomerDTO(customer)
	return &dto, nil
}

// ListShoots returns the customer's shoots for a valid token
func (s *Service) ListShoots(ctx context.Context, token string) ([]domain.ShootDTO, error) {
	customer, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	shoots, err := s.shootRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		s.logger.Error("portal shoot listing failed",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err))
		return nil, ErrAccessDenied
	}

	dtos := make([]domain.ShootDTO, len(shoots))
	for i, shoot := range shoots {
		dtos[i] = mapper.ToShootDTO(&shoot)
	}
	return dtos, nil
}

// ListDeliverables returns the deliverables across all of the
// customer's shoots. A customer with no shoots gets an empty list
// without a deliverable query.
func (s *Service) ListDeliverables(ctx context.Context, token string) ([]domain.DeliverableDTO, error) {
	customer, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	shoots, err := s.shootRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		s.logger.Error("portal shoot listing failed",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err))
		return nil, ErrAccessDenied
	}
	if len(shoots) == 0 {
		return []domain.DeliverableDTO{}, nil
	}

	shootIDs := make([]uuid.UUID, len(shoots))
	for i, shoot := range shoots {
		shootIDs[i] = shoot.ID
	}

	deliverables, err := s.deliverableRepo.ListByShootIDs(ctx, shootIDs)
	if err != nil {
		s.logger.Error("portal deliverable listing failed",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err))
		return nil, ErrAccessDenied
	}

	dtos := make([]domain.DeliverableDTO, len(deliverables))
	for i, deliverable := range deliverables {
		dtos[i] = mapper.ToDeliverableDTO(&deliverable)
	}
	return dtos, nil
}

// VerifyPin reports whether the PIN unlocks the finance view for this
// token. It is true only for an exact match against a set PIN; every
// other case, including an unknown token, is false.
func (s *Service) VerifyPin(ctx context.Context, token, pin string) bool {
	customer, err := s.resolve(ctx, token)
	if err != nil {
		return false
	}
	return pinMatches(customer.PortalPIN, pin)
}

// GetFinanceSummary returns the PIN-gated financial view. The PIN is
// checked again here; a verify call alone never unlocks anything.
func (s *Service) GetFinanceSummary(ctx context.Context, token, pin string) (*domain.PortalFinanceSummary, error) {
	customer, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !pinMatches(customer.PortalPIN, pin) {
		s.logger.Warn("portal finance access with wrong pin",
			zap.String("customer_id", customer.ID.String()))
		return nil, ErrAccessDenied
	}

	proposals, err := s.proposalRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		s.logger.Error("portal proposal listing failed",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err))
		return nil, ErrAccessDenied
	}

	summary := &domain.PortalFinanceSummary{
		Proposals: []domain.PortalProposalDTO{},
	}
	for i := range proposals {
		proposal := &proposals[i]
		switch proposal.Status {
		case domain.ProposalStatusSent:
			summary.PendingAmount += proposal.TotalAmount
		case domain.ProposalStatusAccepted:
			summary.TotalSpent += proposal.TotalAmount
		case domain.ProposalStatusDraft:
			// Drafts are internal and never surface on the portal
			continue
		}
		summary.Proposals = append(summary.Proposals, mapper.ToPortalProposalDTO(proposal))
	}

	return summary, nil
}

// pinMatches requires a stored PIN and an exact, constant-time match.
// A customer without a PIN has no finance access at all.
func pinMatches(stored *string, pin string) bool {
	if stored == nil || *stored == "" || pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(pin)) == 1
}
