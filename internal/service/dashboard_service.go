package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/ai"
	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// DashboardService aggregates the staff dashboard metrics
type DashboardService struct {
	customerRepo *repository.CustomerRepository
	proposalRepo *repository.ProposalRepository
	shootRepo    *repository.ShootRepository
	taskRepo     *repository.TaskRepository
	expenseRepo  *repository.ExpenseRepository
	incomeRepo   *repository.IncomeRepository
	generator    *ai.Generator
	logger       *zap.Logger
}

func NewDashboardService(
	customerRepo *repository.CustomerRepository,
	proposalRepo *repository.ProposalRepository,
	shootRepo *repository.ShootRepository,
	taskRepo *repository.TaskRepository,
	expenseRepo *repository.ExpenseRepository,
	incomeRepo *repository.IncomeRepository,
	generator *ai.Generator,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		proposalRepo: proposalRepo,
		shootRepo:    shootRepo,
		taskRepo:     taskRepo,
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		generator:    generator,
		logger:       logger,
	}
}

// GetMetrics collects the dashboard rollup for the current month
func (s *DashboardService) GetMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	totalCustomers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	activeCustomers, err := s.customerRepo.CountByStatus(ctx, domain.CustomerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active customers: %w", err)
	}
	leads, err := s.customerRepo.CountByStatus(ctx, domain.CustomerStatusLead)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	proposalsByStatus, err := s.proposalRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}
	pipelineValue, err := s.proposalRepo.SumAmountByStatus(ctx, domain.ProposalStatusSent)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pipeline: %w", err)
	}
	acceptedValue, err := s.proposalRepo.SumAmountByStatus(ctx, domain.ProposalStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to sum accepted proposals: %w", err)
	}

	upcomingShoots, err := s.shootRepo.ListUpcoming(ctx, today, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shoots: %w", err)
	}
	shootDTOs := make([]domain.ShootDTO, len(upcomingShoots))
	for i, shoot := range upcomingShoots {
		shootDTOs[i] = mapper.ToShootDTO(&shoot)
	}

	openTasks, err := s.taskRepo.CountOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}
	overdueTasks, err := s.taskRepo.CountOverdue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	monthIncome, err := s.incomeRepo.SumRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month income: %w", err)
	}
	monthExpenses, err := s.expenseRepo.SumRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month expenses: %w", err)
	}

	return &domain.DashboardMetrics{
		TotalCustomers:    totalCustomers,
		ActiveCustomers:   activeCustomers,
		Leads:             leads,
		OpenProposals:     proposalsByStatus[domain.ProposalStatusSent],
		AcceptedProposals: proposalsByStatus[domain.ProposalStatusAccepted],
		PipelineValue:     pipelineValue,
		AcceptedValue:     acceptedValue,
		UpcomingShoots:    shootDTOs,
		OpenTasks:         openTasks,
		OverdueTasks:      overdueTasks,
		MonthIncome:       monthIncome,
		MonthExpenses:     monthExpenses,
		ProposalsByStatus: proposalsByStatus,
	}, nil
}

// GetSummary produces the AI narrative over the current metrics
func (s *DashboardService) GetSummary(ctx context.Context) (string, error) {
	metrics, err := s.GetMetrics(ctx)
	if err != nil {
		return "", err
	}

	summary, err := s.generator.GenerateDashboardSummary(ctx, metrics)
	if err != nil {
		return "", err
	}
	return summary, nil
}
