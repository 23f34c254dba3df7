package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// FinanceService manages expenses and income entries. Income rows
// written by proposal payment are read-only here.
type FinanceService struct {
	expenseRepo *repository.ExpenseRepository
	incomeRepo  *repository.IncomeRepository
	logger      *zap.Logger
}

func NewFinanceService(
	expenseRepo *repository.ExpenseRepository,
	incomeRepo *repository.IncomeRepository,
	logger *zap.Logger,
) *FinanceService {
	return &FinanceService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		logger:      logger,
	}
}

func (s *FinanceService) CreateExpense(ctx context.Context, req *domain.CreateExpenseRequest) (*domain.ExpenseDTO, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	expense := &domain.Expense{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *FinanceService) UpdateExpense(ctx context.Context, id uuid.UUID, req *domain.CreateExpenseRequest) (*domain.ExpenseDTO, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	expense.Amount = req.Amount
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Date = date

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	dto := mapper.ToExpenseDTO(expense)
	return &dto, nil
}

func (s *FinanceService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *FinanceService) ListExpenses(ctx context.Context, from, to time.Time) ([]domain.ExpenseDTO, error) {
	expenses, err := s.expenseRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	dtos := make([]domain.ExpenseDTO, len(expenses))
	for i, expense := range expenses {
		dtos[i] = mapper.ToExpenseDTO(&expense)
	}
	return dtos, nil
}

// CreateIncome records a manual income entry
func (s *FinanceService) CreateIncome(ctx context.Context, req *domain.CreateIncomeRequest) (*domain.IncomeDTO, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	income := &domain.Income{
		Amount:      req.Amount,
		Source:      domain.IncomeSourceManual,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}

	if err := s.incomeRepo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	dto := mapper.ToIncomeDTO(income)
	return &dto, nil
}

func (s *FinanceService) UpdateIncome(ctx context.Context, id uuid.UUID, req *domain.CreateIncomeRequest) (*domain.IncomeDTO, error) {
	income, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	if income.Source == domain.IncomeSourceProposal {
		return nil, ErrIncomeLinkedToProposal
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	income.Amount = req.Amount
	income.Category = req.Category
	income.Description = req.Description
	income.Date = date

	if err := s.incomeRepo.Update(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	dto := mapper.ToIncomeDTO(income)
	return &dto, nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	income, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncomeNotFound
		}
		return fmt.Errorf("failed to get income: %w", err)
	}

	if income.Source == domain.IncomeSourceProposal {
		return ErrIncomeLinkedToProposal
	}

	if err := s.incomeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

func (s *FinanceService) ListIncomes(ctx context.Context, from, to time.Time) ([]domain.IncomeDTO, error) {
	incomes, err := s.incomeRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}

	dtos := make([]domain.IncomeDTO, len(incomes))
	for i, income := range incomes {
		dtos[i] = mapper.ToIncomeDTO(&income)
	}
	return dtos, nil
}

// GetSummary aggregates income and expense totals with per-category
// breakdowns for a period
func (s *FinanceService) GetSummary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error) {
	totalIncome, err := s.incomeRepo.SumRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum incomes: %w", err)
	}
	totalExpenses, err := s.expenseRepo.SumRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	incomeByCategory, err := s.incomeRepo.SumByCategory(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group incomes: %w", err)
	}
	expenseByCategory, err := s.expenseRepo.SumByCategory(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses: %w", err)
	}

	return &domain.FinanceSummary{
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		Net:               totalIncome - totalExpenses,
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
	}, nil
}
