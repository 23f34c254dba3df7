package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/internal/service"
	"github.com/framelight/studio-api/tests/testutil"
)

func setupFinanceService(t *testing.T) (*service.FinanceService, *gorm.DB) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })

	svc := service.NewFinanceService(
		repository.NewExpenseRepository(db),
		repository.NewIncomeRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestFinanceService_Expenses(t *testing.T) {
	svc, _ := setupFinanceService(t)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, &domain.CreateExpenseRequest{
		Amount:      1500,
		Category:    "equipment",
		Description: "ND filter set",
		Date:        "2026-09-05",
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, created.Amount)

	t.Run("update", func(t *testing.T) {
		updated, err := svc.UpdateExpense(ctx, created.ID, &domain.CreateExpenseRequest{
			Amount:   1800,
			Category: "equipment",
			Date:     "2026-09-06",
		})
		require.NoError(t, err)
		assert.Equal(t, 1800.0, updated.Amount)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, &domain.CreateExpenseRequest{
			Amount: 1, Category: "misc", Date: "05.09.2026",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("delete and not found", func(t *testing.T) {
		require.NoError(t, svc.DeleteExpense(ctx, created.ID))
		err := svc.DeleteExpense(ctx, created.ID)
		assert.ErrorIs(t, err, service.ErrExpenseNotFound)
	})
}

func TestFinanceService_ManualIncome(t *testing.T) {
	svc, _ := setupFinanceService(t)
	ctx := context.Background()

	created, err := svc.CreateIncome(ctx, &domain.CreateIncomeRequest{
		Amount:      5000,
		Category:    "stock footage",
		Description: "License sale",
		Date:        "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IncomeSourceManual, created.Source)

	updated, err := svc.UpdateIncome(ctx, created.ID, &domain.CreateIncomeRequest{
		Amount: 5500, Category: "stock footage", Date: "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 5500.0, updated.Amount)

	require.NoError(t, svc.DeleteIncome(ctx, created.ID))
	err = svc.DeleteIncome(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrIncomeNotFound)
}

func TestFinanceService_ProposalIncomeIsReadOnly(t *testing.T) {
	svc, db := setupFinanceService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Inntektskunde")
	proposalRepo := repository.NewProposalRepository(db)
	proposal := &domain.Proposal{
		CustomerID:   customer.ID,
		ProjectTitle: "Betalt jobb",
		Status:       domain.ProposalStatusAccepted,
		TotalAmount:  9000,
		Currency:     "EUR",
	}
	require.NoError(t, proposalRepo.Create(ctx, proposal))

	incomeRepo := repository.NewIncomeRepository(db)
	linked := &domain.Income{
		Amount:     9000,
		Source:     domain.IncomeSourceProposal,
		Category:   "production",
		Date:       time.Now(),
		ProposalID: &proposal.ID,
	}
	require.NoError(t, incomeRepo.Create(ctx, linked))

	_, err := svc.UpdateIncome(ctx, linked.ID, &domain.CreateIncomeRequest{
		Amount: 1, Date: "2026-09-01",
	})
	assert.ErrorIs(t, err, service.ErrIncomeLinkedToProposal)

	err = svc.DeleteIncome(ctx, linked.ID)
	assert.ErrorIs(t, err, service.ErrIncomeLinkedToProposal)

	// Still there
	_, err = incomeRepo.GetByID(ctx, linked.ID)
	require.NoError(t, err)

	err = svc.DeleteIncome(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrIncomeNotFound)
}

func TestFinanceService_GetSummary(t *testing.T) {
	svc, _ := setupFinanceService(t)
	ctx := context.Background()

	mkExpense := func(amount float64, category, date string) {
		_, err := svc.CreateExpense(ctx, &domain.CreateExpenseRequest{
			Amount: amount, Category: category, Date: date,
		})
		require.NoError(t, err)
	}
	mkIncome := func(amount float64, category, date string) {
		_, err := svc.CreateIncome(ctx, &domain.CreateIncomeRequest{
			Amount: amount, Category: category, Date: date,
		})
		require.NoError(t, err)
	}

	mkIncome(10000, "production", "2026-09-02")
	mkIncome(2000, "licensing", "2026-09-15")
	mkExpense(3000, "equipment", "2026-09-03")
	mkExpense(500, "travel", "2026-09-20")
	// Outside the period
	mkIncome(99999, "production", "2026-10-01")
	mkExpense(99999, "equipment", "2026-08-31")

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	summary, err := svc.GetSummary(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, 12000.0, summary.TotalIncome)
	assert.Equal(t, 3500.0, summary.TotalExpenses)
	assert.Equal(t, 8500.0, summary.Net)
	assert.Equal(t, 10000.0, summary.IncomeByCategory["production"])
	assert.Equal(t, 2000.0, summary.IncomeByCategory["licensing"])
	assert.Equal(t, 3000.0, summary.ExpenseByCategory["equipment"])
	assert.Equal(t, 500.0, summary.ExpenseByCategory["travel"])
}
