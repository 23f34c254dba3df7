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

func setupProposalService(t *testing.T) (*service.ProposalService, *gorm.DB) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })

	svc := service.NewProposalService(
		repository.NewProposalRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewIncomeRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestProposalService_Create(t *testing.T) {
	svc, db := setupProposalService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Filmkunde")

	t.Run("creates a draft with a calculated total", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateProposalRequest{
			CustomerID:   customer.ID,
			ProjectTitle: "Rekrutteringsfilm",
			TaxRate:      25,
			Items: []domain.ProposalItemRequest{
				{Description: "Opptaksdag", Quantity: 2, UnitPrice: 10000},
				{Description: "Klipp", Quantity: 1, UnitPrice: 8000},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.ProposalStatusDraft, dto.Status)
		assert.Equal(t, domain.PaymentStatusPending, dto.PaymentStatus)
		// (2*10000 + 8000) * 1.25
		assert.Equal(t, 35000.0, dto.TotalAmount)
		assert.Equal(t, "EUR", dto.Currency)
		require.Len(t, dto.Items, 2)
		assert.Equal(t, "Opptaksdag", dto.Items[0].Description)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateProposalRequest{
			CustomerID:   uuid.New(),
			ProjectTitle: "Spøkelsesfilm",
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})

	t.Run("bad validity date is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateProposalRequest{
			CustomerID:   customer.ID,
			ProjectTitle: "Datotest",
			ValidUntil:   "31-12-2026",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestProposalService_Update(t *testing.T) {
	svc, db := setupProposalService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Redigeringskunde")

	draft, err := svc.Create(ctx, &domain.CreateProposalRequest{
		CustomerID:   customer.ID,
		ProjectTitle: "Original tittel",
		Items: []domain.ProposalItemRequest{
			{Description: "Gammel post", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	t.Run("draft update replaces items and recalculates", func(t *testing.T) {
		updated, err := svc.Update(ctx, draft.ID, &domain.UpdateProposalRequest{
			ProjectTitle: "Ny tittel",
			TaxRate:      10,
			Items: []domain.ProposalItemRequest{
				{Description: "Ny post A", Quantity: 1, UnitPrice: 1000},
				{Description: "Ny post B", Quantity: 2, UnitPrice: 500},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Ny tittel", updated.ProjectTitle)
		// (1000 + 2*500) * 1.10
		assert.InDelta(t, 2200.0, updated.TotalAmount, 0.001)
		require.Len(t, updated.Items, 2)
		assert.Equal(t, "Ny post A", updated.Items[0].Description)
	})

	t.Run("sent proposal is not editable", func(t *testing.T) {
		_, err := svc.Send(ctx, draft.ID)
		require.NoError(t, err)

		_, err = svc.Update(ctx, draft.ID, &domain.UpdateProposalRequest{
			ProjectTitle: "For sent",
		})
		assert.ErrorIs(t, err, service.ErrProposalNotEditable)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), &domain.UpdateProposalRequest{ProjectTitle: "x"})
		assert.ErrorIs(t, err, service.ErrProposalNotFound)
	})
}

func TestProposalService_Lifecycle(t *testing.T) {
	svc, db := setupProposalService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Livssykluskunde")
	create := func(title string) *domain.ProposalDTO {
		dto, err := svc.Create(ctx, &domain.CreateProposalRequest{
			CustomerID:   customer.ID,
			ProjectTitle: title,
			Items: []domain.ProposalItemRequest{
				{Description: "Produksjon", Quantity: 1, UnitPrice: 5000},
			},
		})
		require.NoError(t, err)
		return dto
	}

	t.Run("send stamps sent_at and a default validity window", func(t *testing.T) {
		draft := create("Sendes")

		sent, err := svc.Send(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusSent, sent.Status)
		require.NotNil(t, sent.SentAt)
		require.NotNil(t, sent.ValidUntil)

		validUntil, err := time.Parse("2006-01-02", *sent.ValidUntil)
		require.NoError(t, err)
		wantDay := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
		assert.Equal(t, wantDay, validUntil.Format("2006-01-02"))
	})

	t.Run("send keeps an explicit validity date", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateProposalRequest{
			CustomerID:   customer.ID,
			ProjectTitle: "Egen frist",
			ValidUntil:   "2026-12-24",
		})
		require.NoError(t, err)

		sent, err := svc.Send(ctx, dto.ID)
		require.NoError(t, err)
		require.NotNil(t, sent.ValidUntil)
		assert.Equal(t, "2026-12-24", *sent.ValidUntil)
	})

	t.Run("accept requires sent", func(t *testing.T) {
		draft := create("Aksepteres")

		_, err := svc.Accept(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)

		_, err = svc.Send(ctx, draft.ID)
		require.NoError(t, err)

		accepted, err := svc.Accept(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusAccepted, accepted.Status)

		// No transition out of accepted via decline
		_, err = svc.Decline(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("decline requires sent", func(t *testing.T) {
		draft := create("Avslås")
		_, err := svc.Send(ctx, draft.ID)
		require.NoError(t, err)

		declined, err := svc.Decline(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusDeclined, declined.Status)
	})

	t.Run("double send is rejected", func(t *testing.T) {
		draft := create("Dobbel")
		_, err := svc.Send(ctx, draft.ID)
		require.NoError(t, err)
		_, err = svc.Send(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})
}

func TestProposalService_MarkPaid(t *testing.T) {
	svc, db := setupProposalService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Betalende Kunde")
	incomeRepo := repository.NewIncomeRepository(db)

	draft, err := svc.Create(ctx, &domain.CreateProposalRequest{
		CustomerID:   customer.ID,
		ProjectTitle: "Betalt prosjekt",
		Items: []domain.ProposalItemRequest{
			{Description: "Alt inkludert", Quantity: 1, UnitPrice: 12500},
		},
	})
	require.NoError(t, err)

	t.Run("requires accepted status", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrProposalNotAccepted)
	})

	_, err = svc.Send(ctx, draft.ID)
	require.NoError(t, err)
	_, err = svc.Accept(ctx, draft.ID)
	require.NoError(t, err)

	t.Run("records payment and income", func(t *testing.T) {
		paid, err := svc.MarkPaid(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
		require.NotNil(t, paid.PaidAt)

		income, err := incomeRepo.GetByProposalID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 12500.0, income.Amount)
		assert.Equal(t, domain.IncomeSourceProposal, income.Source)
	})

	t.Run("second payment is rejected", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrAlreadyPaid)
	})
}

func TestProposalService_ExpireOverdue(t *testing.T) {
	svc, db := setupProposalService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Utløpskunde")
	proposalRepo := repository.NewProposalRepository(db)

	dto, err := svc.Create(ctx, &domain.CreateProposalRequest{
		CustomerID:   customer.ID,
		ProjectTitle: "Gammelt tilbud",
	})
	require.NoError(t, err)
	_, err = svc.Send(ctx, dto.ID)
	require.NoError(t, err)

	// Backdate the validity window past its deadline
	stored, err := proposalRepo.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	past := time.Now().AddDate(0, 0, -1)
	stored.ValidUntil = &past
	stored.Customer = nil
	stored.Items = nil
	require.NoError(t, proposalRepo.Update(ctx, stored))

	count, err := svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	expired, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusExpired, expired.Status)
}
