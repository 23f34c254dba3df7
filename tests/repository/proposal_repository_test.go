package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/tests/testutil"
)

func createProposal(t *testing.T, repo *repository.ProposalRepository, customerID uuid.UUID, title string, status domain.ProposalStatus, total float64) *domain.Proposal {
	proposal := &domain.Proposal{
		CustomerID:   customerID,
		ProjectTitle: title,
		Status:       status,
		TotalAmount:  total,
		Currency:     "EUR",
	}
	require.NoError(t, repo.Create(context.Background(), proposal))
	return proposal
}

func TestProposalRepository_GetByID(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewProposalRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Nordlys Media")
	proposal := createProposal(t, repo, customer.ID, "Brand film", domain.ProposalStatusDraft, 0)

	// Items created out of order to verify the preload ordering
	items := []domain.ProposalItem{
		{Description: "Editing", Quantity: 2, UnitPrice: 500},
		{Description: "Shooting day", Quantity: 1, UnitPrice: 1200},
		{Description: "Color grade", Quantity: 1, UnitPrice: 300},
	}
	require.NoError(t, repo.ReplaceItems(ctx, proposal.ID, items, 2500))

	found, err := repo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brand film", found.ProjectTitle)
	assert.Equal(t, 2500.0, found.TotalAmount)

	require.NotNil(t, found.Customer)
	assert.Equal(t, "Nordlys Media", found.Customer.Name)

	require.Len(t, found.Items, 3)
	assert.Equal(t, "Editing", found.Items[0].Description)
	assert.Equal(t, "Shooting day", found.Items[1].Description)
	assert.Equal(t, "Color grade", found.Items[2].Description)
	assert.Equal(t, 0, found.Items[0].OrderIndex)
	assert.Equal(t, 2, found.Items[2].OrderIndex)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProposalRepository_ReplaceItems(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewProposalRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Fjord Hotels")
	proposal := createProposal(t, repo, customer.ID, "Promo video", domain.ProposalStatusDraft, 0)

	first := []domain.ProposalItem{
		{Description: "Old item A", Quantity: 1, UnitPrice: 100},
		{Description: "Old item B", Quantity: 1, UnitPrice: 200},
	}
	require.NoError(t, repo.ReplaceItems(ctx, proposal.ID, first, 300))

	second := []domain.ProposalItem{
		{Description: "New item", Quantity: 3, UnitPrice: 150},
	}
	require.NoError(t, repo.ReplaceItems(ctx, proposal.ID, second, 450))

	found, err := repo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "New item", found.Items[0].Description)
	assert.Equal(t, 450.0, found.TotalAmount)

	// Replacing with an empty set clears everything
	require.NoError(t, repo.ReplaceItems(ctx, proposal.ID, nil, 0))
	found, err = repo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
	assert.Equal(t, 0.0, found.TotalAmount)
}

func TestProposalRepository_MarkExpired(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewProposalRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Bergen Eiendom")
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 14)

	expired := createProposal(t, repo, customer.ID, "Expired offer", domain.ProposalStatusSent, 1000)
	expired.ValidUntil = &past
	require.NoError(t, repo.Update(ctx, expired))

	stillValid := createProposal(t, repo, customer.ID, "Valid offer", domain.ProposalStatusSent, 1000)
	stillValid.ValidUntil = &future
	require.NoError(t, repo.Update(ctx, stillValid))

	// Draft proposals never expire even with a past validity date
	draft := createProposal(t, repo, customer.ID, "Draft offer", domain.ProposalStatusDraft, 1000)
	draft.ValidUntil = &past
	require.NoError(t, repo.Update(ctx, draft))

	noDeadline := createProposal(t, repo, customer.ID, "Open ended", domain.ProposalStatusSent, 1000)

	affected, err := repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	check := func(id uuid.UUID, want domain.ProposalStatus) {
		t.Helper()
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}
	check(expired.ID, domain.ProposalStatusExpired)
	check(stillValid.ID, domain.ProposalStatusSent)
	check(draft.ID, domain.ProposalStatusDraft)
	check(noDeadline.ID, domain.ProposalStatusSent)

	// Second run finds nothing left to expire
	affected, err = repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestProposalRepository_List(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewProposalRepository(db)
	ctx := context.Background()

	alpha := testutil.CreateTestCustomer(t, db, "Alpha Film")
	beta := testutil.CreateTestCustomer(t, db, "Beta Studio")

	createProposal(t, repo, alpha.ID, "Alpha draft", domain.ProposalStatusDraft, 500)
	createProposal(t, repo, alpha.ID, "Alpha sent", domain.ProposalStatusSent, 800)
	createProposal(t, repo, beta.ID, "Beta sent", domain.ProposalStatusSent, 1200)

	t.Run("no filters returns everything", func(t *testing.T) {
		proposals, total, err := repo.List(ctx, 1, 20, "", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, proposals, 3)
	})

	t.Run("filters by status", func(t *testing.T) {
		proposals, total, err := repo.List(ctx, 1, 20, "sent", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, p := range proposals {
			assert.Equal(t, domain.ProposalStatusSent, p.Status)
		}
	})

	t.Run("filters by customer", func(t *testing.T) {
		proposals, total, err := repo.List(ctx, 1, 20, "", &beta.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, proposals, 1)
		assert.Equal(t, "Beta sent", proposals[0].ProjectTitle)
	})

	t.Run("paginates", func(t *testing.T) {
		proposals, total, err := repo.List(ctx, 2, 2, "", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, proposals, 1)
	})
}

func TestProposalRepository_Aggregates(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewProposalRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Vestland Kommune")

	createProposal(t, repo, customer.ID, "One", domain.ProposalStatusSent, 1000)
	createProposal(t, repo, customer.ID, "Two", domain.ProposalStatusSent, 2500)
	createProposal(t, repo, customer.ID, "Three", domain.ProposalStatusAccepted, 4000)
	createProposal(t, repo, customer.ID, "Four", domain.ProposalStatusDraft, 999)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.ProposalStatusSent])
	assert.Equal(t, 1, counts[domain.ProposalStatusAccepted])
	assert.Equal(t, 1, counts[domain.ProposalStatusDraft])
	assert.Equal(t, 0, counts[domain.ProposalStatusDeclined])

	sum, err := repo.SumAmountByStatus(ctx, domain.ProposalStatusSent)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, sum)

	// No declined proposals, COALESCE keeps this at zero
	sum, err = repo.SumAmountByStatus(ctx, domain.ProposalStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum)
}
