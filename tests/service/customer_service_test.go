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

func setupCustomerService(t *testing.T) (*service.CustomerService, *gorm.DB) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })

	svc := service.NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewInteractionRepository(db),
		repository.NewProposalRepository(db),
		repository.NewShootRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestCustomerService_CreateAndUpdate(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateCustomerRequest{
		Name:  "Fjordlys Video",
		Email: "hei@fjordlys.example",
		Tags:  []string{"b2b"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusLead, created.Status)
	assert.Equal(t, []string{"b2b"}, created.Tags)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateCustomerRequest{
		Name:   "Fjordlys Video AS",
		Email:  "post@fjordlys.example",
		Status: "active",
		Tags:   []string{"b2b", "retainer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fjordlys Video AS", updated.Name)
	assert.Equal(t, domain.CustomerStatusActive, updated.Status)
	assert.Len(t, updated.Tags, 2)

	_, err = svc.Update(ctx, uuid.New(), &domain.UpdateCustomerRequest{Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCustomerService_GetTimeline(t *testing.T) {
	svc, db := setupCustomerService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Tidslinje Kunde")

	proposalRepo := repository.NewProposalRepository(db)
	require.NoError(t, proposalRepo.Create(ctx, &domain.Proposal{
		CustomerID:   customer.ID,
		ProjectTitle: "Nytt tilbud",
		Status:       domain.ProposalStatusDraft,
		Currency:     "EUR",
	}))

	oldShootDate := time.Now().AddDate(0, -2, 0)
	testutil.CreateTestShoot(t, db, customer.ID, "Gammel shoot", &oldShootDate)

	_, err := svc.CreateInteraction(ctx, customer.ID, &domain.CreateInteractionRequest{
		Type:    "call",
		Content: "Oppfølgingssamtale",
		Date:    time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
	})
	require.NoError(t, err)

	entries, err := svc.GetTimeline(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first: proposal created now, then last month's call, then
	// the shoot two months back
	assert.Equal(t, domain.TimelineEntryProposal, entries[0].Type)
	assert.Equal(t, domain.TimelineEntryInteraction, entries[1].Type)
	assert.Equal(t, domain.TimelineEntryShoot, entries[2].Type)
	assert.Equal(t, "Gammel shoot", entries[2].Title)

	_, err = svc.GetTimeline(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCustomerService_PortalCredentials(t *testing.T) {
	svc, db := setupCustomerService(t)
	ctx := context.Background()
	customerRepo := repository.NewCustomerRepository(db)

	customer := testutil.CreateTestCustomer(t, db, "Portalkunde")

	t.Run("rotate issues token and pin", func(t *testing.T) {
		token, pin, err := svc.RotatePortalCredentials(ctx, customer.ID)
		require.NoError(t, err)
		assert.Len(t, token, 64)
		assert.Len(t, pin, 4)

		stored, err := customerRepo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PortalToken)
		assert.Equal(t, token, *stored.PortalToken)
		require.NotNil(t, stored.PortalPIN)
		assert.Equal(t, pin, *stored.PortalPIN)
	})

	t.Run("rotation invalidates the old token", func(t *testing.T) {
		first, _, err := svc.RotatePortalCredentials(ctx, customer.ID)
		require.NoError(t, err)
		second, _, err := svc.RotatePortalCredentials(ctx, customer.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		_, err = customerRepo.GetByPortalToken(ctx, first)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("revoke clears both credentials", func(t *testing.T) {
		require.NoError(t, svc.RevokePortalAccess(ctx, customer.ID))

		stored, err := customerRepo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.PortalToken)
		assert.Nil(t, stored.PortalPIN)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, _, err := svc.RotatePortalCredentials(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
		err = svc.RevokePortalAccess(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}

func TestCustomerService_Interactions(t *testing.T) {
	svc, db := setupCustomerService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Interaksjonskunde")

	created, err := svc.CreateInteraction(ctx, customer.ID, &domain.CreateInteractionRequest{
		Type:    "meeting",
		Content: "Oppstartsmøte",
		Date:    "2026-08-20",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InteractionTypeMeeting, created.Type)

	t.Run("defaults to today without a date", func(t *testing.T) {
		dto, err := svc.CreateInteraction(ctx, customer.ID, &domain.CreateInteractionRequest{
			Type:    "note",
			Content: "Notat uten dato",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, dto.Date)
	})

	t.Run("listing returns the customer's interactions", func(t *testing.T) {
		interactions, err := svc.ListInteractions(ctx, customer.ID)
		require.NoError(t, err)
		assert.Len(t, interactions, 2)
	})

	t.Run("delete removes and reports missing", func(t *testing.T) {
		require.NoError(t, svc.DeleteInteraction(ctx, created.ID))
		err := svc.DeleteInteraction(ctx, created.ID)
		assert.ErrorIs(t, err, service.ErrInteractionNotFound)
	})

	t.Run("interactions require an existing customer", func(t *testing.T) {
		_, err := svc.CreateInteraction(ctx, uuid.New(), &domain.CreateInteractionRequest{
			Type: "note", Content: "x",
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}
