package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/tests/testutil"
)

func TestCustomerRepository_CRUD(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	customer := &domain.Customer{
		Name:    "Solvik Reklame",
		Company: "Solvik Reklame AS",
		Email:   "post@solvik.example",
		Status:  domain.CustomerStatusLead,
		Tags:    []string{"agency", "repeat"},
	}
	require.NoError(t, repo.Create(ctx, customer))
	require.NotEqual(t, uuid.Nil, customer.ID)

	found, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solvik Reklame", found.Name)
	assert.ElementsMatch(t, []string{"agency", "repeat"}, []string(found.Tags))

	found.Status = domain.CustomerStatusActive
	found.Notes = "Upgraded after first project"
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusActive, updated.Status)
	assert.Equal(t, "Upgraded after first project", updated.Notes)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	_, err = repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepository_GetByPortalToken(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Portal Kunde")
	token := "f3a9c1d2e4b5a6978877665544332211"
	customer.PortalToken = &token
	require.NoError(t, repo.Update(ctx, customer))

	found, err := repo.GetByPortalToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	_, err = repo.GetByPortalToken(ctx, "not-a-real-token")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A customer without a token must not match an empty lookup
	testutil.CreateTestCustomer(t, db, "Ingen Portal")
	_, err = repo.GetByPortalToken(ctx, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepository_List(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	create := func(name, company, email string, status domain.CustomerStatus) {
		c := &domain.Customer{Name: name, Company: company, Email: email, Status: status}
		require.NoError(t, repo.Create(ctx, c))
	}

	create("Havbris Seafood", "Havbris AS", "kontakt@havbris.example", domain.CustomerStatusActive)
	create("Fjelltopp Sport", "Fjelltopp AS", "hei@fjelltopp.example", domain.CustomerStatusLead)
	create("Byliv Kafe", "Byliv Drift AS", "post@byliv.example", domain.CustomerStatusPassive)

	t.Run("search matches name case insensitively", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 1, 20, "havbris", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, customers, 1)
		assert.Equal(t, "Havbris Seafood", customers[0].Name)
	})

	t.Run("search matches email", func(t *testing.T) {
		_, total, err := repo.List(ctx, 1, 20, "post@byliv", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("status filter", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 1, 20, "", "lead", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, customers, 1)
		assert.Equal(t, domain.CustomerStatusLead, customers[0].Status)
	})

	t.Run("tag filter matches exact tags", func(t *testing.T) {
		tagged := &domain.Customer{
			Name:   "Tagget Kunde",
			Email:  "tag@example.com",
			Status: domain.CustomerStatusActive,
			Tags:   []string{"agency", "retainer"},
		}
		require.NoError(t, repo.Create(ctx, tagged))

		customers, total, err := repo.List(ctx, 1, 20, "", "", "retainer")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, customers, 1)
		assert.Equal(t, "Tagget Kunde", customers[0].Name)

		// Partial tag text does not match
		_, total, err = repo.List(ctx, 1, 20, "", "", "retain")
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)

		require.NoError(t, repo.Delete(ctx, tagged.ID))
	})

	t.Run("search and status combine", func(t *testing.T) {
		_, total, err := repo.List(ctx, 1, 20, "havbris", "lead", "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("pagination caps the page", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 1, 2, "", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, customers, 2)
	})
}

func TestCustomerRepository_CountByStatus(t *testing.T) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	testutil.CreateTestCustomer(t, db, "Aktiv En")
	testutil.CreateTestCustomer(t, db, "Aktiv To")
	lead := &domain.Customer{Name: "Ny Lead", Email: "lead@example.com", Status: domain.CustomerStatusLead}
	require.NoError(t, repo.Create(ctx, lead))

	active, err := repo.CountByStatus(ctx, domain.CustomerStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	leads, err := repo.CountByStatus(ctx, domain.CustomerStatusLead)
	require.NoError(t, err)
	assert.Equal(t, 1, leads)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
