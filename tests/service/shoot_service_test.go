package service_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/internal/service"
	"github.com/framelight/studio-api/internal/storage"
	"github.com/framelight/studio-api/tests/testutil"
)

func setupShootService(t *testing.T) (*service.ShootService, *gorm.DB) {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := service.NewShootService(
		repository.NewShootRepository(db),
		repository.NewDeliverableRepository(db),
		repository.NewCustomerRepository(db),
		store,
		zap.NewNop(),
	)
	return svc, db
}

func createShoot(t *testing.T, svc *service.ShootService, customerID uuid.UUID, title string) *domain.ShootDTO {
	t.Helper()
	dto, err := svc.Create(context.Background(), &domain.CreateShootRequest{
		CustomerID: customerID,
		Title:      title,
		ShootDate:  "2026-10-15",
		Location:   "Studio A",
	})
	require.NoError(t, err)
	return dto
}

func TestShootService_Create(t *testing.T) {
	svc, db := setupShootService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Nordlys Media")

	t.Run("creates shoot with planned default status", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateShootRequest{
			CustomerID: customer.ID,
			Title:      "Brand film day one",
			ShootDate:  "2026-11-02",
			ShootTime:  "09:00",
			Location:   "Harbour",
			Equipment:  []string{"FX6", "Drone"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ShootStatusPlanned, dto.Status)
		require.NotNil(t, dto.ShootDate)
		assert.Equal(t, "2026-11-02", *dto.ShootDate)
		assert.Equal(t, []string{"FX6", "Drone"}, dto.Equipment)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateShootRequest{
			CustomerID: uuid.New(),
			Title:      "Orphan shoot",
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateShootRequest{
			CustomerID: customer.ID,
			Title:      "Bad date",
			ShootDate:  "02.11.2026",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestShootService_Scenes(t *testing.T) {
	svc, db := setupShootService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Fjordbruk")
	shoot := createShoot(t, svc, customer.ID, "Product launch")

	t.Run("scene numbers auto increment when omitted", func(t *testing.T) {
		first, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{
			Description: "Opening drone pass",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, first.SceneNumber)

		second, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{
			Description: "Interview wide",
			Angle:       "wide",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, second.SceneNumber)
	})

	t.Run("explicit scene number is kept and continues the sequence", func(t *testing.T) {
		explicit, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{
			SceneNumber: 10,
			Description: "Closing shot",
		})
		require.NoError(t, err)
		assert.Equal(t, 10, explicit.SceneNumber)

		next, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{
			Description: "Pickup",
		})
		require.NoError(t, err)
		assert.Equal(t, 11, next.SceneNumber)
	})

	t.Run("unknown shoot is rejected", func(t *testing.T) {
		_, err := svc.AddScene(ctx, uuid.New(), &domain.CreateSceneRequest{Description: "nowhere"})
		assert.ErrorIs(t, err, service.ErrShootNotFound)
	})
}

func TestShootService_UpdateScene(t *testing.T) {
	svc, db := setupShootService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Bre og Fjell")
	shoot := createShoot(t, svc, customer.ID, "Documentary b-roll")
	scene, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{
		Description: "Glacier timelapse",
		Angle:       "static",
		Duration:    "30s",
	})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		updated, err := svc.UpdateScene(ctx, scene.ID, &domain.UpdateSceneRequest{
			Angle: strPtr("low angle"),
		})
		require.NoError(t, err)
		assert.Equal(t, "low angle", updated.Angle)
		assert.Equal(t, "Glacier timelapse", updated.Description)
		assert.Equal(t, "30s", updated.Duration)
		assert.Equal(t, 1, updated.SceneNumber)
	})

	t.Run("scene number can be renumbered", func(t *testing.T) {
		number := 5
		updated, err := svc.UpdateScene(ctx, scene.ID, &domain.UpdateSceneRequest{
			SceneNumber: &number,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.SceneNumber)
	})

	t.Run("unknown scene returns not found", func(t *testing.T) {
		_, err := svc.UpdateScene(ctx, uuid.New(), &domain.UpdateSceneRequest{Angle: strPtr("x")})
		assert.ErrorIs(t, err, service.ErrSceneNotFound)
	})
}

func TestShootService_ToggleAndDeleteScene(t *testing.T) {
	svc, db := setupShootService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Havvind")
	shoot := createShoot(t, svc, customer.ID, "Turbine inspection")
	scene, err := svc.AddScene(ctx, shoot.ID, &domain.CreateSceneRequest{Description: "Blade close-up"})
	require.NoError(t, err)

	t.Run("toggle flips completion both ways", func(t *testing.T) {
		toggled, err := svc.ToggleScene(ctx, scene.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsCompleted)

		toggled, err = svc.ToggleScene(ctx, scene.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IsCompleted)
	})

	t.Run("toggle on unknown scene fails", func(t *testing.T) {
		_, err := svc.ToggleScene(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrSceneNotFound)
	})

	t.Run("delete removes the scene", func(t *testing.T) {
		require.NoError(t, svc.DeleteScene(ctx, scene.ID))
		_, err := svc.ToggleScene(ctx, scene.ID)
		assert.ErrorIs(t, err, service.ErrSceneNotFound)
	})

	t.Run("delete on unknown scene fails", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteScene(ctx, uuid.New()), service.ErrSceneNotFound)
	})
}

func TestShootService_Deliverables(t *testing.T) {
	svc, db := setupShootService(t)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Tind Eiendom")
	shoot := createShoot(t, svc, customer.ID, "Apartment walkthrough")

	t.Run("upload stores the file and records metadata", func(t *testing.T) {
		payload := []byte("fake mp4 bytes for the walkthrough cut")
		dto, err := svc.UploadDeliverable(ctx, shoot.ID, "Final cut", "walkthrough.mp4", "video/mp4", bytes.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, domain.DeliverableTypeVideo, dto.Type)
		assert.Equal(t, "walkthrough.mp4", dto.FileName)
		assert.Equal(t, int64(len(payload)), dto.FileSize)
		assert.True(t, dto.HasFile)

		deliverable, reader, err := svc.DownloadDeliverable(ctx, dto.ID)
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		assert.Equal(t, "video/mp4", deliverable.ContentType)
	})

	t.Run("link deliverable has no file to download", func(t *testing.T) {
		dto, err := svc.AddDeliverable(ctx, shoot.ID, &domain.CreateDeliverableRequest{
			Type:  "video",
			Title: "Review link",
			URL:   "https://vimeo.com/review/123",
		})
		require.NoError(t, err)
		assert.False(t, dto.HasFile)

		_, _, err = svc.DownloadDeliverable(ctx, dto.ID)
		assert.ErrorIs(t, err, service.ErrDeliverableNotFound)
	})

	t.Run("list scopes to the shoot", func(t *testing.T) {
		other := createShoot(t, svc, customer.ID, "Second listing")
		dtos, err := svc.ListDeliverables(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, dtos)

		dtos, err = svc.ListDeliverables(ctx, shoot.ID)
		require.NoError(t, err)
		assert.Len(t, dtos, 2)
	})

	t.Run("delete removes record and stored file", func(t *testing.T) {
		dto, err := svc.UploadDeliverable(ctx, shoot.ID, "Teaser", "teaser.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg")))
		require.NoError(t, err)
		assert.Equal(t, domain.DeliverableTypePhoto, dto.Type)

		require.NoError(t, svc.DeleteDeliverable(ctx, dto.ID))
		_, _, err = svc.DownloadDeliverable(ctx, dto.ID)
		assert.ErrorIs(t, err, service.ErrDeliverableNotFound)
	})

	t.Run("delete on unknown deliverable fails", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteDeliverable(ctx, uuid.New()), service.ErrDeliverableNotFound)
	})
}
