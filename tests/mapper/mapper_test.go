package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
)

func TestCalculateProposalTotal(t *testing.T) {
	items := []domain.ProposalItem{
		{Description: "Shooting day", Quantity: 2, UnitPrice: 10000},
		{Description: "Editing", Quantity: 5, UnitPrice: 1200},
	}

	t.Run("no tax", func(t *testing.T) {
		assert.InDelta(t, 26000.0, mapper.CalculateProposalTotal(items, 0), 0.001)
	})

	t.Run("tax is applied on the subtotal", func(t *testing.T) {
		assert.InDelta(t, 32500.0, mapper.CalculateProposalTotal(items, 25), 0.001)
	})

	t.Run("empty item set", func(t *testing.T) {
		assert.Equal(t, 0.0, mapper.CalculateProposalTotal(nil, 25))
	})

	t.Run("fractional quantities", func(t *testing.T) {
		half := []domain.ProposalItem{{Quantity: 0.5, UnitPrice: 1000}}
		assert.InDelta(t, 550.0, mapper.CalculateProposalTotal(half, 10), 0.001)
	})
}

func TestCalculateBundlePrice(t *testing.T) {
	camera := &domain.ServiceItem{Name: "Camera package", UnitPrice: 4000}
	editing := &domain.ServiceItem{Name: "Editing hour", UnitPrice: 950}

	t.Run("discount applies to the item subtotal", func(t *testing.T) {
		bundle := &domain.Bundle{
			Name:            "Startup package",
			DiscountPercent: 10,
			Items: []domain.BundleItem{
				{ServiceItem: camera, Quantity: 1},
				{ServiceItem: editing, Quantity: 4},
			},
		}
		// (4000 + 4*950) * 0.9
		assert.InDelta(t, 7020.0, mapper.CalculateBundlePrice(bundle), 0.001)
	})

	t.Run("unloaded service items contribute nothing", func(t *testing.T) {
		bundle := &domain.Bundle{
			DiscountPercent: 0,
			Items: []domain.BundleItem{
				{ServiceItem: camera, Quantity: 1},
				{ServiceItem: nil, Quantity: 99},
			},
		}
		assert.InDelta(t, 4000.0, mapper.CalculateBundlePrice(bundle), 0.001)
	})

	t.Run("empty bundle is free", func(t *testing.T) {
		assert.Equal(t, 0.0, mapper.CalculateBundlePrice(&domain.Bundle{DiscountPercent: 50}))
	})
}

func TestToCustomerDTO(t *testing.T) {
	t.Run("nil tags become an empty slice", func(t *testing.T) {
		dto := mapper.ToCustomerDTO(&domain.Customer{Name: "Uten Tags"})
		assert.NotNil(t, dto.Tags)
		assert.Empty(t, dto.Tags)
	})

	t.Run("portal token presence is exposed as a flag only", func(t *testing.T) {
		token := "secret-token"
		pin := "1234"
		dto := mapper.ToCustomerDTO(&domain.Customer{
			Name:        "Med Portal",
			PortalToken: &token,
			PortalPIN:   &pin,
		})
		assert.True(t, dto.HasPortalToken)
	})
}

func TestToTaskDTO(t *testing.T) {
	t.Run("backlog task has no assigned date", func(t *testing.T) {
		dto := mapper.ToTaskDTO(&domain.Task{Content: "Backlog", Priority: domain.TaskPriorityLow})
		assert.Nil(t, dto.AssignedDate)
	})
}

func TestToDeliverableDTO(t *testing.T) {
	t.Run("file flag follows storage path", func(t *testing.T) {
		withFile := mapper.ToDeliverableDTO(&domain.Deliverable{
			Title:       "Final cut",
			StoragePath: "shoots/x/final.mp4",
			FileName:    "final.mp4",
			FileSize:    1024,
		})
		assert.True(t, withFile.HasFile)
		assert.Equal(t, "final.mp4", withFile.FileName)

		withoutFile := mapper.ToDeliverableDTO(&domain.Deliverable{Title: "Pending"})
		assert.False(t, withoutFile.HasFile)
	})
}
