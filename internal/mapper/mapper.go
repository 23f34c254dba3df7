package mapper

import (
	"github.com/framelight/studio-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"
const dateFormat = "2006-01-02"

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(customer *domain.Customer) domain.CustomerDTO {
	tags := []string(customer.Tags)
	if tags == nil {
		tags = []string{}
	}

	return domain.CustomerDTO{
		ID:             customer.ID,
		Name:           customer.Name,
		Company:        customer.Company,
		Email:          customer.Email,
		Phone:          customer.Phone,
		Status:         customer.Status,
		Tags:           tags,
		Notes:          customer.Notes,
		HasPortalToken: customer.PortalToken != nil,
		CreatedAt:      customer.CreatedAt.Format(timeFormat),
		UpdatedAt:      customer.UpdatedAt.Format(timeFormat),
	}
}

// ToPortalCustomerDTO converts Customer to the reduced portal shape.
// Token and PIN never leave the server.
func ToPortalCustomerDTO(customer *domain.Customer) domain.PortalCustomerDTO {
	return domain.PortalCustomerDTO{
		ID:      customer.ID,
		Name:    customer.Name,
		Company: customer.Company,
	}
}

// ToInteractionDTO converts Interaction to InteractionDTO
func ToInteractionDTO(interaction *domain.Interaction) domain.InteractionDTO {
	return domain.InteractionDTO{
		ID:         interaction.ID,
		CustomerID: interaction.CustomerID,
		Type:       interaction.Type,
		Content:    interaction.Content,
		Date:       interaction.Date.Format(dateFormat),
		CreatedAt:  interaction.CreatedAt.Format(timeFormat),
	}
}

// ToProposalDTO converts Proposal to ProposalDTO
func ToProposalDTO(proposal *domain.Proposal) domain.ProposalDTO {
	items := make([]domain.ProposalItemDTO, len(proposal.Items))
	for i, item := range proposal.Items {
		items[i] = ToProposalItemDTO(&item)
	}

	dto := domain.ProposalDTO{
		ID:            proposal.ID,
		CustomerID:    proposal.CustomerID,
		ProjectTitle:  proposal.ProjectTitle,
		Status:        proposal.Status,
		TotalAmount:   proposal.TotalAmount,
		Currency:      proposal.Currency,
		TaxRate:       proposal.TaxRate,
		PaymentStatus: proposal.PaymentStatus,
		Notes:         proposal.Notes,
		Items:         items,
		CreatedAt:     proposal.CreatedAt.Format(timeFormat),
		UpdatedAt:     proposal.UpdatedAt.Format(timeFormat),
	}

	if proposal.Customer != nil {
		dto.CustomerName = proposal.Customer.Name
	}
	if proposal.ValidUntil != nil {
		v := proposal.ValidUntil.Format(dateFormat)
		dto.ValidUntil = &v
	}
	if proposal.PaidAt != nil {
		v := proposal.PaidAt.Format(timeFormat)
		dto.PaidAt = &v
	}
	if proposal.SentAt != nil {
		v := proposal.SentAt.Format(timeFormat)
		dto.SentAt = &v
	}

	return dto
}

// ToProposalItemDTO converts ProposalItem to ProposalItemDTO
func ToProposalItemDTO(item *domain.ProposalItem) domain.ProposalItemDTO {
	return domain.ProposalItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		OrderIndex:  item.OrderIndex,
		LineTotal:   item.LineTotal(),
	}
}

// ToPortalProposalDTO converts Proposal to the reduced portal shape
func ToPortalProposalDTO(proposal *domain.Proposal) domain.PortalProposalDTO {
	return domain.PortalProposalDTO{
		ID:            proposal.ID,
		ProjectTitle:  proposal.ProjectTitle,
		Status:        proposal.Status,
		TotalAmount:   proposal.TotalAmount,
		Currency:      proposal.Currency,
		PaymentStatus: proposal.PaymentStatus,
		CreatedAt:     proposal.CreatedAt.Format(timeFormat),
	}
}

// ToShootDTO converts Shoot to ShootDTO
func ToShootDTO(shoot *domain.Shoot) domain.ShootDTO {
	equipment := []string(shoot.Equipment)
	if equipment == nil {
		equipment = []string{}
	}

	scenes := make([]domain.SceneDTO, len(shoot.Scenes))
	for i, scene := range shoot.Scenes {
		scenes[i] = ToSceneDTO(&scene)
	}

	dto := domain.ShootDTO{
		ID:          shoot.ID,
		CustomerID:  shoot.CustomerID,
		Title:       shoot.Title,
		ShootTime:   shoot.ShootTime,
		Location:    shoot.Location,
		Status:      shoot.Status,
		Description: shoot.Description,
		Equipment:   equipment,
		Notes:       shoot.Notes,
		Scenes:      scenes,
		CreatedAt:   shoot.CreatedAt.Format(timeFormat),
		UpdatedAt:   shoot.UpdatedAt.Format(timeFormat),
	}

	if shoot.ShootDate != nil {
		v := shoot.ShootDate.Format(dateFormat)
		dto.ShootDate = &v
	}

	return dto
}

// ToSceneDTO converts Scene to SceneDTO
func ToSceneDTO(scene *domain.Scene) domain.SceneDTO {
	return domain.SceneDTO{
		ID:          scene.ID,
		ShootID:     scene.ShootID,
		SceneNumber: scene.SceneNumber,
		Description: scene.Description,
		Angle:       scene.Angle,
		Duration:    scene.Duration,
		IsCompleted: scene.IsCompleted,
	}
}

// ToDeliverableDTO converts Deliverable to DeliverableDTO
func ToDeliverableDTO(deliverable *domain.Deliverable) domain.DeliverableDTO {
	return domain.DeliverableDTO{
		ID:          deliverable.ID,
		ShootID:     deliverable.ShootID,
		Type:        deliverable.Type,
		Title:       deliverable.Title,
		Description: deliverable.Description,
		URL:         deliverable.URL,
		FileName:    deliverable.FileName,
		FileSize:    deliverable.FileSize,
		HasFile:     deliverable.StoragePath != "",
		CreatedAt:   deliverable.CreatedAt.Format(timeFormat),
	}
}

// ToTaskDTO converts Task to TaskDTO
func ToTaskDTO(task *domain.Task) domain.TaskDTO {
	dto := domain.TaskDTO{
		ID:          task.ID,
		Content:     task.Content,
		Description: task.Description,
		Category:    task.Category,
		Priority:    task.Priority,
		IsCompleted: task.IsCompleted,
		Position:    task.Position,
		CreatedAt:   task.CreatedAt.Format(timeFormat),
	}

	if task.AssignedDate != nil {
		v := task.AssignedDate.Format(dateFormat)
		dto.AssignedDate = &v
	}

	return dto
}

// ToExpenseDTO converts Expense to ExpenseDTO
func ToExpenseDTO(expense *domain.Expense) domain.ExpenseDTO {
	return domain.ExpenseDTO{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Description: expense.Description,
		Date:        expense.Date.Format(dateFormat),
		CreatedAt:   expense.CreatedAt.Format(timeFormat),
	}
}

// ToIncomeDTO converts Income to IncomeDTO
func ToIncomeDTO(income *domain.Income) domain.IncomeDTO {
	return domain.IncomeDTO{
		ID:          income.ID,
		Amount:      income.Amount,
		Source:      income.Source,
		Category:    income.Category,
		Description: income.Description,
		Date:        income.Date.Format(dateFormat),
		ProposalID:  income.ProposalID,
		CreatedAt:   income.CreatedAt.Format(timeFormat),
	}
}

// ToServiceItemDTO converts ServiceItem to ServiceItemDTO
func ToServiceItemDTO(item *domain.ServiceItem) domain.ServiceItemDTO {
	return domain.ServiceItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		UnitPrice:   item.UnitPrice,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt.Format(timeFormat),
	}
}

// ToBundleDTO converts Bundle to BundleDTO with its computed price
func ToBundleDTO(bundle *domain.Bundle) domain.BundleDTO {
	items := make([]domain.BundleItemDTO, len(bundle.Items))
	for i, item := range bundle.Items {
		items[i] = ToBundleItemDTO(&item)
	}

	return domain.BundleDTO{
		ID:              bundle.ID,
		Name:            bundle.Name,
		Description:     bundle.Description,
		DiscountPercent: bundle.DiscountPercent,
		Items:           items,
		Price:           CalculateBundlePrice(bundle),
		CreatedAt:       bundle.CreatedAt.Format(timeFormat),
	}
}

// ToBundleItemDTO converts BundleItem to BundleItemDTO
func ToBundleItemDTO(item *domain.BundleItem) domain.BundleItemDTO {
	dto := domain.BundleItemDTO{
		ID:            item.ID,
		ServiceItemID: item.ServiceItemID,
		Quantity:      item.Quantity,
	}

	if item.ServiceItem != nil {
		dto.ServiceName = item.ServiceItem.Name
		dto.UnitPrice = item.ServiceItem.UnitPrice
	}

	return dto
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	dto := domain.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
	}

	if user.LastLoginAt != nil {
		v := user.LastLoginAt.Format(timeFormat)
		dto.LastLoginAt = &v
	}

	return dto
}

// CalculateProposalTotal calculates the proposal total from its items
// including the tax rate.
func CalculateProposalTotal(items []domain.ProposalItem, taxRate float64) float64 {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal * (1 + taxRate/100)
}

// CalculateBundlePrice calculates the bundle price: the sum of item
// line prices reduced by the bundle discount. Items without a loaded
// service item contribute nothing.
func CalculateBundlePrice(bundle *domain.Bundle) float64 {
	subtotal := 0.0
	for _, item := range bundle.Items {
		if item.ServiceItem == nil {
			continue
		}
		subtotal += item.ServiceItem.UnitPrice * item.Quantity
	}
	return subtotal * (1 - bundle.DiscountPercent/100)
}
