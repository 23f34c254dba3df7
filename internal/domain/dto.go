package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type CustomerDTO struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Company        string         `json:"company,omitempty"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Status         CustomerStatus `json:"status"`
	Tags           []string       `json:"tags"`
	Notes          string         `json:"notes,omitempty"`
	HasPortalToken bool           `json:"hasPortalToken"`
	CreatedAt      string         `json:"createdAt"` // ISO 8601
	UpdatedAt      string         `json:"updatedAt"` // ISO 8601
}

// PortalCustomerDTO is the reduced customer shape exposed on the public
// portal path. It never carries the token or PIN.
type PortalCustomerDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Company string    `json:"company,omitempty"`
}

type InteractionDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	Type       InteractionType `json:"type"`
	Content    string          `json:"content"`
	Date       string          `json:"date"`
	CreatedAt  string          `json:"createdAt"`
}

type ProposalDTO struct {
	ID            uuid.UUID         `json:"id"`
	CustomerID    uuid.UUID         `json:"customerId"`
	CustomerName  string            `json:"customerName,omitempty"`
	ProjectTitle  string            `json:"projectTitle"`
	Status        ProposalStatus    `json:"status"`
	TotalAmount   float64           `json:"totalAmount"`
	Currency      string            `json:"currency"`
	TaxRate       float64           `json:"taxRate"`
	ValidUntil    *string           `json:"validUntil,omitempty"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	PaidAt        *string           `json:"paidAt,omitempty"`
	SentAt        *string           `json:"sentAt,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Items         []ProposalItemDTO `json:"items"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

type ProposalItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	OrderIndex  int       `json:"orderIndex"`
	LineTotal   float64   `json:"lineTotal"`
}

type ShootDTO struct {
	ID          uuid.UUID   `json:"id"`
	CustomerID  uuid.UUID   `json:"customerId"`
	Title       string      `json:"title"`
	ShootDate   *string     `json:"shootDate,omitempty"`
	ShootTime   string      `json:"shootTime,omitempty"`
	Location    string      `json:"location,omitempty"`
	Status      ShootStatus `json:"status"`
	Description string      `json:"description,omitempty"`
	Equipment   []string    `json:"equipment"`
	Notes       string      `json:"notes,omitempty"`
	Scenes      []SceneDTO  `json:"scenes,omitempty"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type SceneDTO struct {
	ID          uuid.UUID `json:"id"`
	ShootID     uuid.UUID `json:"shootId"`
	SceneNumber int       `json:"sceneNumber"`
	Description string    `json:"description,omitempty"`
	Angle       string    `json:"angle,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
}

type DeliverableDTO struct {
	ID          uuid.UUID       `json:"id"`
	ShootID     uuid.UUID       `json:"shootId"`
	Type        DeliverableType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url,omitempty"`
	FileName    string          `json:"fileName,omitempty"`
	FileSize    int64           `json:"fileSize,omitempty"`
	HasFile     bool            `json:"hasFile"`
	CreatedAt   string          `json:"createdAt"`
}

type TaskDTO struct {
	ID           uuid.UUID    `json:"id"`
	Content      string       `json:"content"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty"`
	Priority     TaskPriority `json:"priority"`
	IsCompleted  bool         `json:"isCompleted"`
	AssignedDate *string      `json:"assignedDate,omitempty"` // nil = backlog
	Position     int          `json:"position"`
	CreatedAt    string       `json:"createdAt"`
}

type ExpenseDTO struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   string    `json:"createdAt"`
}

type IncomeDTO struct {
	ID          uuid.UUID    `json:"id"`
	Amount      float64      `json:"amount"`
	Source      IncomeSource `json:"source"`
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`
	Date        string       `json:"date"`
	ProposalID  *uuid.UUID   `json:"proposalId,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

type ServiceItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	UnitPrice   float64   `json:"unitPrice"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   string    `json:"createdAt"`
}

type BundleDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DiscountPercent float64         `json:"discountPercent"`
	Items           []BundleItemDTO `json:"items"`
	// Price is the computed bundle price: sum of item line prices
	// reduced by the bundle discount.
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt"`
}

type BundleItemDTO struct {
	ID            uuid.UUID `json:"id"`
	ServiceItemID uuid.UUID `json:"serviceItemId"`
	ServiceName   string    `json:"serviceName,omitempty"`
	UnitPrice     float64   `json:"unitPrice"`
	Quantity      float64   `json:"quantity"`
}

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        UserRole  `json:"role"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt *string   `json:"lastLoginAt,omitempty"`
}

// TimelineEntryType discriminates timeline feed entries
type TimelineEntryType string

const (
	TimelineEntryProposal    TimelineEntryType = "proposal"
	TimelineEntryShoot       TimelineEntryType = "shoot"
	TimelineEntryInteraction TimelineEntryType = "interaction"
)

// TimelineEntry is one row in a customer's unified activity feed.
// Date carries the source-specific date used for the global ordering.
type TimelineEntry struct {
	Type     TimelineEntryType `json:"type"`
	ID       uuid.UUID         `json:"id"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	Date     time.Time         `json:"date"`
}

// PortalFinanceSummary is the PIN-gated financial view on the portal
type PortalFinanceSummary struct {
	TotalSpent    float64             `json:"totalSpent"`
	PendingAmount float64             `json:"pendingAmount"`
	Proposals     []PortalProposalDTO `json:"proposals"`
}

// PortalProposalDTO is the reduced proposal shape shown on the portal
type PortalProposalDTO struct {
	ID            uuid.UUID      `json:"id"`
	ProjectTitle  string         `json:"projectTitle"`
	Status        ProposalStatus `json:"status"`
	TotalAmount   float64        `json:"totalAmount"`
	Currency      string         `json:"currency"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	CreatedAt     string         `json:"createdAt"`
}

// FinanceSummary aggregates expenses and incomes for a period
type FinanceSummary struct {
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpenses     float64            `json:"totalExpenses"`
	Net               float64            `json:"net"`
	IncomeByCategory  map[string]float64 `json:"incomeByCategory"`
	ExpenseByCategory map[string]float64 `json:"expenseByCategory"`
}

// DashboardMetrics is the staff dashboard rollup
type DashboardMetrics struct {
	TotalCustomers    int                    `json:"totalCustomers"`
	ActiveCustomers   int                    `json:"activeCustomers"`
	Leads             int                    `json:"leads"`
	OpenProposals     int                    `json:"openProposals"`
	AcceptedProposals int                    `json:"acceptedProposals"`
	PipelineValue     float64                `json:"pipelineValue"`
	AcceptedValue     float64                `json:"acceptedValue"`
	UpcomingShoots    []ShootDTO             `json:"upcomingShoots"`
	OpenTasks         int                    `json:"openTasks"`
	OverdueTasks      int                    `json:"overdueTasks"`
	MonthIncome       float64                `json:"monthIncome"`
	MonthExpenses     float64                `json:"monthExpenses"`
	ProposalsByStatus map[ProposalStatus]int `json:"proposalsByStatus"`
}

// GeneratedProposalItem is one validated AI-generated line item
type GeneratedProposalItem struct {
	Description string  `json:"description" validate:"required,min=1"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// GeneratedScene is one AI-suggested shot-list entry
type GeneratedScene struct {
	SceneNumber int    `json:"sceneNumber"`
	Description string `json:"description"`
	Angle       string `json:"angle,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// PaginatedResponse wraps a paginated list result
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request payloads

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

type CreateCustomerRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Company string   `json:"company" validate:"max=200"`
	Email   string   `json:"email" validate:"required,email"`
	Phone   string   `json:"phone" validate:"max=50"`
	Status  string   `json:"status" validate:"omitempty,oneof=active lead passive"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
	Notes   string   `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Company string   `json:"company" validate:"max=200"`
	Email   string   `json:"email" validate:"required,email"`
	Phone   string   `json:"phone" validate:"max=50"`
	Status  string   `json:"status" validate:"omitempty,oneof=active lead passive"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
	Notes   string   `json:"notes"`
}

type CreateInteractionRequest struct {
	Type    string `json:"type" validate:"required,oneof=meeting email call note"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type ProposalItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateProposalRequest struct {
	CustomerID   uuid.UUID             `json:"customerId" validate:"required"`
	ProjectTitle string                `json:"projectTitle" validate:"required,max=200"`
	Currency     string                `json:"currency" validate:"omitempty,len=3"`
	TaxRate      float64               `json:"taxRate" validate:"gte=0,lte=100"`
	ValidUntil   string                `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Notes        string                `json:"notes"`
	Items        []ProposalItemRequest `json:"items" validate:"dive"`
}

type UpdateProposalRequest struct {
	ProjectTitle string                `json:"projectTitle" validate:"required,max=200"`
	Currency     string                `json:"currency" validate:"omitempty,len=3"`
	TaxRate      float64               `json:"taxRate" validate:"gte=0,lte=100"`
	ValidUntil   string                `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Notes        string                `json:"notes"`
	Items        []ProposalItemRequest `json:"items" validate:"dive"`
}

type CreateShootRequest struct {
	CustomerID  uuid.UUID `json:"customerId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	ShootDate   string    `json:"shootDate" validate:"omitempty,datetime=2006-01-02"`
	ShootTime   string    `json:"shootTime" validate:"max=20"`
	Location    string    `json:"location" validate:"max=300"`
	Status      string    `json:"status" validate:"omitempty,oneof=planned confirmed completed"`
	Description string    `json:"description"`
	Equipment   []string  `json:"equipment" validate:"max=50,dive,max=200"`
	Notes       string    `json:"notes"`
}

type UpdateShootRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	ShootDate   string   `json:"shootDate" validate:"omitempty,datetime=2006-01-02"`
	ShootTime   string   `json:"shootTime" validate:"max=20"`
	Location    string   `json:"location" validate:"max=300"`
	Status      string   `json:"status" validate:"omitempty,oneof=planned confirmed completed"`
	Description string   `json:"description"`
	Equipment   []string `json:"equipment" validate:"max=50,dive,max=200"`
	Notes       string   `json:"notes"`
}

type CreateSceneRequest struct {
	SceneNumber int    `json:"sceneNumber" validate:"gte=0"`
	Description string `json:"description" validate:"max=500"`
	Angle       string `json:"angle" validate:"max=100"`
	Duration    string `json:"duration" validate:"max=50"`
}

type UpdateSceneRequest struct {
	SceneNumber *int    `json:"sceneNumber" validate:"omitempty,gte=0"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Angle       *string `json:"angle" validate:"omitempty,max=100"`
	Duration    *string `json:"duration" validate:"omitempty,max=50"`
}

type CreateDeliverableRequest struct {
	Type        string `json:"type" validate:"required,oneof=video photo other"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url,max=500"`
}

type CreateTaskRequest struct {
	Content      string `json:"content" validate:"required,max=500"`
	Description  string `json:"description"`
	Category     string `json:"category" validate:"max=100"`
	Priority     string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedDate string `json:"assignedDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Content      *string `json:"content" validate:"omitempty,max=500"`
	Description  *string `json:"description"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	IsCompleted  *bool   `json:"isCompleted"`
	AssignedDate *string `json:"assignedDate" validate:"omitempty,datetime=2006-01-02"`
}

// ReorderTaskItem is one row of a batch reorder: the task, its new
// position, and the bucket it now belongs to (nil date = backlog).
type ReorderTaskItem struct {
	ID           uuid.UUID `json:"id" validate:"required"`
	Position     int       `json:"position" validate:"gte=0"`
	AssignedDate *string   `json:"assignedDate" validate:"omitempty,datetime=2006-01-02"`
}

type ReorderTasksRequest struct {
	Items []ReorderTaskItem `json:"items" validate:"required,min=1,dive"`
}

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type CreateIncomeRequest struct {
	Amount      float64 `json:"amount" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"max=100"`
	Description string  `json:"description" validate:"max=500"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type CreateServiceItemRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"max=100"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type BundleItemRequest struct {
	ServiceItemID uuid.UUID `json:"serviceItemId" validate:"required"`
	Quantity      float64   `json:"quantity" validate:"required,gt=0"`
}

type CreateBundleRequest struct {
	Name            string              `json:"name" validate:"required,max=200"`
	Description     string              `json:"description"`
	DiscountPercent float64             `json:"discountPercent" validate:"gte=0,lte=100"`
	Items           []BundleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type DashboardSummaryResponse struct {
	Summary string `json:"summary"`
}

// PortalCredentialsResponse carries a freshly generated portal token and
// PIN. The PIN is never retrievable again after this response.
type PortalCredentialsResponse struct {
	Token string `json:"token"`
	Pin   string `json:"pin"`
}

type VerifyPinResponse struct {
	Valid bool `json:"valid"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required,len=4,numeric"`
}

type GenerateProposalItemsRequest struct {
	ProjectTitle string `json:"projectTitle" validate:"required,max=200"`
	Tone         string `json:"tone" validate:"omitempty,oneof=corporate creative friendly"`
}

type GenerateShotListRequest struct {
	ShootTitle  string `json:"shootTitle" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type GenerateEquipmentListRequest struct {
	ShootTitle  string `json:"shootTitle" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
