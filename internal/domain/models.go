package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusLead    CustomerStatus = "lead"
	CustomerStatusPassive CustomerStatus = "passive"
)

// IsValid checks if the CustomerStatus is a valid enum value
func (cs CustomerStatus) IsValid() bool {
	switch cs {
	case CustomerStatusActive, CustomerStatusLead, CustomerStatusPassive:
		return true
	}
	return false
}

// Customer represents a client of the studio
type Customer struct {
	BaseModel
	Name    string         `gorm:"type:varchar(200);not null;index"`
	Company string         `gorm:"type:varchar(200)"`
	Email   string         `gorm:"type:varchar(255);not null"`
	Phone   string         `gorm:"type:varchar(50)"`
	Status  CustomerStatus `gorm:"type:varchar(50);not null;default:'lead';index"`
	Tags    pq.StringArray `gorm:"type:text[]"`
	Notes   string         `gorm:"type:text"`
	// PortalToken is the sole credential for client portal read access.
	// A nil token means the portal is unreachable for this customer.
	PortalToken *string `gorm:"type:varchar(64);uniqueIndex;column:portal_token"`
	// PortalPIN gates only the portal finance view. Never serialized to portal callers.
	PortalPIN    *string       `gorm:"type:varchar(4);column:portal_pin"`
	Proposals    []Proposal    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Shoots       []Shoot       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Interactions []Interaction `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// InteractionType represents the type of a customer interaction
type InteractionType string

const (
	InteractionTypeMeeting InteractionType = "meeting"
	InteractionTypeEmail   InteractionType = "email"
	InteractionTypeCall    InteractionType = "call"
	InteractionTypeNote    InteractionType = "note"
)

// IsValid checks if the InteractionType is a valid enum value
func (it InteractionType) IsValid() bool {
	switch it {
	case InteractionTypeMeeting, InteractionTypeEmail, InteractionTypeCall, InteractionTypeNote:
		return true
	}
	return false
}

// Interaction represents a logged touchpoint with a customer
type Interaction struct {
	BaseModel
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer   *Customer       `gorm:"foreignKey:CustomerID"`
	Type       InteractionType `gorm:"type:varchar(50);not null;default:'note'"`
	Content    string          `gorm:"type:text;not null"`
	Date       time.Time       `gorm:"not null;index"`
}

// ProposalStatus represents the workflow status of a proposal
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusDeclined ProposalStatus = "declined"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// IsValid checks if the ProposalStatus is a valid enum value
func (ps ProposalStatus) IsValid() bool {
	switch ps {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusAccepted,
		ProposalStatusDeclined, ProposalStatusExpired:
		return true
	}
	return false
}

// PaymentStatus represents whether an accepted proposal has been paid
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Proposal represents a priced offer for a production project
type Proposal struct {
	BaseModel
	CustomerID    uuid.UUID      `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer      *Customer      `gorm:"foreignKey:CustomerID"`
	ProjectTitle  string         `gorm:"type:varchar(200);not null;index;column:project_title"`
	Status        ProposalStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	TotalAmount   float64        `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	Currency      string         `gorm:"type:varchar(3);not null;default:'EUR'"`
	TaxRate       float64        `gorm:"type:decimal(5,2);not null;default:0;column:tax_rate"`
	ValidUntil    *time.Time     `gorm:"type:date;column:valid_until"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(50);not null;default:'pending';column:payment_status"`
	PaidAt        *time.Time     `gorm:"column:paid_at"`
	SentAt        *time.Time     `gorm:"column:sent_at"`
	Notes         string         `gorm:"type:text"`
	Items         []ProposalItem `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// ProposalItem represents a line item in a proposal
type ProposalItem struct {
	BaseModel
	ProposalID  uuid.UUID `gorm:"type:uuid;not null;index;column:proposal_id"`
	Proposal    *Proposal `gorm:"foreignKey:ProposalID"`
	Description string    `gorm:"type:varchar(500);not null"`
	Quantity    float64   `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice   float64   `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	OrderIndex  int       `gorm:"not null;default:0;column:order_index"`
}

// LineTotal returns quantity times unit price for the item
func (pi *ProposalItem) LineTotal() float64 {
	return pi.Quantity * pi.UnitPrice
}

// ShootStatus represents the status of a shoot
type ShootStatus string

const (
	ShootStatusPlanned   ShootStatus = "planned"
	ShootStatusConfirmed ShootStatus = "confirmed"
	ShootStatusCompleted ShootStatus = "completed"
)

// IsValid checks if the ShootStatus is a valid enum value
func (ss ShootStatus) IsValid() bool {
	switch ss {
	case ShootStatusPlanned, ShootStatusConfirmed, ShootStatusCompleted:
		return true
	}
	return false
}

// Shoot represents a scheduled production day
type Shoot struct {
	BaseModel
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer     *Customer      `gorm:"foreignKey:CustomerID"`
	Title        string         `gorm:"type:varchar(200);not null"`
	ShootDate    *time.Time     `gorm:"type:date;index;column:shoot_date"`
	ShootTime    string         `gorm:"type:varchar(20);column:shoot_time"`
	Location     string         `gorm:"type:varchar(300)"`
	Status       ShootStatus    `gorm:"type:varchar(50);not null;default:'planned';index"`
	Description  string         `gorm:"type:text"`
	Equipment    pq.StringArray `gorm:"type:text[]"`
	Notes        string         `gorm:"type:text"`
	Scenes       []Scene        `gorm:"foreignKey:ShootID;constraint:OnDelete:CASCADE"`
	Deliverables []Deliverable  `gorm:"foreignKey:ShootID;constraint:OnDelete:CASCADE"`
}

// Scene represents a planned shot within a shoot, independently toggleable
type Scene struct {
	BaseModel
	ShootID     uuid.UUID `gorm:"type:uuid;not null;index;column:shoot_id"`
	Shoot       *Shoot    `gorm:"foreignKey:ShootID"`
	SceneNumber int       `gorm:"not null;default:0;column:scene_number"`
	Description string    `gorm:"type:varchar(500)"`
	Angle       string    `gorm:"type:varchar(100)"`
	Duration    string    `gorm:"type:varchar(50)"`
	IsCompleted bool      `gorm:"not null;default:false;column:is_completed"`
}

// DeliverableType represents the kind of deliverable
type DeliverableType string

const (
	DeliverableTypeVideo DeliverableType = "video"
	DeliverableTypePhoto DeliverableType = "photo"
	DeliverableTypeOther DeliverableType = "other"
)

// IsValid checks if the DeliverableType is a valid enum value
func (dt DeliverableType) IsValid() bool {
	switch dt {
	case DeliverableTypeVideo, DeliverableTypePhoto, DeliverableTypeOther:
		return true
	}
	return false
}

// Deliverable represents a finished asset attached to a shoot.
// Read-only from the portal's perspective.
type Deliverable struct {
	BaseModel
	ShootID     uuid.UUID       `gorm:"type:uuid;not null;index;column:shoot_id"`
	Shoot       *Shoot          `gorm:"foreignKey:ShootID"`
	Type        DeliverableType `gorm:"type:varchar(50);not null;default:'video'"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	URL         string          `gorm:"type:varchar(500)"`
	StoragePath string          `gorm:"type:varchar(500);column:storage_path"`
	FileName    string          `gorm:"type:varchar(300);column:file_name"`
	ContentType string          `gorm:"type:varchar(100);column:content_type"`
	FileSize    int64           `gorm:"column:file_size"`
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the TaskPriority is a valid enum value
func (tp TaskPriority) IsValid() bool {
	switch tp {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a planner entry. Ordering state is fully described by
// (assigned_date, position): a nil assigned_date is the backlog bucket,
// and position defines the manual order within a bucket, with created_at
// descending as the tie-break.
type Task struct {
	BaseModel
	Content      string       `gorm:"type:varchar(500);not null"`
	Description  string       `gorm:"type:text"`
	Category     string       `gorm:"type:varchar(100)"`
	Priority     TaskPriority `gorm:"type:varchar(50);not null;default:'medium'"`
	IsCompleted  bool         `gorm:"not null;default:false;column:is_completed"`
	AssignedDate *time.Time   `gorm:"type:date;index;column:assigned_date"`
	Position     int          `gorm:"not null;default:0"`
}

// TaskMove describes one task's target bucket and position in a batch
// reorder. A nil AssignedDate targets the backlog.
type TaskMove struct {
	ID           uuid.UUID
	Position     int
	AssignedDate *time.Time
}

// Expense represents money going out
type Expense struct {
	BaseModel
	Amount      float64   `gorm:"type:decimal(15,2);not null"`
	Category    string    `gorm:"type:varchar(100);not null;index"`
	Description string    `gorm:"type:varchar(500)"`
	Date        time.Time `gorm:"type:date;not null;index"`
}

// IncomeSource represents where an income entry came from
type IncomeSource string

const (
	IncomeSourceManual   IncomeSource = "manual"
	IncomeSourceProposal IncomeSource = "proposal"
)

// Income represents money coming in. Entries with source "proposal" are
// written automatically when a proposal is marked paid.
type Income struct {
	BaseModel
	Amount      float64      `gorm:"type:decimal(15,2);not null"`
	Source      IncomeSource `gorm:"type:varchar(50);not null;default:'manual'"`
	Category    string       `gorm:"type:varchar(100);index"`
	Description string       `gorm:"type:varchar(500)"`
	Date        time.Time    `gorm:"type:date;not null;index"`
	ProposalID  *uuid.UUID   `gorm:"type:uuid;index;column:proposal_id"`
}

// ServiceItem represents a priced service in the studio catalog
type ServiceItem struct {
	BaseModel
	Name        string  `gorm:"type:varchar(200);not null;index"`
	Description string  `gorm:"type:text"`
	Category    string  `gorm:"type:varchar(100);index"`
	UnitPrice   float64 `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	IsActive    bool    `gorm:"not null;default:true;column:is_active"`
}

// Bundle represents a discounted package of catalog services
type Bundle struct {
	BaseModel
	Name            string       `gorm:"type:varchar(200);not null"`
	Description     string       `gorm:"type:text"`
	DiscountPercent float64      `gorm:"type:decimal(5,2);not null;default:0;column:discount_percent"`
	Items           []BundleItem `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE"`
}

// BundleItem links a bundle to a catalog service with a quantity
type BundleItem struct {
	BaseModel
	BundleID      uuid.UUID    `gorm:"type:uuid;not null;index;column:bundle_id"`
	Bundle        *Bundle      `gorm:"foreignKey:BundleID"`
	ServiceItemID uuid.UUID    `gorm:"type:uuid;not null;index;column:service_item_id"`
	ServiceItem   *ServiceItem `gorm:"foreignKey:ServiceItemID"`
	Quantity      float64      `gorm:"type:decimal(10,2);not null;default:1"`
}

// UserRole represents a staff role
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleProducer UserRole = "producer"
	RoleEditor   UserRole = "editor"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleProducer, RoleEditor:
		return true
	}
	return false
}

// User represents a staff member
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null;column:password_hash"`
	DisplayName  string     `gorm:"type:varchar(200);not null;column:display_name"`
	Role         UserRole   `gorm:"type:varchar(50);not null;default:'producer'"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}
