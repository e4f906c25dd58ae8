package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusPending     = "pending"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	FirstName    string     `gorm:"size:50"                  json:"first_name"`
	LastName     string     `gorm:"size:50"                  json:"last_name"`
	Avatar       string     `json:"avatar"`
	NationalCode string     `gorm:"size:10"                  json:"national_code"`
	PhoneNumber  string     `gorm:"size:15"                  json:"phone_number"`
	IsActive     bool       `gorm:"default:true"             json:"is_active"`
	IsStaff      bool       `gorm:"default:false"            json:"is_staff"`
	IsSuperuser  bool       `gorm:"default:false"            json:"is_superuser"`
	IsVerified   bool       `gorm:"default:false"            json:"is_verified"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// VerificationCode is a disposable per-request code row. The newest row for
// a user is the authoritative one; older rows are superseded implicitly.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Used      bool      `gorm:"default:false"  json:"used"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	TokenHash string `gorm:"uniqueIndex;not null" json:"-"`
	JTI       string `gorm:"index;not null"  json:"jti"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey"           json:"id"`
	Title    string `gorm:"size:100;uniqueIndex;not null" json:"title"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	ParentID *uint  `gorm:"index"                json:"parent_id"`
	IsActive bool   `gorm:"default:true"         json:"is_active"`

	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey"            json:"id"`
	Title       string    `gorm:"size:150;uniqueIndex;not null" json:"title"`
	Slug        string    `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text"             json:"description"`
	Price       float64   `gorm:"not null"              json:"price"`
	CategoryID  uint      `gorm:"index;not null"        json:"category_id"`
	Image       string    `json:"image"`
	ExistNumber int       `gorm:"default:0"             json:"exist_number"`
	Status      string    `gorm:"size:20;default:'unavailable'" json:"status"`
	ShowItem    bool      `gorm:"default:true"          json:"show_item"`
	IsActive    bool      `gorm:"default:true"          json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeSave keeps Status a pure function of ExistNumber unless an explicit
// pending override is set.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Status != StatusPending {
		if p.ExistNumber > 0 {
			p.Status = StatusAvailable
		} else {
			p.Status = StatusUnavailable
		}
	}
	return nil
}

type ProductComment struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order with IsSuccess=false is the user's active cart; at most one exists
// per user. Checkout completion is owned by an external collaborator.
type Order struct {
	ID           uint      `gorm:"primaryKey"     json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	TotalPrice   float64   `gorm:"default:0"      json:"total_price"`
	TotalItem    int       `gorm:"default:0"      json:"total_item"`
	Address      string    `gorm:"size:255"       json:"address"`
	TrackingCode string    `gorm:"size:200"       json:"tracking_code"`
	IsSuccess    bool      `gorm:"default:false;index" json:"is_success"`
	CreatedAt    time.Time `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// The composite unique index keeps one line per product in an order; a
// concurrent first add loses the insert race at the database and is folded
// into an increment by the repo.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_order_product" json:"product_id"`
	Quantity  int       `gorm:"default:1;check:quantity>0" json:"quantity"`
	OrderedAt time.Time `gorm:"autoCreateTime" json:"ordered_at"`
}
