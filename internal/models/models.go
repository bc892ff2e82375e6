package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// ValidOrderStatus reports whether s is one of the three known order
// statuses. Any status may replace any other; there is no transition guard.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name        string    `gorm:"not null"              json:"name"`
	Description string    `gorm:"not null"              json:"description"`
	Price       float64   `gorm:"not null"              json:"price"`
	Category    string    `gorm:"index"                 json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `gorm:"index"                 json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Order is one product line of a placed order. A multi-line cart produces
// several rows sharing the customer fields and differing only in
// product/quantity.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	CustomerName string    `gorm:"not null"              json:"customer_name"`
	Email        string    `gorm:"not null"              json:"email"`
	Phone        string    `gorm:"not null"              json:"phone"`
	Address      string    `gorm:"not null"              json:"address"`
	ProductID    uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Quantity     uint      `gorm:"not null;check:quantity>0" json:"quantity"`
	Status       string    `gorm:"not null;default:Pending;index" json:"status"`
	OrderDate    time.Time `gorm:"index"                 json:"order_date"`
	Product      *Product  `gorm:"foreignKey:ProductID"  json:"product,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}

// Contact is write-once from the public contact form.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null"             json:"name"`
	Email     string    `gorm:"not null"             json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"not null"             json:"message"`
	CreatedAt time.Time `gorm:"index"                json:"created_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"       json:"id"`
	Token     string    `gorm:"unique;not null"  json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Role      string    `gorm:"not null"         json:"role"`
	ExpiresAt time.Time `gorm:"not null"         json:"expires_at"`
	Revoked   bool      `gorm:"default:false"    json:"revoked"`
}
