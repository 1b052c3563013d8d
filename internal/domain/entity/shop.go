package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Shop represents a retail shop in the multitenant system
type Shop struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Logo      *string        `gorm:"size:255" json:"logo,omitempty"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User             `gorm:"foreignKey:OwnerID" json:"-"`
	Members []ShopMembership `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shop
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    *string   `json:"phone,omitempty"`
}

// ShopMembership represents a user's membership in a shop
type ShopMembership struct {
	ShopID    uuid.UUID             `gorm:"type:uuid;primaryKey" json:"shop_id"`
	UserID    uuid.UUID             `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      enum.MembershipRole   `gorm:"default:0" json:"role"`
	Status    enum.MembershipStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (m *ShopMembership) PopulateUserDetails() {
	if m.User.ID == uuid.Nil {
		return
	}
	member := &MemberUser{
		ID:       m.User.ID,
		Username: m.User.Username,
		Email:    m.User.Email,
		FullName: m.User.FullName(),
	}
	if m.User.Profile != nil {
		member.Phone = m.User.Profile.PhoneNumber
	}
	m.MemberUser = member
}

// IsApproved reports whether the membership grants access to the shop
func (m *ShopMembership) IsApproved() bool {
	return m.Status == enum.MembershipStatusApproved
}

// TableName returns the table name for the ShopMembership model
func (ShopMembership) TableName() string {
	return "shop_memberships"
}
