package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	RoleCustomer = "customer"
	RoleBusiness = "business"
)

const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"          json:"username"`
	Email        string    `gorm:"size:254;uniqueIndex;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                               json:"-"`
	Role         string    `gorm:"size:16;index;not null;default:customer" json:"type"`
	FirstName    string    `gorm:"size:150;not null;default:''"           json:"first_name"`
	LastName     string    `gorm:"size:150;not null;default:''"           json:"last_name"`
	IsAdmin      bool      `gorm:"not null;default:false"                 json:"is_admin"`
	CreatedAt    time.Time `                                              json:"created_at"`
	UpdatedAt    time.Time `                                              json:"updated_at"`
}

// Profile is the 1:1 extension of User, created in the same transaction.
type Profile struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null"          json:"user"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
	File         string    `gorm:"size:512;not null;default:''"  json:"file"`
	Location     string    `gorm:"size:255;not null;default:''"  json:"location"`
	Tel          string    `gorm:"size:64;not null;default:''"   json:"tel"`
	Description  string    `gorm:"type:text"                     json:"description"`
	WorkingHours string    `gorm:"size:64;not null;default:''"   json:"working_hours"`
	CreatedAt    time.Time `                                     json:"created_at"`
	UpdatedAt    time.Time `                                     json:"updated_at"`
}

type Offer struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID          uint            `gorm:"index;not null"                          json:"user"`
	User            *User           `gorm:"constraint:OnDelete:CASCADE"             json:"-"`
	Title           string          `gorm:"size:255;not null"                       json:"title"`
	Image           string          `gorm:"size:512;not null;default:''"            json:"image"`
	Description     string          `gorm:"type:text"                               json:"description"`
	MinPrice        decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"   json:"min_price"`
	MinDeliveryTime int             `gorm:"not null;default:0"                      json:"min_delivery_time"`
	Details         []OfferDetail   `gorm:"constraint:OnDelete:CASCADE"             json:"details"`
	CreatedAt       time.Time       `gorm:"index"                                   json:"created_at"`
	UpdatedAt       time.Time       `gorm:"index"                                   json:"updated_at"`
}

// OfferDetail is one priced tier of an Offer; (offer_id, offer_type) is unique.
type OfferDetail struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"                   json:"id"`
	OfferID            uint            `gorm:"not null;uniqueIndex:idx_offer_tier_type"   json:"-"`
	Offer              *Offer          `                                                  json:"-"`
	Title              string          `gorm:"size:255;not null"                          json:"title"`
	Revisions          int             `gorm:"not null;default:0"                         json:"revisions"`
	DeliveryTimeInDays int             `gorm:"not null"                                   json:"delivery_time_in_days"`
	Price              decimal.Decimal `gorm:"type:numeric(10,2);not null"                json:"price"`
	Features           datatypes.JSON  `                                                  json:"features"`
	OfferType          string          `gorm:"size:16;not null;uniqueIndex:idx_offer_tier_type" json:"offer_type"`
}

type Order struct {
	ID             uint         `gorm:"primaryKey;autoIncrement"                                       json:"id"`
	OfferDetailID  uint         `gorm:"not null;uniqueIndex:idx_order_customer_tier"                   json:"offer_detail_id"`
	OfferDetail    *OfferDetail `gorm:"constraint:OnDelete:CASCADE"                                    json:"-"`
	CustomerUserID uint         `gorm:"not null;index;uniqueIndex:idx_order_customer_tier"             json:"customer_user"`
	CustomerUser   *User        `gorm:"foreignKey:CustomerUserID;constraint:OnDelete:CASCADE"          json:"-"`
	BusinessUserID uint         `gorm:"not null;index"                                                 json:"business_user"`
	BusinessUser   *User        `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE"          json:"-"`
	Status         string       `gorm:"size:20;not null;default:in_progress;index"                     json:"status"`
	CreatedAt      time.Time    `gorm:"index"                                                          json:"created_at"`
	UpdatedAt      time.Time    `                                                                      json:"updated_at"`
}

type Review struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"                                  json:"id"`
	BusinessUserID uint      `gorm:"not null;uniqueIndex:idx_review_business_reviewer"         json:"business_user"`
	BusinessUser   *User     `gorm:"foreignKey:BusinessUserID;constraint:OnDelete:CASCADE"     json:"-"`
	ReviewerID     uint      `gorm:"not null;index;uniqueIndex:idx_review_business_reviewer"   json:"reviewer"`
	Reviewer       *User     `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE"         json:"-"`
	Rating         int       `gorm:"not null;default:0"                                        json:"rating"`
	Description    string    `gorm:"type:text"                                                 json:"description"`
	CreatedAt      time.Time `gorm:"index"                                                     json:"created_at"`
	UpdatedAt      time.Time `gorm:"index"                                                     json:"updated_at"`
}

// AuthToken records an issued bearer token by jti; logout flips Revoked.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	JTI       string    `gorm:"size:64;not null;uniqueIndex"  json:"jti"`
	UserID    uint      `gorm:"index;not null"                json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
	ExpiresAt time.Time `gorm:"not null"                      json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false"        json:"revoked"`
	CreatedAt time.Time `                                     json:"created_at"`
}

func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Offer{},
		&OfferDetail{},
		&Order{},
		&Review{},
		&AuthToken{},
	}
}
