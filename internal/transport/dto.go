package transport

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RegistrationRequest struct {
	Username         string `json:"username"          validate:"required,max=150"`
	Email            string `json:"email"             validate:"required,email,max=254"`
	Password         string `json:"password"          validate:"required"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type"              validate:"omitempty,oneof=customer business"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PatchProfileRequest struct {
	FirstName    *string `json:"first_name"    validate:"omitempty,max=150"`
	LastName     *string `json:"last_name"     validate:"omitempty,max=150"`
	Email        *string `json:"email"         validate:"omitempty,email,max=254"`
	File         *string `json:"file"          validate:"omitempty,max=512"`
	Location     *string `json:"location"      validate:"omitempty,max=255"`
	Tel          *string `json:"tel"           validate:"omitempty,max=64"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=64"`
}

type CreateOfferDetailRequest struct {
	Title              string           `json:"title"                 validate:"required,max=255"`
	Revisions          *int             `json:"revisions"             validate:"required,min=-1"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"required,min=1"`
	Price              *decimal.Decimal `json:"price"                 validate:"required"`
	Features           datatypes.JSON   `json:"features"`
	OfferType          string           `json:"offer_type"            validate:"required"`
}

type CreateOfferRequest struct {
	Title       string                     `json:"title"       validate:"required,max=255"`
	Image       string                     `json:"image"       validate:"max=512"`
	Description string                     `json:"description"`
	Details     []CreateOfferDetailRequest `json:"details"     validate:"required,min=1,max=3,dive"`
}

// PatchOfferDetailRequest updates one tier. Inside an offer patch the tier is
// picked by OfferType; on /offerdetails/{id} OfferType may only repeat the
// current value.
type PatchOfferDetailRequest struct {
	Title              *string          `json:"title"                 validate:"omitempty,min=1,max=255"`
	Revisions          *int             `json:"revisions"             validate:"omitempty,min=-1"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"omitempty,min=1"`
	Price              *decimal.Decimal `json:"price"`
	Features           datatypes.JSON   `json:"features"`
	OfferType          string           `json:"offer_type"`
}

type PatchOfferRequest struct {
	Title       *string                   `json:"title"       validate:"omitempty,min=1,max=255"`
	Image       *string                   `json:"image"       validate:"omitempty,max=512"`
	Description *string                   `json:"description"`
	Details     []PatchOfferDetailRequest `json:"details"     validate:"omitempty,dive"`
}

type OfferListQuery struct {
	CreatorID       *uint
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

type CreateOrderRequest struct {
	OfferDetailID uint `json:"offer_detail_id" validate:"required"`
}

type PatchOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateReviewRequest struct {
	BusinessUser uint   `json:"business_user" validate:"required"`
	Rating       int    `json:"rating"        validate:"required,min=1,max=5"`
	Description  string `json:"description"`
}

type PatchReviewRequest struct {
	Rating      *int    `json:"rating"      validate:"omitempty,min=1,max=5"`
	Description *string `json:"description"`
}

type ReviewListQuery struct {
	BusinessUserID *uint
	ReviewerID     *uint
	Ordering       string
}
