package transport

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/util"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   uint   `json:"user_id"`
}

func NewAuthResponse(token string, u *models.User) AuthResponse {
	return AuthResponse{Token: token, Username: u.Username, Email: u.Email, UserID: u.ID}
}

type ProfileDetail struct {
	User         uint      `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

type BusinessProfile struct {
	User         uint   `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
}

type CustomerProfile struct {
	User       uint      `json:"user"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	File       string    `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
	Type       string    `json:"type"`
}

func profileUser(p *models.Profile) models.User {
	if p.User == nil {
		return models.User{ID: p.UserID}
	}
	return *p.User
}

func NewProfileDetail(p *models.Profile) ProfileDetail {
	u := profileUser(p)
	return ProfileDetail{
		User:         p.UserID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         u.Role,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
	}
}

func NewBusinessProfiles(items []models.Profile) []BusinessProfile {
	out := make([]BusinessProfile, 0, len(items))
	for i := range items {
		u := profileUser(&items[i])
		out = append(out, BusinessProfile{
			User:         items[i].UserID,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			File:         items[i].File,
			Location:     items[i].Location,
			Tel:          items[i].Tel,
			Description:  items[i].Description,
			WorkingHours: items[i].WorkingHours,
			Type:         u.Role,
		})
	}
	return out
}

// NewCustomerProfiles reports the account creation time as uploaded_at.
func NewCustomerProfiles(items []models.Profile) []CustomerProfile {
	out := make([]CustomerProfile, 0, len(items))
	for i := range items {
		u := profileUser(&items[i])
		out = append(out, CustomerProfile{
			User:       items[i].UserID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			File:       items[i].File,
			UploadedAt: u.CreatedAt,
			Type:       u.Role,
		})
	}
	return out
}

type OfferDetailResponse struct {
	ID                 uint            `json:"id"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              string          `json:"price"`
	Features           json.RawMessage `json:"features"`
	OfferType          string          `json:"offer_type"`
}

func NewOfferDetailResponse(d *models.OfferDetail) OfferDetailResponse {
	return OfferDetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price.StringFixed(2),
		Features:           features(d.Features),
		OfferType:          d.OfferType,
	}
}

type OfferDetailLink struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferResponse is the read shape: tiers appear as links only.
type OfferResponse struct {
	ID              uint              `json:"id"`
	User            uint              `json:"user"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailLink `json:"details"`
	MinPrice        string            `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
	UserDetails     UserDetails       `json:"user_details"`
}

func NewOfferResponse(o *models.Offer) OfferResponse {
	links := make([]OfferDetailLink, 0, len(o.Details))
	for _, d := range o.Details {
		links = append(links, OfferDetailLink{ID: d.ID, URL: "/offerdetails/" + strconv.FormatUint(uint64(d.ID), 10)})
	}
	var ud UserDetails
	if o.User != nil {
		ud = UserDetails{FirstName: o.User.FirstName, LastName: o.User.LastName, Username: o.User.Username}
	}
	return OfferResponse{
		ID:              o.ID,
		User:            o.UserID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         links,
		MinPrice:        o.MinPrice.StringFixed(2),
		MinDeliveryTime: o.MinDeliveryTime,
		UserDetails:     ud,
	}
}

func NewOfferResponses(items []models.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(items))
	for i := range items {
		out = append(out, NewOfferResponse(&items[i]))
	}
	return out
}

// OfferWriteResponse is returned by create and update and embeds full tiers.
type OfferWriteResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Image       string                `json:"image"`
	Description string                `json:"description"`
	Details     []OfferDetailResponse `json:"details"`
}

func NewOfferWriteResponse(o *models.Offer) OfferWriteResponse {
	details := make([]OfferDetailResponse, 0, len(o.Details))
	for i := range o.Details {
		details = append(details, NewOfferDetailResponse(&o.Details[i]))
	}
	return OfferWriteResponse{
		ID:          o.ID,
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		Details:     details,
	}
}

type OfferPage struct {
	Data []OfferResponse `json:"data"`
	Meta util.PageMeta   `json:"meta"`
}

// OrderResponse projects the ordered tier at read time.
type OrderResponse struct {
	ID                 uint            `json:"id"`
	OfferID            uint            `json:"offer_id"`
	OfferDetailID      uint            `json:"offer_detail_id"`
	CustomerUser       uint            `json:"customer_user"`
	BusinessUser       uint            `json:"business_user"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              string          `json:"price"`
	Features           json.RawMessage `json:"features"`
	OfferType          string          `json:"offer_type"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		OfferDetailID: o.OfferDetailID,
		CustomerUser:  o.CustomerUserID,
		BusinessUser:  o.BusinessUserID,
		Features:      json.RawMessage("[]"),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Price:         "0.00",
	}
	if d := o.OfferDetail; d != nil {
		resp.OfferID = d.OfferID
		resp.Revisions = d.Revisions
		resp.DeliveryTimeInDays = d.DeliveryTimeInDays
		resp.Price = d.Price.StringFixed(2)
		resp.Features = features(d.Features)
		resp.OfferType = d.OfferType
		if d.Offer != nil {
			resp.Title = d.Offer.Title
		}
	}
	return resp
}

func NewOrderResponses(items []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for i := range items {
		out = append(out, NewOrderResponse(&items[i]))
	}
	return out
}

type OrderCountResponse struct {
	OrderCount int64 `json:"order_count"`
}

type CompletedOrderCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

type ReviewResponse struct {
	ID           uint      `json:"id"`
	BusinessUser uint      `json:"business_user"`
	Reviewer     uint      `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		BusinessUser: r.BusinessUserID,
		Reviewer:     r.ReviewerID,
		Rating:       r.Rating,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewReviewResponses(items []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(items))
	for i := range items {
		out = append(out, NewReviewResponse(&items[i]))
	}
	return out
}

type BaseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

func features(raw []byte) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]")
	}
	return json.RawMessage(raw)
}
