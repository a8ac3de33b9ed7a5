package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/coderr/internal/models"
)

// Actor is the authenticated caller an operation runs for.
type Actor struct {
	UserID  uint
	Role    string
	IsAdmin bool
}

func (a Actor) IsBusiness() bool { return a.Role == models.RoleBusiness }
func (a Actor) IsCustomer() bool { return a.Role == models.RoleCustomer }

type SessionStore interface {
	Create(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	Active(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// OfferIndex is the optional full-text index over offers.
type OfferIndex interface {
	IndexOffer(ctx context.Context, offer *models.Offer) error
	DeleteOffer(ctx context.Context, id uint) error
	SearchOfferIDs(ctx context.Context, query string, limit int) ([]uint, error)
}

type EventCounter interface {
	EventEmitted(eventType, outcome string)
}
