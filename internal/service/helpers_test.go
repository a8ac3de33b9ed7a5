package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/pkg/db"
	pkg_hash "github.com/Skotchmaster/coderr/pkg/hash"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "coderr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, repo.Migrate(ctx, gdb))
	return &repo.GormRepo{DB: gdb}
}

// recorder captures published events in memory.
type recorder struct {
	mu     sync.Mutex
	events []Event
	topics []string
}

func (r *recorder) PublishEvent(_ context.Context, topic, _ string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event.(Event))
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func seedUser(t *testing.T, r *repo.GormRepo, username, role string) Actor {
	t.Helper()
	ctx := context.Background()

	hash, err := pkg_hash.HashPassword("secret-pass")
	require.NoError(t, err)

	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role}
	require.NoError(t, r.CreateUser(ctx, u))
	require.NoError(t, r.CreateProfile(ctx, &models.Profile{UserID: u.ID}))
	return Actor{UserID: u.ID, Role: role}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func tierReq(offerType, price string, days int) transport.CreateOfferDetailRequest {
	return transport.CreateOfferDetailRequest{
		Title:              offerType + " package",
		Revisions:          intPtr(2),
		DeliveryTimeInDays: intPtr(days),
		Price:              decPtr(price),
		Features:           datatypes.JSON(`["logo"]`),
		OfferType:          offerType,
	}
}

func threeTierOffer() transport.CreateOfferRequest {
	return transport.CreateOfferRequest{
		Title:       "Logo design",
		Description: "Vector logo in three sizes",
		Details: []transport.CreateOfferDetailRequest{
			tierReq(models.OfferTypeBasic, "100", 10),
			tierReq(models.OfferTypeStandard, "300", 5),
			tierReq(models.OfferTypePremium, "500", 2),
		},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
