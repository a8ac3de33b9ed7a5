package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/pkg/db"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "coderr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, Migrate(ctx, gdb))
	return &GormRepo{DB: gdb}
}

func createUser(t *testing.T, r *GormRepo, username, role string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func TestCreateOrderDuplicatePair(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	biz := createUser(t, r, "studio", models.RoleBusiness)
	cust := createUser(t, r, "buyer", models.RoleCustomer)

	offer := &models.Offer{
		UserID: biz.ID,
		Title:  "Logo design",
		Details: []models.OfferDetail{
			{Title: "basic", DeliveryTimeInDays: 3, Price: decimal.NewFromInt(100), OfferType: models.OfferTypeBasic},
			{Title: "premium", DeliveryTimeInDays: 1, Price: decimal.NewFromInt(300), OfferType: models.OfferTypePremium},
		},
	}
	require.NoError(t, r.CreateOffer(ctx, offer))
	tier := offer.Details[0].ID

	newOrder := func(detailID uint) *models.Order {
		return &models.Order{
			OfferDetailID:  detailID,
			CustomerUserID: cust.ID,
			BusinessUserID: biz.ID,
			Status:         models.OrderStatusInProgress,
		}
	}

	require.NoError(t, r.CreateOrder(ctx, newOrder(tier)))
	require.ErrorIs(t, r.CreateOrder(ctx, newOrder(tier)), ErrDuplicate)

	// same customer, other tier
	require.NoError(t, r.CreateOrder(ctx, newOrder(offer.Details[1].ID)))

	n, err := r.CountOrders(ctx, biz.ID, "")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestCreateReviewDuplicatePair(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	biz := createUser(t, r, "studio", models.RoleBusiness)
	cust := createUser(t, r, "buyer", models.RoleCustomer)
	other := createUser(t, r, "another", models.RoleCustomer)

	review := func(reviewer uint) *models.Review {
		return &models.Review{BusinessUserID: biz.ID, ReviewerID: reviewer, Rating: 4}
	}

	require.NoError(t, r.CreateReview(ctx, review(cust.ID)))
	require.ErrorIs(t, r.CreateReview(ctx, review(cust.ID)), ErrDuplicate)
	require.NoError(t, r.CreateReview(ctx, review(other.ID)))

	n, avg, err := r.ReviewStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.NotNil(t, avg)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	r := newRepo(t)
	createUser(t, r, "studio", models.RoleBusiness)

	u := &models.User{Username: "studio", Email: "other@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.ErrorIs(t, r.CreateUser(context.Background(), u), ErrDuplicate)
}

func TestGetUserByUsernameIgnoresCase(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	u := createUser(t, r, "Alice", models.RoleCustomer)

	got, err := r.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	taken, err := r.UsernameTaken(ctx, "ALICE")
	require.NoError(t, err)
	require.True(t, taken)
}
