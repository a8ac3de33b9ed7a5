package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/transport"
)

func TestReviewCreate(t *testing.T) {
	r := newTestRepo(t)
	rec := &recorder{}
	svc := &ReviewService{Repo: r, Events: &Emitter{Publisher: rec}}
	ctx := context.Background()

	biz := seedUser(t, r, "studio", models.RoleBusiness)
	cust := seedUser(t, r, "buyer", models.RoleCustomer)
	other := seedUser(t, r, "another", models.RoleCustomer)

	review, err := svc.Create(ctx, cust, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 4, Description: "fast"})
	require.NoError(t, err)
	assert.Equal(t, cust.UserID, review.ReviewerID)
	assert.Equal(t, 4, review.Rating)

	_, err = svc.Create(ctx, cust, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 5})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, biz, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 5})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, other, transport.CreateReviewRequest{BusinessUser: cust.UserID, Rating: 5})
	assert.Contains(t, fieldErrors(t, err), "business_user")

	_, err = svc.Create(ctx, other, transport.CreateReviewRequest{BusinessUser: 9999, Rating: 5})
	assert.Contains(t, fieldErrors(t, err), "business_user")

	_, err = svc.Create(ctx, other, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 6})
	assert.Contains(t, fieldErrors(t, err), "rating")

	assert.Equal(t, []string{"review_created"}, rec.types())
}

func TestReviewUpdateDeletePolicy(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	biz := seedUser(t, r, "studio", models.RoleBusiness)
	cust := seedUser(t, r, "buyer", models.RoleCustomer)
	other := seedUser(t, r, "another", models.RoleCustomer)

	review, err := svc.Create(ctx, cust, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 3})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, 9999, transport.PatchReviewRequest{Rating: intPtr(1)})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, other, review.ID, transport.PatchReviewRequest{Rating: intPtr(1)})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, cust, review.ID, transport.PatchReviewRequest{Rating: intPtr(0)})
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(ctx, cust, review.ID, transport.PatchReviewRequest{Rating: intPtr(5), Description: strPtr("great")})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "great", updated.Description)

	require.ErrorIs(t, svc.Delete(ctx, other, review.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, cust, review.ID))
	require.ErrorIs(t, svc.Delete(ctx, cust, review.ID), ErrNotFound)
}

func TestReviewListFilters(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	a := seedUser(t, r, "studio", models.RoleBusiness)
	b := seedUser(t, r, "printshop", models.RoleBusiness)
	c1 := seedUser(t, r, "buyer", models.RoleCustomer)
	c2 := seedUser(t, r, "another", models.RoleCustomer)

	for _, tc := range []struct {
		who    Actor
		target Actor
		rating int
	}{{c1, a, 5}, {c2, a, 2}, {c1, b, 4}} {
		_, err := svc.Create(ctx, tc.who, transport.CreateReviewRequest{BusinessUser: tc.target.UserID, Rating: tc.rating})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, transport.ReviewListQuery{BusinessUserID: &a.UserID, Ordering: "rating"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Rating)
	assert.Equal(t, 5, items[1].Rating)

	items, err = svc.List(ctx, transport.ReviewListQuery{ReviewerID: &c1.UserID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.List(ctx, transport.ReviewListQuery{Ordering: "stars"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestReviewDuplicateInsertMapsToConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	biz := seedUser(t, r, "studio", models.RoleBusiness)
	cust := seedUser(t, r, "buyer", models.RoleCustomer)

	_, err := svc.Create(ctx, cust, transport.CreateReviewRequest{BusinessUser: biz.UserID, Rating: 5})
	require.NoError(t, err)

	err = conflict(r.CreateReview(ctx, &models.Review{BusinessUserID: biz.UserID, ReviewerID: cust.UserID, Rating: 1}),
		"you have already reviewed this business user")
	require.ErrorIs(t, err, ErrConflict)

	items, err := svc.List(ctx, transport.ReviewListQuery{BusinessUserID: &biz.UserID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Rating)
}
