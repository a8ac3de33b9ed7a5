package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events *Emitter
}

func (s *ReviewService) List(ctx context.Context, q transport.ReviewListQuery) ([]models.Review, error) {
	if q.Ordering != "" && !repo.ReviewOrderingAllowed(q.Ordering) {
		return nil, NewValidationError("ordering", "unsupported ordering "+q.Ordering)
	}
	return s.Repo.ListReviews(ctx, repo.ReviewFilter{
		BusinessUserID: q.BusinessUserID,
		ReviewerID:     q.ReviewerID,
		OrderBy:        q.Ordering,
	})
}

// Create stores a review written by the calling customer; one per business user.
func (s *ReviewService) Create(ctx context.Context, actor Actor, req transport.CreateReviewRequest) (*models.Review, error) {
	if !actor.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can write reviews", ErrForbidden)
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	review := &models.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     actor.UserID,
		Rating:         req.Rating,
		Description:    req.Description,
	}
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		target, err := tx.GetUser(ctx, req.BusinessUser)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("business_user", "no business user with this id")
			}
			return err
		}
		if target.Role != models.RoleBusiness {
			return NewValidationError("business_user", "no business user with this id")
		}

		exists, err := tx.ReviewExists(ctx, req.BusinessUser, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: you have already reviewed this business user", ErrConflict)
		}
		return conflict(tx.CreateReview(ctx, review), "you have already reviewed this business user")
	})
	if err != nil {
		return nil, err
	}

	s.Events.Emit(ctx, TopicReviews, "review_created", review.ID, actor.UserID, map[string]any{
		"business_user": review.BusinessUserID,
		"rating":        review.Rating,
	})
	return s.Repo.GetReview(ctx, review.ID)
}

func (s *ReviewService) Update(ctx context.Context, actor Actor, id uint, req transport.PatchReviewRequest) (*models.Review, error) {
	review, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if err := s.Repo.UpdateReview(ctx, review, fields); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		s.Events.Emit(ctx, TopicReviews, "review_updated", id, actor.UserID, map[string]any{"rating": updated.Rating})
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		return notFound(err, "review", id)
	}
	s.Events.Emit(ctx, TopicReviews, "review_deleted", id, actor.UserID, nil)
	return nil
}

func (s *ReviewService) owned(ctx context.Context, actor Actor, id uint) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, notFound(err, "review", id)
	}
	if review.ReviewerID != actor.UserID {
		return nil, fmt.Errorf("%w: review belongs to another user", ErrForbidden)
	}
	return review, nil
}
