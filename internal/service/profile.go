package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	p, err := s.Repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "profile of user", userID)
	}
	return p, nil
}

func (s *ProfileService) ListByRole(ctx context.Context, role string) ([]models.Profile, error) {
	if role != models.RoleBusiness && role != models.RoleCustomer {
		return nil, NewValidationError("type", "must be customer or business")
	}
	return s.Repo.ListProfilesByRole(ctx, role)
}

// Update writes the user and profile halves in one transaction.
func (s *ProfileService) Update(ctx context.Context, actor Actor, userID uint, req transport.PatchProfileRequest) (*models.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != p.UserID {
		return nil, fmt.Errorf("%w: profile belongs to another user", ErrForbidden)
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	userFields := map[string]any{}
	if req.FirstName != nil {
		userFields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		userFields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		taken, err := s.Repo.EmailTaken(ctx, email, p.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, NewValidationError("email", "this email address is already in use")
		}
		userFields["email"] = email
	}

	profileFields := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			profileFields[col] = *v
		}
	}
	set("file", req.File)
	set("location", req.Location)
	set("tel", req.Tel)
	set("description", req.Description)
	set("working_hours", req.WorkingHours)

	err = s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.UpdateUser(ctx, p.User, userFields); err != nil {
			return err
		}
		return tx.UpdateProfile(ctx, p, profileFields)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewValidationError("email", "this email address is already in use")
		}
		return nil, err
	}

	return s.Get(ctx, userID)
}
