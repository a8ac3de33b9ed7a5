package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
)

// orderTransitions lists the status changes a business user may make.
var orderTransitions = map[string][]string{
	models.OrderStatusInProgress: {models.OrderStatusCompleted},
}

type OrderService struct {
	Repo   *repo.GormRepo
	Events *Emitter
}

// List returns every order for admins, otherwise the caller's own orders
// on either side of the deal.
func (s *OrderService) List(ctx context.Context, actor Actor) ([]models.Order, error) {
	if actor.IsAdmin {
		return s.Repo.ListOrders(ctx, 0)
	}
	return s.Repo.ListOrders(ctx, actor.UserID)
}

func (s *OrderService) Create(ctx context.Context, actor Actor, req transport.CreateOrderRequest) (*models.Order, error) {
	if !actor.IsCustomer() {
		return nil, fmt.Errorf("%w: only customers can place orders", ErrForbidden)
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		OfferDetailID:  req.OfferDetailID,
		CustomerUserID: actor.UserID,
		Status:         models.OrderStatusInProgress,
	}
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		d, err := tx.GetOfferDetail(ctx, req.OfferDetailID)
		if err != nil {
			return notFound(err, "offer detail", req.OfferDetailID)
		}
		exists, err := tx.OrderExists(ctx, actor.UserID, d.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: already ordered", ErrConflict)
		}
		order.BusinessUserID = d.Offer.UserID
		return conflict(tx.CreateOrder(ctx, order), "already ordered")
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, TopicOrders, "order_created", created.ID, actor.UserID, map[string]any{
		"offer_detail_id": created.OfferDetailID,
		"business_user":   created.BusinessUserID,
		"customer_user":   created.CustomerUserID,
	})
	return created, nil
}

// UpdateStatus is reserved to the order's business user.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id uint, req transport.PatchOrderRequest) (*models.Order, error) {
	var from string
	changed := false
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrder(ctx, id)
		if err != nil {
			return notFound(err, "order", id)
		}
		if order.BusinessUserID != actor.UserID {
			return fmt.Errorf("%w: only the order's business user can change its status", ErrForbidden)
		}
		if err := ValidateStruct(req); err != nil {
			return err
		}
		if req.Status != models.OrderStatusInProgress && req.Status != models.OrderStatusCompleted {
			return NewValidationError("status", "must be one of: in_progress completed")
		}

		from = order.Status
		if from == req.Status {
			return nil
		}
		if !canTransition(from, req.Status) {
			return NewValidationError("status", fmt.Sprintf("cannot change status from %s to %s", from, req.Status))
		}
		changed = true
		return tx.UpdateOrderStatus(ctx, order, req.Status)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.Events.Emit(ctx, TopicOrders, "order_status_changed", id, actor.UserID, map[string]any{
			"from": from,
			"to":   updated.Status,
		})
	}
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin {
		return fmt.Errorf("%w: only administrators can delete orders", ErrForbidden)
	}
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "order", id)
	}
	s.Events.Emit(ctx, TopicOrders, "order_deleted", id, actor.UserID, nil)
	return nil
}

// Count returns the number of orders of a business user, only the completed
// ones when completedOnly is set.
func (s *OrderService) Count(ctx context.Context, businessUserID uint, completedOnly bool) (int64, error) {
	u, err := s.Repo.GetUser(ctx, businessUserID)
	if err != nil {
		return 0, notFound(err, "business user", businessUserID)
	}
	if u.Role != models.RoleBusiness {
		return 0, fmt.Errorf("%w: business user %d", ErrNotFound, businessUserID)
	}

	status := ""
	if completedOnly {
		status = models.OrderStatusCompleted
	}
	return s.Repo.CountOrders(ctx, businessUserID, status)
}

func canTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
