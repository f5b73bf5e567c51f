package services

import (
	"context"
	"errors"

	"storefront-api/models"
	"storefront-api/store"
)

// Sessions binds an anonymous session to exactly one cart, creating the cart
// lazily. Repeated calls with a valid binding return the same cart id.
type Sessions struct {
	sessions store.SessionStore
	carts    *Carts
}

func NewSessions(sessions store.SessionStore, carts *Carts) *Sessions {
	return &Sessions{sessions: sessions, carts: carts}
}

func (s *Sessions) ResolveCart(ctx context.Context, sessionID string) (string, error) {
	binding, err := s.sessions.GetBinding(ctx, sessionID)
	switch {
	case err == nil:
		_, err := s.carts.carts.GetCart(ctx, binding.CartID)
		if err == nil {
			return binding.CartID, nil
		}
		if !errors.Is(err, store.ErrCartNotFound) {
			return "", err
		}
		// Stale binding; fall through and rebind to a fresh cart.
	case !errors.Is(err, store.ErrSessionNotFound):
		return "", err
	}

	cart, err := s.carts.Create(ctx)
	if err != nil {
		return "", err
	}
	if err := s.sessions.SaveBinding(ctx, &models.CartSession{
		SessionID: sessionID,
		CartID:    cart.ID,
	}); err != nil {
		return "", err
	}
	return cart.ID, nil
}
