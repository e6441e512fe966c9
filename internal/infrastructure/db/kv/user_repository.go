// Package kv maps the domain repositories onto the flat key-value store.
// Every record is a JSON document under a typed key prefix, so listing a
// record type is a single prefix read.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const userKeyPrefix = "user:"

func userKey(email string) string { return userKeyPrefix + email }

// UserRepository stores directory profiles under user:<email>.
type UserRepository struct {
	store ports.Store
}

func NewUserRepository(store ports.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Get(ctx context.Context, email string) (*domain.User, error) {
	raw, err := r.store.Get(ctx, userKey(email))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", email, err)
	}
	return &user, nil
}

func (r *UserRepository) Put(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.Email, err)
	}
	return r.store.Set(ctx, userKey(user.Email), raw)
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	return r.store.Delete(ctx, userKey(email))
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	raws, err := r.store.GetByPrefix(ctx, userKeyPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(raws))
	for _, raw := range raws {
		var user domain.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decode user list entry: %w", err)
		}
		users = append(users, &user)
	}
	return users, nil
}
