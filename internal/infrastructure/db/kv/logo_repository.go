package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const logoKey = "app:logo"

// LogoRepository stores the single application logo record.
type LogoRepository struct {
	store ports.Store
}

func NewLogoRepository(store ports.Store) *LogoRepository {
	return &LogoRepository{store: store}
}

func (r *LogoRepository) Get(ctx context.Context) (*domain.Logo, error) {
	raw, err := r.store.Get(ctx, logoKey)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, domain.ErrLogoNotFound
		}
		return nil, err
	}

	var logo domain.Logo
	if err := json.Unmarshal(raw, &logo); err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return &logo, nil
}

func (r *LogoRepository) Put(ctx context.Context, logo *domain.Logo) error {
	raw, err := json.Marshal(logo)
	if err != nil {
		return fmt.Errorf("encode logo: %w", err)
	}
	return r.store.Set(ctx, logoKey, raw)
}
