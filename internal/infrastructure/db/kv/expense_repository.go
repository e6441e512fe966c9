package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const expenseKeyPrefix = "expense:"

func expenseKey(id string) string { return expenseKeyPrefix + id }

// ExpenseRepository stores expenses under expense:<id>. Expenses are never
// deleted, only re-pointed or reviewed, so the interface carries no Delete.
type ExpenseRepository struct {
	store ports.Store
}

func NewExpenseRepository(store ports.Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

func (r *ExpenseRepository) Get(ctx context.Context, id string) (*domain.Expense, error) {
	raw, err := r.store.Get(ctx, expenseKey(id))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	var expense domain.Expense
	if err := json.Unmarshal(raw, &expense); err != nil {
		return nil, fmt.Errorf("decode expense %s: %w", id, err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) Put(ctx context.Context, expense *domain.Expense) error {
	raw, err := json.Marshal(expense)
	if err != nil {
		return fmt.Errorf("encode expense %s: %w", expense.ID, err)
	}
	return r.store.Set(ctx, expenseKey(expense.ID), raw)
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	raws, err := r.store.GetByPrefix(ctx, expenseKeyPrefix)
	if err != nil {
		return nil, err
	}

	expenses := make([]*domain.Expense, 0, len(raws))
	for _, raw := range raws {
		var expense domain.Expense
		if err := json.Unmarshal(raw, &expense); err != nil {
			return nil, fmt.Errorf("decode expense list entry: %w", err)
		}
		expenses = append(expenses, &expense)
	}
	return expenses, nil
}
