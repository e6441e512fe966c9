package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/api/metrics"
	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

// Propagator rewrites every denormalized reference to a user's email when
// that email changes. The store has no transactions, so the rewrite is
// best-effort: the identity provider is updated first and a failure there
// aborts before any local mutation, but a crash mid-propagation leaves some
// records on the old email. Operational risk, accepted and documented; an
// in-flight propagation cannot be cancelled.
type Propagator struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	expenses ports.ExpenseRepository
	identity ports.IdentityProvider
	log      zerolog.Logger
}

func NewPropagator(users ports.UserRepository, projects ports.ProjectRepository, expenses ports.ExpenseRepository, identity ports.IdentityProvider, log zerolog.Logger) *Propagator {
	return &Propagator{
		users:    users,
		projects: projects,
		expenses: expenses,
		identity: identity,
		log:      log,
	}
}

// Rename moves a user from oldEmail to newEmail: conflict check, identity
// provider update, project rewrite, expense rewrite, then the directory
// re-key (delete old, insert new). Returns the re-keyed user.
func (p *Propagator) Rename(ctx context.Context, oldEmail, newEmail string) (*domain.User, error) {
	user, err := p.users.Get(ctx, oldEmail)
	if err != nil {
		return nil, err
	}
	if _, err := p.users.Get(ctx, newEmail); err == nil {
		return nil, domain.ErrEmailInUse
	}

	if err := p.identity.UpdateEmail(ctx, oldEmail, newEmail); err != nil {
		metrics.RenamesTotal.WithLabelValues("aborted").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}

	projectCount, err := p.rewriteProjects(ctx, oldEmail, newEmail)
	if err != nil {
		return nil, err
	}
	expenseCount, err := p.rewriteExpenses(ctx, oldEmail, newEmail)
	if err != nil {
		return nil, err
	}

	if err := p.users.Delete(ctx, oldEmail); err != nil {
		return nil, err
	}
	user.Email = newEmail
	if err := p.users.Put(ctx, user); err != nil {
		return nil, err
	}

	metrics.RenamesTotal.WithLabelValues("completed").Inc()
	p.log.Info().
		Str("old_email", oldEmail).
		Str("new_email", newEmail).
		Int("projects_rewritten", projectCount).
		Int("expenses_rewritten", expenseCount).
		Msg("email rename propagated")
	return user, nil
}

func (p *Propagator) rewriteProjects(ctx context.Context, oldEmail, newEmail string) (int, error) {
	projects, err := p.projects.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, project := range projects {
		if !project.ReplaceEmail(oldEmail, newEmail) {
			continue
		}
		if err := p.projects.Put(ctx, project); err != nil {
			return count, fmt.Errorf("rewrite project %s: %w", project.ID, err)
		}
		metrics.RenameRewritesTotal.WithLabelValues("project").Inc()
		count++
	}
	return count, nil
}

func (p *Propagator) rewriteExpenses(ctx context.Context, oldEmail, newEmail string) (int, error) {
	expenses, err := p.expenses.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, expense := range expenses {
		if expense.ConsultantEmail != oldEmail {
			continue
		}
		expense.ConsultantEmail = newEmail
		if err := p.expenses.Put(ctx, expense); err != nil {
			return count, fmt.Errorf("rewrite expense %s: %w", expense.ID, err)
		}
		metrics.RenameRewritesTotal.WithLabelValues("expense").Inc()
		count++
	}
	return count, nil
}
