package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const projectKeyPrefix = "project:"

func projectKey(id string) string { return projectKeyPrefix + id }

// ProjectRepository stores projects under project:<id>. Records written by
// earlier versions may lack a status or a consultant list; Normalize fills
// those in at the read boundary so callers never see the gap.
type ProjectRepository struct {
	store ports.Store
}

func NewProjectRepository(store ports.Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	raw, err := r.store.Get(ctx, projectKey(id))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	var project domain.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	project.Normalize()
	return &project, nil
}

func (r *ProjectRepository) Put(ctx context.Context, project *domain.Project) error {
	raw, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", project.ID, err)
	}
	return r.store.Set(ctx, projectKey(project.ID), raw)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, projectKey(id))
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	raws, err := r.store.GetByPrefix(ctx, projectKeyPrefix)
	if err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(raws))
	for _, raw := range raws {
		var project domain.Project
		if err := json.Unmarshal(raw, &project); err != nil {
			return nil, fmt.Errorf("decode project list entry: %w", err)
		}
		project.Normalize()
		projects = append(projects, &project)
	}
	return projects, nil
}
